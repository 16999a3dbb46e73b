package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_DeterministicForSameSeed(t *testing.T) {
	cfg := DefaultConfig()
	a := New(42, cfg).Stream(200)
	b := New(42, cfg).Stream(200)
	assert.Equal(t, a, b, "the same seed and config must reproduce the same event stream")
}

func TestGenerator_DifferentSeedsDiverge(t *testing.T) {
	cfg := DefaultConfig()
	a := New(1, cfg).Stream(200)
	b := New(2, cfg).Stream(200)
	assert.NotEqual(t, a, b)
}

func TestGenerator_CancelsOnlyTargetLiveOrders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CancelChance = 0.9
	g := New(7, cfg)
	live := map[string]bool{}

	for i := 0; i < 500; i++ {
		ev := g.Next()
		switch ev.Action {
		case ActionLimit:
			live[ev.OrderID] = true
		case ActionCancel:
			assert.True(t, live[ev.OrderID], "a cancel must target an order that was actually emitted live")
			delete(live, ev.OrderID)
		}
	}
}

func TestQuantizeRoundsToTick(t *testing.T) {
	assert.InDelta(t, 100.01, quantize(100.006, 0.01), 1e-9)
	assert.InDelta(t, 100.00, quantize(100.004, 0.01), 1e-9)
	assert.Equal(t, 100.123, quantize(100.123, 0), "a zero tick size disables quantization")
}
