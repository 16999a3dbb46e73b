// Package feed generates deterministic synthetic order streams for
// exercising an order book outside of any live trading context: backtests,
// load tests, and the bookctl replay driver all pull from here rather than
// reading real market data, which is out of scope for the core.
package feed

import (
	"math/rand"

	"github.com/google/uuid"

	"kestrel/internal/book"
)

// Action tags what an Event asks the book to do.
type Action int

const (
	ActionLimit Action = iota
	ActionCancel
	ActionMarket
)

// Event is one step of a generated order stream. OrderID is minted with
// google/uuid, matching the CLI's string-keyed book instantiation; Price
// and Size follow the generator's configured ranges.
type Event struct {
	Action  Action
	OrderID string
	Side    book.Side
	Price   float64
	Size    int
	Account int
	Traits  book.Traits
}

// Config bounds the random values a Generator produces. TickSize quantizes
// prices so price levels collide the way a real book's would; a TickSize of
// 0 disables quantization.
type Config struct {
	MidPrice     float64
	Spread       float64
	TickSize     float64
	MinSize      int
	MaxSize      int
	NumAccounts  int
	CancelChance float64 // probability an event is a cancel of a prior live order, in [0,1)
}

// DefaultConfig mirrors a liquid, tightly quoted single-symbol book.
func DefaultConfig() Config {
	return Config{
		MidPrice:     100.00,
		Spread:       0.50,
		TickSize:     0.01,
		MinSize:      1,
		MaxSize:      500,
		NumAccounts:  16,
		CancelChance: 0.15,
	}
}

// Generator produces a reproducible Event stream: the same seed and Config
// always yield the same sequence, which is what makes replay-based testing
// and benchmarking meaningful.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	live []liveOrder
}

type liveOrder struct {
	id    string
	side  book.Side
	price float64
}

// New builds a Generator seeded deterministically; two Generators built
// with the same seed and Config produce byte-identical Event sequences.
func New(seed int64, cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next produces the next Event. Limit orders dominate the stream; a
// CancelChance fraction of events cancel a previously emitted live order
// instead, once any are outstanding.
func (g *Generator) Next() Event {
	if len(g.live) > 0 && g.rng.Float64() < g.cfg.CancelChance {
		i := g.rng.Intn(len(g.live))
		target := g.live[i]
		g.live = append(g.live[:i], g.live[i+1:]...)
		return Event{Action: ActionCancel, OrderID: target.id, Side: target.side, Price: target.price}
	}
	return g.nextLimit()
}

func (g *Generator) nextLimit() Event {
	side := book.Buy
	if g.rng.Intn(2) == 1 {
		side = book.Sell
	}

	offset := g.rng.Float64() * g.cfg.Spread
	price := g.cfg.MidPrice - offset
	if side == book.Sell {
		price = g.cfg.MidPrice + offset
	}
	price = quantize(price, g.cfg.TickSize)

	size := g.cfg.MinSize + g.rng.Intn(g.cfg.MaxSize-g.cfg.MinSize+1)
	account := g.rng.Intn(g.cfg.NumAccounts)

	ev := Event{
		Action:  ActionLimit,
		OrderID: g.nextOrderID(),
		Side:    side,
		Price:   price,
		Size:    size,
		Account: account,
		Traits:  book.Vanilla,
	}
	g.live = append(g.live, liveOrder{id: ev.OrderID, side: side, price: price})
	return ev
}

// nextOrderID mints a uuid from the generator's own seeded rng rather than
// uuid.New() (which draws from an unseeded global source), so that a
// Generator's output stays fully reproducible for a given seed.
func (g *Generator) nextOrderID() string {
	var raw [16]byte
	g.rng.Read(raw[:])
	raw[6] = (raw[6] & 0x0f) | 0x40 // version 4
	raw[8] = (raw[8] & 0x3f) | 0x80 // RFC 4122 variant
	return uuid.UUID(raw).String()
}

func quantize(price, tick float64) float64 {
	if tick <= 0 {
		return price
	}
	return float64(int64(price/tick+0.5)) * tick
}

// Stream generates n events in order.
func (g *Generator) Stream(n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = g.Next()
	}
	return events
}
