package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mkOrder(id int, side Side, size int, price float64) Order[int, float64, int, int] {
	return Order[int, float64, int, int]{ID: id, Side: side, Size: size, Price: price}
}

func TestQueue_PushBackOrdersFIFO(t *testing.T) {
	q := newQueue[int, float64, int, int](100.0)
	q.PushBack(mkOrder(1, Buy, 10, 100.0))
	q.PushBack(mkOrder(2, Buy, 20, 100.0))
	q.PushBack(mkOrder(3, Buy, 5, 100.0))

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 35, q.TotalVolume)
	assert.Equal(t, 3, q.OrderCount)

	front, ok := q.Front()
	assert.True(t, ok)
	assert.Equal(t, 1, front.ID)
}

func TestQueue_PushFrontPreservesPriority(t *testing.T) {
	q := newQueue[int, float64, int, int](100.0)
	q.PushBack(mkOrder(2, Buy, 20, 100.0))
	q.PushFront(mkOrder(1, Buy, 10, 100.0))

	orders := q.Orders()
	assert.Equal(t, []int{1, 2}, []int{orders[0].ID, orders[1].ID})
	assert.Equal(t, 30, q.TotalVolume)
	assert.Equal(t, 2, q.OrderCount)
}

func TestQueue_PopFrontDrainsFIFO(t *testing.T) {
	q := newQueue[int, float64, int, int](100.0)
	q.PushBack(mkOrder(1, Buy, 10, 100.0))
	q.PushBack(mkOrder(2, Buy, 20, 100.0))

	o, ok := q.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 1, o.ID)
	assert.Equal(t, 20, q.TotalVolume)
	assert.Equal(t, 1, q.OrderCount)

	o, ok = q.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 2, o.ID)
	assert.True(t, q.IsEmpty())

	_, ok = q.PopFront()
	assert.False(t, ok)
}

func TestQueue_PopByID(t *testing.T) {
	q := newQueue[int, float64, int, int](100.0)
	q.PushBack(mkOrder(1, Buy, 10, 100.0))
	q.PushBack(mkOrder(2, Buy, 20, 100.0))
	q.PushBack(mkOrder(3, Buy, 5, 100.0))

	o, ok := q.PopByID(2)
	assert.True(t, ok)
	assert.Equal(t, 20, o.Size)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 15, q.TotalVolume)

	orders := q.Orders()
	assert.Equal(t, []int{1, 3}, []int{orders[0].ID, orders[1].ID})

	_, ok = q.PopByID(99)
	assert.False(t, ok)
}
