package book

import "github.com/tidwall/btree"

// SideBook is one side (bid-only or ask-only) of the market: an ordered map
// from price to the Queue resting at that price, plus the cached aggregates
// tied to its contents. Iterating the underlying tree from the front always
// yields queues in price-priority order because the bid side orders its
// comparator "greatest first" and the ask side "least first" - continuing
// the teacher's own choice of key ordering rather than negating keys.
type SideBook[Sz Quantity, Px Amount, Oid comparable, Aid comparable] struct {
	isBid bool
	tree  *btree.BTreeG[*Queue[Sz, Px, Oid, Aid]]

	bestPrice Px
	hasBest   bool

	TotalVolume      Sz
	TotalVolumeFunds Funds
	NumOrders        int
}

func newSideBook[Sz Quantity, Px Amount, Oid comparable, Aid comparable](isBid bool) *SideBook[Sz, Px, Oid, Aid] {
	var less func(a, b *Queue[Sz, Px, Oid, Aid]) bool
	if isBid {
		less = func(a, b *Queue[Sz, Px, Oid, Aid]) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *Queue[Sz, Px, Oid, Aid]) bool { return a.Price < b.Price }
	}
	return &SideBook[Sz, Px, Oid, Aid]{
		isBid: isBid,
		tree:  btree.NewBTreeG(less),
	}
}

func (sb *SideBook[Sz, Px, Oid, Aid]) probe(price Px) *Queue[Sz, Px, Oid, Aid] {
	return &Queue[Sz, Px, Oid, Aid]{Price: price}
}

// within reports whether price is on the acceptable side of limit for this
// book: >= on the bid side, <= on the ask side.
func (sb *SideBook[Sz, Px, Oid, Aid]) within(price, limit Px) bool {
	if sb.isBid {
		return price >= limit
	}
	return price <= limit
}

// betterThan reports whether price is strictly more aggressive than the
// current best for this side.
func (sb *SideBook[Sz, Px, Oid, Aid]) betterThan(price, best Px) bool {
	if sb.isBid {
		return price > best
	}
	return price < best
}

// Best returns the most aggressive resting price, or false if the side is
// empty.
func (sb *SideBook[Sz, Px, Oid, Aid]) Best() (Px, bool) {
	if !sb.hasBest {
		var zero Px
		return zero, false
	}
	return sb.bestPrice, true
}

func (sb *SideBook[Sz, Px, Oid, Aid]) recomputeBest() {
	q, ok := sb.tree.MinMut()
	if !ok {
		sb.hasBest = false
		var zero Px
		sb.bestPrice = zero
		return
	}
	sb.hasBest = true
	sb.bestPrice = q.Price
}

// InsertOrder rests a new order in this side's book, creating its price
// queue if necessary, and keeps every cached aggregate (NumOrders,
// TotalVolume, TotalVolumeFunds, best price) coherent with the insert.
func (sb *SideBook[Sz, Px, Oid, Aid]) InsertOrder(o Order[Sz, Px, Oid, Aid]) {
	q, ok := sb.tree.GetMut(sb.probe(o.Price))
	if !ok {
		q = newQueue[Sz, Px, Oid, Aid](o.Price)
		sb.tree.Set(q)
	}
	q.PushBack(o)

	sb.NumOrders++
	sb.TotalVolume += o.Size
	sb.TotalVolumeFunds += Funds(o.Price) * Funds(o.Size)

	if !sb.hasBest || sb.betterThan(o.Price, sb.bestPrice) {
		sb.hasBest = true
		sb.bestPrice = o.Price
	}
}

// PopOrder removes the order with the given id resting at price, reporting
// false if no such order exists. Emptied queues are dropped from the tree
// and the best price is recomputed if it was the one removed.
func (sb *SideBook[Sz, Px, Oid, Aid]) PopOrder(price Px, id Oid) (Order[Sz, Px, Oid, Aid], bool) {
	q, ok := sb.tree.GetMut(sb.probe(price))
	if !ok {
		var zero Order[Sz, Px, Oid, Aid]
		return zero, false
	}
	o, ok := q.PopByID(id)
	if !ok {
		var zero Order[Sz, Px, Oid, Aid]
		return zero, false
	}

	sb.NumOrders--
	sb.TotalVolume -= o.Size
	sb.TotalVolumeFunds -= Funds(o.Price) * Funds(o.Size)

	if q.IsEmpty() {
		sb.tree.Delete(sb.probe(price))
		if sb.hasBest && sb.bestPrice == price {
			sb.recomputeBest()
		}
	}
	return o, true
}

// SizeAvailable sums resting volume within limitPrice (nil means the full,
// cached total), walking queues from the front and stopping at the first
// out-of-range price level.
func (sb *SideBook[Sz, Px, Oid, Aid]) SizeAvailable(limitPrice *Px) Sz {
	if limitPrice == nil {
		return sb.TotalVolume
	}
	var sum Sz
	for _, q := range sb.tree.Items() {
		if !sb.within(q.Price, *limitPrice) {
			break
		}
		sum += q.TotalVolume
	}
	return sum
}

// FundsAvailable is SizeAvailable's by-funds analogue: the notional sum of
// resting volume within limitPrice.
func (sb *SideBook[Sz, Px, Oid, Aid]) FundsAvailable(limitPrice *Px) Funds {
	if limitPrice == nil {
		return sb.TotalVolumeFunds
	}
	var sum Funds
	for _, q := range sb.tree.Items() {
		if !sb.within(q.Price, *limitPrice) {
			break
		}
		sum += Funds(q.Price) * Funds(q.TotalVolume)
	}
	return sum
}

// DepthLevel is one row of a book_depth_info snapshot.
type DepthLevel[Sz Quantity, Px Amount] struct {
	Price  Px
	Volume Sz
	Orders int
}

// Depth returns up to maxDepth price levels from the best, in priority
// order.
func (sb *SideBook[Sz, Px, Oid, Aid]) Depth(maxDepth int) []DepthLevel[Sz, Px] {
	levels := make([]DepthLevel[Sz, Px], 0, maxDepth)
	for _, q := range sb.tree.Items() {
		if len(levels) >= maxDepth {
			break
		}
		levels = append(levels, DepthLevel[Sz, Px]{Price: q.Price, Volume: q.TotalVolume, Orders: q.OrderCount})
	}
	return levels
}

// Orders returns every resting order on this side, in price-time priority.
func (sb *SideBook[Sz, Px, Oid, Aid]) Orders() []Order[Sz, Px, Oid, Aid] {
	out := make([]Order[Sz, Px, Oid, Aid], 0, sb.NumOrders)
	for _, q := range sb.tree.Items() {
		out = append(out, q.orders...)
	}
	return out
}

// WalkBySize consumes resting liquidity until remaining shares are filled,
// the side empties, or the front queue's price falls outside limitPrice.
// Matches are returned in strict price-time consumption order along with
// whatever of remaining could not be filled.
func (sb *SideBook[Sz, Px, Oid, Aid]) WalkBySize(remaining Sz, limitPrice *Px, traits Traits) ([]Order[Sz, Px, Oid, Aid], Sz) {
	if traits.AllOrNone && sb.SizeAvailable(limitPrice) < remaining {
		return nil, remaining
	}

	var matches []Order[Sz, Px, Oid, Aid]
	var removedCount int
	var removedVolume Sz
	var removedFunds Funds

	for remaining > 0 {
		q, ok := sb.tree.MinMut()
		if !ok {
			break
		}
		if limitPrice != nil && !sb.within(q.Price, *limitPrice) {
			break
		}
		sb.tree.Delete(q)

		if q.TotalVolume <= remaining {
			matches = append(matches, q.orders...)
			removedCount += q.OrderCount
			removedVolume += q.TotalVolume
			removedFunds += Funds(q.Price) * Funds(q.TotalVolume)
			remaining -= q.TotalVolume
			continue
		}

		for !q.IsEmpty() && remaining > 0 {
			o, _ := q.PopFront()
			if o.Size <= remaining {
				matches = append(matches, o)
				removedCount++
				removedVolume += o.Size
				removedFunds += Funds(o.Price) * Funds(o.Size)
				remaining -= o.Size
				continue
			}

			filled := o.withSize(remaining)
			residual := o.withSize(o.Size - remaining)
			q.PushFront(residual)
			matches = append(matches, filled)
			removedVolume += remaining
			removedFunds += Funds(o.Price) * Funds(remaining)
			remaining = 0
		}

		if !q.IsEmpty() {
			sb.tree.Set(q)
		}
	}

	sb.recomputeBest()
	sb.NumOrders -= removedCount
	sb.TotalVolume -= removedVolume
	sb.TotalVolumeFunds -= removedFunds

	return matches, remaining
}

// WalkByFunds is WalkBySize's notional-budget analogue: remaining is spent
// down in currency rather than shares. A split that cannot afford even one
// share of the front order (remaining < order.Price) stops the walk
// entirely and returns remaining unchanged, per the funds-matching edge
// case: this never loops forever and never emits a zero-size match.
func (sb *SideBook[Sz, Px, Oid, Aid]) WalkByFunds(remaining Funds, limitPrice *Px, traits Traits) ([]Order[Sz, Px, Oid, Aid], Funds) {
	if traits.AllOrNone && sb.FundsAvailable(limitPrice) < remaining {
		return nil, remaining
	}

	var matches []Order[Sz, Px, Oid, Aid]
	var removedCount int
	var removedVolume Sz
	var removedFunds Funds

	for remaining > 0 {
		q, ok := sb.tree.MinMut()
		if !ok {
			break
		}
		if limitPrice != nil && !sb.within(q.Price, *limitPrice) {
			break
		}
		sb.tree.Delete(q)

		queueNotional := Funds(q.Price) * Funds(q.TotalVolume)
		if queueNotional <= remaining {
			matches = append(matches, q.orders...)
			removedCount += q.OrderCount
			removedVolume += q.TotalVolume
			removedFunds += queueNotional
			remaining -= queueNotional
			continue
		}

		stalled := false
		for !q.IsEmpty() && remaining > 0 {
			o, _ := q.Front()
			notional := Funds(o.Price) * Funds(o.Size)
			if notional <= remaining {
				q.PopFront()
				matches = append(matches, o)
				removedCount++
				removedVolume += o.Size
				removedFunds += notional
				remaining -= notional
				continue
			}

			fillable := Sz(remaining / Funds(o.Price))
			if fillable == 0 {
				stalled = true
				break
			}

			q.PopFront()
			filled := o.withSize(fillable)
			residual := o.withSize(o.Size - fillable)
			q.PushFront(residual)
			matches = append(matches, filled)
			filledNotional := Funds(fillable) * Funds(o.Price)
			removedVolume += fillable
			removedFunds += filledNotional
			remaining -= filledNotional
		}

		if !q.IsEmpty() {
			sb.tree.Set(q)
		}
		if stalled {
			break
		}
	}

	sb.recomputeBest()
	sb.NumOrders -= removedCount
	sb.TotalVolume -= removedVolume
	sb.TotalVolumeFunds -= removedFunds

	return matches, remaining
}
