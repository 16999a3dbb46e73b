package book

// Flags configures an OrderBook instance. PlotTickMax is not consumed by the
// core itself; it is carried through for external renderers (see
// internal/bookio) that need a ceiling on how many ticks wide an ASCII depth
// bar may grow.
type Flags struct {
	PlotTickMax int
}

// Book is a pair of SideBooks (bid + ask) plus an account index, exposing
// the public submit/cancel operations and the statistics surface. One Book
// owns exactly one symbol; it is not safe for concurrent use by more than
// one goroutine (see spec.md §5) - callers that need
// concurrency shard by symbol or wrap a Book in a mutex of their own.
type Book[Sz Quantity, Px Amount, Oid comparable, Aid comparable] struct {
	Bid   *SideBook[Sz, Px, Oid, Aid]
	Ask   *SideBook[Sz, Px, Oid, Aid]
	Flags Flags

	accounts map[Aid]map[Oid]Order[Sz, Px, Oid, Aid]
}

// New constructs an empty order book.
func New[Sz Quantity, Px Amount, Oid comparable, Aid comparable](flags Flags) *Book[Sz, Px, Oid, Aid] {
	return &Book[Sz, Px, Oid, Aid]{
		Bid:      newSideBook[Sz, Px, Oid, Aid](true),
		Ask:      newSideBook[Sz, Px, Oid, Aid](false),
		Flags:    flags,
		accounts: make(map[Aid]map[Oid]Order[Sz, Px, Oid, Aid]),
	}
}

func (b *Book[Sz, Px, Oid, Aid]) sideBook(side Side) *SideBook[Sz, Px, Oid, Aid] {
	if side == Buy {
		return b.Bid
	}
	return b.Ask
}

// SubmitLimitOrder validates and processes an incoming limit order: it
// checks for a cross against the opposite book, optionally matches away
// against it, and rests whatever is left on the order's own side. See
// spec.md §4.4 for the full contract. traits is applied exactly as given:
// callers that want plain resting behaviour pass Vanilla, since the zero
// Traits value has AllowCross false and so refuses a crossing limit.
func (b *Book[Sz, Px, Oid, Aid]) SubmitLimitOrder(
	id Oid, side Side, price Px, size Sz, account *Aid, traits Traits,
) (resting *Order[Sz, Px, Oid, Aid], matches []Order[Sz, Px, Oid, Aid], residual Sz, err error) {
	if price <= 0 || size <= 0 {
		return nil, nil, 0, ErrInvalidArgument
	}
	if side != Buy && side != Sell {
		return nil, nil, 0, ErrInvalidArgument
	}

	residual = size
	opposite := b.sideBook(side.Opposite())
	oppBest, oppOk := opposite.Best()

	crosses := oppOk && (side == Buy && price >= oppBest || side == Sell && price <= oppBest)
	if crosses {
		if !traits.AllowCross {
			return nil, nil, size, nil
		}
		limit := price
		matches, residual = opposite.WalkBySize(size, &limit, traits)
		b.syncAccountsAfterMatches(matches)
	}

	if traits.ImmediateOrCancel || residual <= 0 {
		return nil, matches, residual, nil
	}

	oppBest, oppOk = opposite.Best()
	canRest := !oppOk ||
		(side == Buy && price < oppBest) ||
		(side == Sell && price > oppBest)
	if !canRest {
		return nil, matches, residual, nil
	}

	o := Order[Sz, Px, Oid, Aid]{ID: id, Side: side, Size: residual, Price: price, Account: account}
	b.sideBook(side).InsertOrder(o)
	if account != nil {
		b.registerAccountOrder(*account, o)
	}
	resting = &o
	residual = 0
	return resting, matches, residual, nil
}

// SubmitMarketOrder consumes liquidity from the opposite side up to size
// shares at whatever prices are resting, honouring only traits.AllOrNone
// (the other flags have no effect: there is nothing to rest and no cross
// check for a market order).
func (b *Book[Sz, Px, Oid, Aid]) SubmitMarketOrder(
	side Side, size Sz, traits Traits,
) (matches []Order[Sz, Px, Oid, Aid], residual Sz, err error) {
	if size <= 0 {
		return nil, size, ErrInvalidArgument
	}
	matches, residual = b.sideBook(side.Opposite()).WalkBySize(size, nil, traits)
	b.syncAccountsAfterMatches(matches)
	return matches, residual, nil
}

// SubmitMarketOrderByFunds is SubmitMarketOrder's notional-budget analogue:
// it spends funds currency against the opposite side rather than a share
// count.
func (b *Book[Sz, Px, Oid, Aid]) SubmitMarketOrderByFunds(
	side Side, funds Funds, traits Traits,
) (matches []Order[Sz, Px, Oid, Aid], fundsRemaining Funds, err error) {
	if funds <= 0 {
		return nil, funds, ErrInvalidArgument
	}
	matches, fundsRemaining = b.sideBook(side.Opposite()).WalkByFunds(funds, nil, traits)
	b.syncAccountsAfterMatches(matches)
	return matches, fundsRemaining, nil
}

// CancelOrder removes the resting order with the given id at price from
// side, returning it (and unregistering it from the account index) if it
// was found. A cancel of a non-resting order is not an error: it simply
// returns ok == false.
func (b *Book[Sz, Px, Oid, Aid]) CancelOrder(id Oid, side Side, price Px) (Order[Sz, Px, Oid, Aid], bool) {
	o, ok := b.sideBook(side).PopOrder(price, id)
	if !ok {
		return o, false
	}
	if o.Account != nil {
		b.unregisterAccountOrder(*o.Account, id)
	}
	return o, true
}

// Cancel is the by-value convenience form: it cancels order using its own
// Side and Price fields, consulting the returned order's Account to update
// the account index rather than requiring the caller to supply it.
func (b *Book[Sz, Px, Oid, Aid]) Cancel(order Order[Sz, Px, Oid, Aid]) (Order[Sz, Px, Oid, Aid], bool) {
	return b.CancelOrder(order.ID, order.Side, order.Price)
}

// syncAccountsAfterMatches keeps the account index coherent with every
// order a match walk touched: a fully-consumed order's entry is dropped, a
// split order's entry has its size reduced to the still-resting remainder.
func (b *Book[Sz, Px, Oid, Aid]) syncAccountsAfterMatches(matches []Order[Sz, Px, Oid, Aid]) {
	for _, m := range matches {
		if m.Account == nil {
			continue
		}
		orders, ok := b.accounts[*m.Account]
		if !ok {
			continue
		}
		existing, ok := orders[m.ID]
		if !ok {
			continue
		}
		if existing.Size <= m.Size {
			b.unregisterAccountOrder(*m.Account, m.ID)
			continue
		}
		existing.Size -= m.Size
		orders[m.ID] = existing
	}
}

func (b *Book[Sz, Px, Oid, Aid]) registerAccountOrder(account Aid, o Order[Sz, Px, Oid, Aid]) {
	orders, ok := b.accounts[account]
	if !ok {
		orders = make(map[Oid]Order[Sz, Px, Oid, Aid])
		b.accounts[account] = orders
	}
	orders[o.ID] = o
}

func (b *Book[Sz, Px, Oid, Aid]) unregisterAccountOrder(account Aid, id Oid) {
	orders, ok := b.accounts[account]
	if !ok {
		return
	}
	delete(orders, id)
	if len(orders) == 0 {
		delete(b.accounts, account)
	}
}

// BestBidAsk returns the best resting price on each side, if any.
func (b *Book[Sz, Px, Oid, Aid]) BestBidAsk() (bid, ask *Px) {
	if p, ok := b.Bid.Best(); ok {
		bid = &p
	}
	if p, ok := b.Ask.Best(); ok {
		ask = &p
	}
	return bid, ask
}

// VolumeBidAsk returns the total resting volume on each side.
func (b *Book[Sz, Px, Oid, Aid]) VolumeBidAsk() (bidVol, askVol Sz) {
	return b.Bid.TotalVolume, b.Ask.TotalVolume
}

// NOrdersBidAsk returns the resting order count on each side.
func (b *Book[Sz, Px, Oid, Aid]) NOrdersBidAsk() (bidN, askN int) {
	return b.Bid.NumOrders, b.Ask.NumOrders
}

// BookDepthInfo returns, for each side, up to maxDepth price levels from the
// best as parallel Price/Volume/Orders arrays.
func (b *Book[Sz, Px, Oid, Aid]) BookDepthInfo(maxDepth int) map[Side]DepthInfo[Sz, Px] {
	return map[Side]DepthInfo[Sz, Px]{
		Buy:  newDepthInfo(b.Bid.Depth(maxDepth)),
		Sell: newDepthInfo(b.Ask.Depth(maxDepth)),
	}
}

// DepthInfo holds one side's book_depth_info snapshot as parallel arrays.
type DepthInfo[Sz Quantity, Px Amount] struct {
	Price  []Px
	Volume []Sz
	Orders []int
}

func newDepthInfo[Sz Quantity, Px Amount](levels []DepthLevel[Sz, Px]) DepthInfo[Sz, Px] {
	info := DepthInfo[Sz, Px]{
		Price:  make([]Px, len(levels)),
		Volume: make([]Sz, len(levels)),
		Orders: make([]int, len(levels)),
	}
	for i, lvl := range levels {
		info.Price[i] = lvl.Price
		info.Volume[i] = lvl.Volume
		info.Orders[i] = lvl.Orders
	}
	return info
}

// GetAccount returns the open orders tracked for aid, if any.
func (b *Book[Sz, Px, Oid, Aid]) GetAccount(aid Aid) (map[Oid]Order[Sz, Px, Oid, Aid], bool) {
	orders, ok := b.accounts[aid]
	return orders, ok
}

// BidOrders returns every resting bid order in price-time priority.
func (b *Book[Sz, Px, Oid, Aid]) BidOrders() []Order[Sz, Px, Oid, Aid] { return b.Bid.Orders() }

// AskOrders returns every resting ask order in price-time priority.
func (b *Book[Sz, Px, Oid, Aid]) AskOrders() []Order[Sz, Px, Oid, Aid] { return b.Ask.Orders() }
