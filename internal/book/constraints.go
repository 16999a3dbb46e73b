// Package book implements the single-symbol limit order book core: an
// immutable Order type, FIFO OrderQueues at each price level, a price-indexed
// SideBook per side of the market, and the OrderBook that ties both sides
// together with account tracking and the public submit/cancel surface.
//
// The book is parametric over four scalars, mirroring the reference
// implementation's type parameters: Sz (order size), Px (price), Oid (order
// id) and Aid (account id). Sz is constrained to the builtin integer kinds;
// Px additionally allows floating point, since fixed-point integer ticks and
// plain floating prices are both common in practice.
package book

// Quantity is the constraint satisfied by order-size types. Integer sizes
// are the intended use (spec calls for "integer sizes with fixed-point
// prices"); fractional share counts are out of scope.
type Quantity interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Amount is the constraint satisfied by price types: any Quantity kind, or a
// floating point type for venues that price in plain decimals.
type Amount interface {
	Quantity | ~float32 | ~float64
}

// Funds is the accumulator type used for notional (price*size) sums: the
// running total_volume_funds aggregate on a SideBook, and the remaining
// argument of a by-funds walk. Per the funds-arithmetic design note this is
// an advisory aggregate only, never authoritative for settlement, so a
// single wide floating type suffices regardless of how Sz/Px are
// instantiated.
type Funds float64
