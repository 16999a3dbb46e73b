package book

import "fmt"

// Order is an immutable value describing one resting (or just-matched)
// limit order. A residual produced during matching is a new Order sharing
// every field except Size.
type Order[Sz Quantity, Px Amount, Oid comparable, Aid comparable] struct {
	ID      Oid
	Side    Side
	Size    Sz
	Price   Px
	Account *Aid // nil when the order is not attributed to any account.
}

func (o Order[Sz, Px, Oid, Aid]) String() string {
	acct := "-"
	if o.Account != nil {
		acct = fmt.Sprintf("%v", *o.Account)
	}
	return fmt.Sprintf(
		"{id:%v side:%v size:%v price:%v account:%s}",
		o.ID, o.Side, o.Size, o.Price, acct,
	)
}

// withSize returns a copy of o with Size replaced, used to build the filled
// and residual halves of a split match.
func (o Order[Sz, Px, Oid, Aid]) withSize(size Sz) Order[Sz, Px, Oid, Aid] {
	o.Size = size
	return o
}
