package bookio

import (
	"fmt"
	"strings"

	"kestrel/internal/book"
)

// Summary renders a short plain-text snapshot of a book's top-of-book
// statistics: best bid/ask, resting volume per side, and order counts.
func Summary[Sz book.Quantity, Px book.Amount, Oid comparable, Aid comparable](
	b *book.Book[Sz, Px, Oid, Aid],
) string {
	bid, ask := b.BestBidAsk()
	bidVol, askVol := b.VolumeBidAsk()
	bidN, askN := b.NOrdersBidAsk()

	var sb strings.Builder
	fmt.Fprintf(&sb, "best bid: %s  best ask: %s\n", formatPx(bid), formatPx(ask))
	fmt.Fprintf(&sb, "bid volume: %v (%d orders)  ask volume: %v (%d orders)\n", bidVol, bidN, askVol, askN)
	return sb.String()
}

func formatPx[Px book.Amount](p *Px) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *p)
}
