// Package bookio renders an order book's read-only state as CSV rows, an
// ASCII depth chart, and a plain-text summary. It never reaches into a
// book's internals; every function here is built entirely on the
// accessors book.Book already exports (BidOrders, AskOrders,
// BookDepthInfo, BestBidAsk, ...).
package bookio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"kestrel/internal/book"
)

// CSVHeader is the fixed header row every WriteCSV call emits first.
var CSVHeader = []string{"TRD", "ID", "SIDE", "SIZE", "PX", "ACCT"}

// WriteCSV writes one row per resting order on both sides of b, preceded by
// CSVHeader. The row set produced exactly equals the set of resting orders
// at the moment iteration begins: BidOrders/AskOrders already return a
// point-in-time snapshot, so no additional locking is needed here given the
// single-threaded execution model the core assumes.
func WriteCSV[Sz book.Quantity, Px book.Amount, Oid comparable, Aid comparable](
	w io.Writer, b *book.Book[Sz, Px, Oid, Aid],
) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, o := range b.BidOrders() {
		if err := cw.Write(orderRow(o)); err != nil {
			return err
		}
	}
	for _, o := range b.AskOrders() {
		if err := cw.Write(orderRow(o)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func orderRow[Sz book.Quantity, Px book.Amount, Oid comparable, Aid comparable](o book.Order[Sz, Px, Oid, Aid]) []string {
	acct := ""
	if o.Account != nil {
		acct = fmt.Sprintf("%v", *o.Account)
	}
	return []string{
		"LMT",
		fmt.Sprintf("%v", o.ID),
		o.Side.String(),
		fmt.Sprintf("%v", o.Size),
		fmt.Sprintf("%v", o.Price),
		acct,
	}
}

// ParseCSVSize parses an int SIZE field back out of a written row; kept
// here since it is the inverse of orderRow's formatting rather than
// anything the core needs.
func ParseCSVSize(s string) (int, error) {
	return strconv.Atoi(s)
}
