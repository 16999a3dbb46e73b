package bookio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kestrel/internal/book"
)

func acct(id int) *int { return &id }

func sampleBook(t *testing.T) *book.Book[int, float64, int, int] {
	b := book.New[int, float64, int, int](book.Flags{PlotTickMax: 10})
	_, _, _, err := b.SubmitLimitOrder(1, book.Buy, 99.0, 10, acct(1), book.Vanilla)
	assert.NoError(t, err)
	_, _, _, err = b.SubmitLimitOrder(2, book.Sell, 101.0, 5, acct(2), book.Vanilla)
	assert.NoError(t, err)
	return b
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	b := sampleBook(t)
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, b))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "TRD,ID,SIDE,SIZE,PX,ACCT", lines[0])
	assert.Len(t, lines, 3, "header plus one row per resting order")
	assert.Contains(t, lines[1], "LMT,1,Bid,10,99,1")
	assert.Contains(t, lines[2], "LMT,2,Ask,5,101,2")
}

func TestWriteCSV_EmptyBookIsHeaderOnly(t *testing.T) {
	b := book.New[int, float64, int, int](book.Flags{})
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, b))
	assert.Equal(t, "TRD,ID,SIDE,SIZE,PX,ACCT\n", buf.String())
}

func TestSummary_ReportsTopOfBook(t *testing.T) {
	b := sampleBook(t)
	out := Summary(b)
	assert.Contains(t, out, "best bid: 99")
	assert.Contains(t, out, "best ask: 101")
}

func TestSummary_EmptyBookReportsDash(t *testing.T) {
	b := book.New[int, float64, int, int](book.Flags{})
	out := Summary(b)
	assert.Contains(t, out, "best bid: -")
	assert.Contains(t, out, "best ask: -")
}

func TestWriteDepthChart_RendersBothSides(t *testing.T) {
	b := sampleBook(t)
	out := WriteDepthChart(b, 5)
	assert.Contains(t, out, "ASKS")
	assert.Contains(t, out, "BIDS")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "99")
}
