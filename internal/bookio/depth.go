package bookio

import (
	"fmt"
	"strings"

	"kestrel/internal/book"
)

// WriteDepthChart renders an ASCII bar chart of up to maxDepth price levels
// per side, bar width capped at b.Flags.PlotTickMax ticks (a tick here
// being one character) so a single outsized level cannot blow out the
// chart's width.
func WriteDepthChart[Sz book.Quantity, Px book.Amount, Oid comparable, Aid comparable](
	b *book.Book[Sz, Px, Oid, Aid], maxDepth int,
) string {
	depth := b.BookDepthInfo(maxDepth)
	bidInfo := depth[book.Buy]
	askInfo := depth[book.Sell]

	tickMax := b.Flags.PlotTickMax
	if tickMax <= 0 {
		tickMax = 20
	}

	var maxVol float64
	for _, v := range bidInfo.Volume {
		if f := toFloat(v); f > maxVol {
			maxVol = f
		}
	}
	for _, v := range askInfo.Volume {
		if f := toFloat(v); f > maxVol {
			maxVol = f
		}
	}

	var sb strings.Builder
	sb.WriteString("ASKS\n")
	for i := len(askInfo.Price) - 1; i >= 0; i-- {
		writeDepthLine(&sb, askInfo.Price[i], askInfo.Volume[i], askInfo.Orders[i], maxVol, tickMax)
	}
	sb.WriteString("----\n")
	sb.WriteString("BIDS\n")
	for i := range bidInfo.Price {
		writeDepthLine(&sb, bidInfo.Price[i], bidInfo.Volume[i], bidInfo.Orders[i], maxVol, tickMax)
	}
	return sb.String()
}

func writeDepthLine[Px book.Amount, Sz book.Quantity](sb *strings.Builder, price Px, volume Sz, orders int, maxVol float64, tickMax int) {
	bar := depthBar(toFloat(volume), maxVol, tickMax)
	fmt.Fprintf(sb, "%10v | %-*s %v (%d orders)\n", price, tickMax, bar, volume, orders)
}

func depthBar(volume, maxVol float64, tickMax int) string {
	if maxVol <= 0 {
		return ""
	}
	ticks := int((volume / maxVol) * float64(tickMax))
	if ticks < 1 && volume > 0 {
		ticks = 1
	}
	if ticks > tickMax {
		ticks = tickMax
	}
	return strings.Repeat("#", ticks)
}

func toFloat[T book.Quantity](v T) float64 { return float64(v) }
