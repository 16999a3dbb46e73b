// Command bookctl replays a deterministic synthetic order stream through a
// single-symbol order book and prints its state as it runs. It is a
// standalone harness for exercising internal/book; it is not a trading
// server and speaks no wire protocol (see spec Non-goals on network
// transport).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"kestrel/internal/book"
	"kestrel/internal/bookio"
	"kestrel/internal/feed"
)

func main() {
	seed := flag.Int64("seed", 1, "deterministic feed seed")
	count := flag.Int("count", 5000, "number of events to replay")
	every := flag.Int("log-every", 500, "print a book summary every N events")
	depth := flag.Int("depth", 5, "price levels shown in the depth chart")
	csvPath := flag.String("csv", "", "if set, write final resting orders as CSV to this path")
	quiet := flag.Bool("quiet", false, "log warnings and errors only (hides progress logging)")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *quiet {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := book.New[int, float64, string, int](book.Flags{PlotTickMax: 20})
	gen := feed.New(*seed, feed.DefaultConfig())

	t, ctx := tomb.WithContext(ctx)
	t.Go(func() error {
		return replay(ctx, b, gen, *count, *every)
	})

	select {
	case <-ctx.Done():
	case <-t.Dead():
	}
	t.Kill(nil)
	// Wait for the replay goroutine to actually return before reading b: the
	// book is single-writer and not safe to print from concurrently with it.
	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("replay exited with error")
	}

	fmt.Print(bookio.Summary(b))
	fmt.Print(bookio.WriteDepthChart(b, *depth))

	if *csvPath != "" {
		if err := writeCSV(b, *csvPath); err != nil {
			log.Error().Err(err).Str("path", *csvPath).Msg("failed writing CSV snapshot")
			os.Exit(1)
		}
		log.Info().Str("path", *csvPath).Msg("wrote CSV snapshot")
	}
}

func replay(ctx context.Context, b *book.Book[int, float64, string, int], gen *feed.Generator, count, logEvery int) error {
	log.Info().Int("count", count).Msg("replay starting")
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			log.Info().Int("processed", i).Msg("replay cancelled")
			return nil
		default:
		}

		ev := gen.Next()
		if err := applyEvent(b, ev); err != nil {
			log.Error().Err(err).Str("order_id", ev.OrderID).Msg("event rejected")
			continue
		}

		if logEvery > 0 && (i+1)%logEvery == 0 {
			log.Info().
				Int("processed", i+1).
				Msg(firstLine(bookio.Summary(b)))
		}
	}
	log.Info().Msg("replay complete")
	return nil
}

func applyEvent(b *book.Book[int, float64, string, int], ev feed.Event) error {
	switch ev.Action {
	case feed.ActionLimit:
		account := ev.Account
		_, matches, _, err := b.SubmitLimitOrder(ev.OrderID, ev.Side, ev.Price, ev.Size, &account, ev.Traits)
		if err != nil {
			return err
		}
		for _, m := range matches {
			log.Debug().
				Str("order_id", m.ID).
				Str("side", m.Side.String()).
				Int("size", m.Size).
				Float64("price", m.Price).
				Msg("match")
		}
		return nil
	case feed.ActionCancel:
		_, _ = b.CancelOrder(ev.OrderID, ev.Side, ev.Price)
		return nil
	case feed.ActionMarket:
		_, _, err := b.SubmitMarketOrder(ev.Side, ev.Size, ev.Traits)
		return err
	default:
		return fmt.Errorf("bookctl: unknown event action %v", ev.Action)
	}
}

func writeCSV(b *book.Book[int, float64, string, int], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bookio.WriteCSV(f, b)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
