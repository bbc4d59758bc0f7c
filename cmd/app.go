// Package cmd implements the CLI application to track a brokerage
// portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	giro "github.com/KoenM-bit/my-giro-tracker"
	"github.com/KoenM-bit/my-giro-tracker/store"
)

// Register the subcommands.
// A main package calls Register() to declare subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "data")
	c.Register(&fetchCmd{}, "data")
	c.Register(&setPriceCmd{}, "data")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&yearlyCmd{}, "reports")
	c.Register(&ytdCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", getEnv("GT_DB_PATH", "giro.db"), "Path to the local sqlite database")

func init() {
	// a .env next to the binary can hold GT_* defaults
	_ = godotenv.Load()
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// openStore opens the application database.
func openStore() (*store.Store, error) {
	return store.Open(*dbPath)
}

// now is replaceable in tests of time-dependent reports.
var now = time.Now

// loadLedger loads the stored records and rebuilds the event ledger, the
// dividend stream and the price book.
func loadLedger(ctx context.Context, s *store.Store) (*giro.Ledger, []giro.DividendPayment, *giro.PriceBook, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	cash, err := s.Cash(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading cash activity: %w", err)
	}
	prices, err := s.Prices(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading price cache: %w", err)
	}

	events, skipped := giro.Normalize(txs, cash)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d records with unparseable dates were skipped\n", skipped)
	}
	return giro.NewLedger(events), giro.ExtractDividends(cash), giro.NewPriceBook(nil, prices), nil
}

// navOf returns the percentage base function for periodic reports: the
// portfolio's total value at the bucket start.
func navOf(l *giro.Ledger, book *giro.PriceBook) giro.NAVFunc {
	return func(start time.Time) (giro.Money, bool) {
		return l.ValueAt(book, start), true
	}
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown rather than losing the report
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
