package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	giro "github.com/KoenM-bit/my-giro-tracker"
	"github.com/KoenM-bit/my-giro-tracker/pricefeed"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch current prices for the open positions" }
func (*fetchCmd) Usage() string {
	return `gt fetch

  Fetches the latest traded price for every open equity position and
  stores it in the price cache. Options are not quoted by the source;
  price them with set-price.
`
}

func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	ledger, _, _, err := loadLedger(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fetcher := pricefeed.NewFetcher()
	failures := 0
	asOf := now()
	for _, h := range ledger.Holdings(nil, asOf) {
		if h.Instrument.Kind != giro.Equity {
			continue
		}
		price, err := fetcher.Fetch(h.Instrument)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			failures++
			continue
		}
		if err := s.UpsertPrice(ctx, h.Instrument, price, asOf); err != nil {
			fmt.Fprintf(os.Stderr, "Error caching price for %q: %v\n", h.Instrument.Name, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %s\n", h.Instrument.Name, price)
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d instruments could not be priced\n", failures)
	}
	return subcommands.ExitSuccess
}
