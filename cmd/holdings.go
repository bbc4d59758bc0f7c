package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/KoenM-bit/my-giro-tracker/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the open positions and their unrealized P&L" }
func (*holdingsCmd) Usage() string {
	return `gt holdings

  Displays the open positions with average price, cost basis and, where a
  price is cached, the current price and unrealized profit or loss.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	ledger, _, book, err := loadLedger(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	asOf := now()
	printMarkdown(renderer.HoldingsMarkdown(ledger.Holdings(book, asOf), asOf))
	return subcommands.ExitSuccess
}
