package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	giro "github.com/KoenM-bit/my-giro-tracker"
	"github.com/KoenM-bit/my-giro-tracker/renderer"
)

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display a monthly portfolio performance report" }
func (*monthlyCmd) Usage() string {
	return `gt monthly

  Displays realized profit, dividends and unrealized change bucketed by
  calendar month.
`
}

func (*monthlyCmd) SetFlags(*flag.FlagSet) {}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return periodicReport(ctx, giro.Monthly, "Monthly Performance")
}

// periodicReport is the shared implementation of the monthly and yearly
// commands.
func periodicReport(ctx context.Context, iv giro.Interval, title string) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	ledger, dividends, book, err := loadLedger(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	returns := ledger.PeriodReturns(iv, book, dividends, navOf(ledger, book), now())
	printMarkdown(renderer.PeriodicMarkdown(title, returns))
	return subcommands.ExitSuccess
}
