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

type ytdCmd struct{}

func (*ytdCmd) Name() string     { return "ytd" }
func (*ytdCmd) Synopsis() string { return "display the year-to-date performance" }
func (*ytdCmd) Usage() string {
	return `gt ytd

  Displays the performance of the current calendar year up to today.
`
}

func (*ytdCmd) SetFlags(*flag.FlagSet) {}

func (c *ytdCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ytd := ledger.YearToDate(book, dividends, navOf(ledger, book), now())
	printMarkdown(renderer.PeriodicMarkdown("Year to Date", []giro.PeriodReturn{ytd}))
	return subcommands.ExitSuccess
}
