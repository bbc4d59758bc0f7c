package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

type yearlyCmd struct{}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "display a yearly portfolio performance report" }
func (*yearlyCmd) Usage() string {
	return `gt yearly

  Displays realized profit, dividends and unrealized change bucketed by
  calendar year.
`
}

func (*yearlyCmd) SetFlags(*flag.FlagSet) {}

func (c *yearlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return periodicReport(ctx, giro.Yearly, "Yearly Performance")
}
