package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/KoenM-bit/my-giro-tracker/ingest"
)

type importCmd struct {
	txFile   string
	cashFile string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import broker CSV exports into the local database" }
func (*importCmd) Usage() string {
	return `gt import [-tx <Transactions.csv>] [-cash <Account.csv>]

  Imports transaction and cash-activity exports. Rows already stored are
  skipped, so overlapping exports are safe to import.

Usage Examples:
# Import both exports at once.
$ gt import -tx Transactions.csv -cash Account.csv

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txFile, "tx", "", "Transactions export to import")
	f.StringVar(&c.cashFile, "cash", "", "Cash-activity export to import")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.txFile == "" && c.cashFile == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to import, pass -tx and/or -cash")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.txFile != "" {
		file, err := os.Open(c.txFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.txFile, err)
			return subcommands.ExitFailure
		}
		recs, err := ingest.ParseTransactions(file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", c.txFile, err)
			return subcommands.ExitFailure
		}
		batch, inserted, err := s.SaveTransactions(ctx, recs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d new of %d transactions (batch %s)\n", inserted, len(recs), batch)
	}

	if c.cashFile != "" {
		file, err := os.Open(c.cashFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.cashFile, err)
			return subcommands.ExitFailure
		}
		recs, err := ingest.ParseAccount(file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", c.cashFile, err)
			return subcommands.ExitFailure
		}
		batch, inserted, err := s.SaveCash(ctx, recs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing cash activity: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d new of %d cash records (batch %s)\n", inserted, len(recs), batch)
	}
	return subcommands.ExitSuccess
}
