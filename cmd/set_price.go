package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	giro "github.com/KoenM-bit/my-giro-tracker"
	"github.com/KoenM-bit/my-giro-tracker/ingest"
)

type setPriceCmd struct {
	isin     string
	product  string
	price    float64
	currency string
}

func (*setPriceCmd) Name() string     { return "set-price" }
func (*setPriceCmd) Synopsis() string { return "manually set the current price of an instrument" }
func (*setPriceCmd) Usage() string {
	return `gt set-price -isin <isin> -product <name> -price <price> [-c <currency>]

  Stores a manual price in the cache, for instruments the quote source
  does not carry (options in particular).

Usage Examples:
$ gt set-price -isin DE000C59E5V4 -product "FLW P31.00 18MAR22" -price 0.85

`
}

func (c *setPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN of the instrument")
	f.StringVar(&c.product, "product", "", "Product name exactly as imported")
	f.Float64Var(&c.price, "price", 0, "Unit price")
	f.StringVar(&c.currency, "c", "EUR", "Price currency")
}

func (c *setPriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.isin == "" || c.product == "" || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -isin, -product and a positive -price are required")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	inst := ingest.Classify(c.isin, c.product, c.currency)
	price := giro.M(c.price, c.currency)
	if err := s.UpsertPrice(ctx, inst, price, now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing price: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Stored %s for %s\n", price, c.product)
	return subcommands.ExitSuccess
}
