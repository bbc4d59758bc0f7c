// Package renderer turns engine reports into markdown for terminal
// display.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// HoldingsMarkdown renders the open positions as a markdown table.
func HoldingsMarkdown(holdings []giro.Holding, asOf time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Holdings as of %s", asOf.Format("2006-01-02")))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Product", "Kind", "Quantity", "Avg Price", "Price", "Cost", "Unrealized"},
		Rows:   [][]string{},
	}
	var totalCost, totalUnrealized giro.Money
	for _, h := range holdings {
		price := "-"
		unrealized := "-"
		if h.Priced {
			price = h.CurrentPrice.String()
			unrealized = h.Unrealized.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			h.Instrument.Name,
			h.Instrument.Kind.String(),
			h.Quantity.String(),
			h.AvgPrice.String(),
			price,
			h.TotalCost.String(),
			unrealized,
		})
		totalCost = totalCost.Add(h.TotalCost)
		totalUnrealized = totalUnrealized.Add(h.Unrealized)
	}
	table.Rows = append(table.Rows, []string{
		"**Total**", "", "", "", "", totalCost.String(), totalUnrealized.SignedString(),
	})
	doc.Table(table)
	return doc.String()
}
