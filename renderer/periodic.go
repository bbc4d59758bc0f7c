package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// PeriodicMarkdown renders a periodic return series as a markdown table
// with a closing total row.
func PeriodicMarkdown(title string, returns []giro.PeriodReturn) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Period", "Realized", "Dividends", "Unrealized", "Total", "Return"},
		Rows:   [][]string{},
	}
	var realized, dividends, unrealized, total giro.Money
	for _, r := range returns {
		table.Rows = append(table.Rows, []string{
			r.Label,
			r.Realized.SignedString(),
			r.Dividends.SignedString(),
			r.Unrealized.SignedString(),
			r.Total.SignedString(),
			r.Percentage.SignedString(),
		})
		realized = realized.Add(r.Realized)
		dividends = dividends.Add(r.Dividends)
		unrealized = unrealized.Add(r.Unrealized)
		total = total.Add(r.Total)
	}
	table.Rows = append(table.Rows, []string{
		"**Total**",
		realized.SignedString(),
		dividends.SignedString(),
		unrealized.SignedString(),
		total.SignedString(),
		"",
	})
	doc.Table(table)
	return doc.String()
}
