package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// HistoryMarkdown renders the valuation snapshot series as a markdown
// table, one row per event.
func HistoryMarkdown(snaps []giro.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio Value History")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Deposits", "Realized", "Unrealized", "Total"},
		Rows:   [][]string{},
	}
	for _, s := range snaps {
		table.Rows = append(table.Rows, []string{
			s.Timestamp.Format("2006-01-02 15:04"),
			s.Deposits.String(),
			s.Realized.SignedString(),
			s.Unrealized.SignedString(),
			s.Total.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
