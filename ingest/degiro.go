package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// Transactions.csv column layout.
const (
	txColDate     = 0
	txColTime     = 1
	txColProduct  = 2
	txColISIN     = 3
	txColQuantity = 6
	txColPrice    = 7
	txColPriceCur = 8
	txColValue    = 11
	txColValueCur = 12
	txColFee      = 14
	txColOrderID  = 18
	txColumns     = 19
)

// Account.csv column layout.
const (
	cashColDate        = 0
	cashColTime        = 1
	cashColDescription = 5
	cashColAmountCur   = 7
	cashColAmount      = 8
	cashColumns        = 9
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports vary, validate per row instead
	cr.LazyQuotes = true
	return cr
}

// isHeader reports whether a row is the export's header line.
func isHeader(row []string) bool {
	return len(row) > 0 && (strings.EqualFold(row[0], "date") || strings.EqualFold(row[0], "datum"))
}

// ParseTransactions reads a Transactions.csv export into raw transaction
// records. Malformed rows are logged and skipped; one bad row never fails
// the file.
func ParseTransactions(r io.Reader) ([]giro.TransactionRecord, error) {
	cr := newReader(r)
	var out []giro.TransactionRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("reading transactions csv: %w", err)
		}
		line++
		if line == 1 && isHeader(row) {
			continue
		}
		rec, err := parseTransactionRow(row)
		if err != nil {
			log.Printf("skipping transaction row %d: %v", line, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseTransactionRow(row []string) (giro.TransactionRecord, error) {
	if len(row) < txColumns {
		return giro.TransactionRecord{}, fmt.Errorf("expected %d columns, got %d", txColumns, len(row))
	}
	qty, err := ParseNumber(row[txColQuantity])
	if err != nil {
		return giro.TransactionRecord{}, fmt.Errorf("quantity %q: %w", row[txColQuantity], err)
	}
	price, err := ParseNumber(row[txColPrice])
	if err != nil {
		return giro.TransactionRecord{}, fmt.Errorf("price %q: %w", row[txColPrice], err)
	}
	value, err := ParseNumber(row[txColValue])
	if err != nil {
		return giro.TransactionRecord{}, fmt.Errorf("value %q: %w", row[txColValue], err)
	}
	// A missing fee is a zero fee, not an error.
	fee, err := ParseNumber(row[txColFee])
	if err != nil {
		fee = 0
	}
	cur := strings.TrimSpace(row[txColValueCur])
	return giro.TransactionRecord{
		Date:       strings.TrimSpace(row[txColDate]),
		Time:       strings.TrimSpace(row[txColTime]),
		Instrument: Classify(strings.TrimSpace(row[txColISIN]), strings.TrimSpace(row[txColProduct]), strings.TrimSpace(row[txColPriceCur])),
		Quantity:   giro.Q(qty),
		Price:      giro.M(price, strings.TrimSpace(row[txColPriceCur])),
		Value:      giro.M(value, cur),
		Fee:        giro.M(fee, cur),
		OrderID:    strings.TrimSpace(row[txColOrderID]),
	}, nil
}

// ParseAccount reads an Account.csv export into raw cash-activity records.
// Rows without an amount (informational lines) are skipped silently,
// malformed rows are logged and skipped.
func ParseAccount(r io.Reader) ([]giro.CashRecord, error) {
	cr := newReader(r)
	var out []giro.CashRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("reading account csv: %w", err)
		}
		line++
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) < cashColumns {
			log.Printf("skipping account row %d: expected %d columns, got %d", line, cashColumns, len(row))
			continue
		}
		raw := strings.TrimSpace(row[cashColAmount])
		if raw == "" {
			continue
		}
		amount, err := ParseNumber(raw)
		if err != nil {
			log.Printf("skipping account row %d: amount %q: %v", line, raw, err)
			continue
		}
		out = append(out, giro.CashRecord{
			Date:        strings.TrimSpace(row[cashColDate]),
			Time:        strings.TrimSpace(row[cashColTime]),
			Description: strings.TrimSpace(row[cashColDescription]),
			Amount:      giro.M(amount, strings.TrimSpace(row[cashColAmountCur])),
		})
	}
	return out, nil
}
