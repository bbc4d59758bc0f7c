package giro

import (
	"sort"
	"strings"
	"time"
)

// Broker export formats. DEGIRO-style files carry the date and the time of
// day in two separate columns.
const (
	dateFormat    = "02-01-2006"
	isoDateFormat = "2006-01-02"
	timeFormat    = "15:04"
)

// parseTimestamp combines a record's date and time strings into one
// timestamp. The date is mandatory; a bad time string degrades to
// midnight.
func parseTimestamp(date, clock string) (time.Time, bool) {
	d, err := time.Parse(dateFormat, date)
	if err != nil {
		d, err = time.Parse(isoDateFormat, date)
		if err != nil {
			return time.Time{}, false
		}
	}
	t, err := time.Parse(timeFormat, clock)
	if err != nil {
		return d, true
	}
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

// CashClass is the classification of a cash-activity record.
type CashClass int

const (
	// CashOther is everything that neither moves external capital nor pays
	// a dividend: interest, fees, internal transfers, currency bookings.
	CashOther CashClass = iota
	// CashDeposit marks an external deposit or withdrawal.
	CashDeposit
	// CashDividend marks a dividend payment (including dividend tax lines).
	CashDividend
)

// ClassifyCash classifies a cash-activity description. Only genuine
// external deposits and withdrawals count toward the invested-capital
// base; dividends are reported separately and everything else is ignored
// by the engine.
func ClassifyCash(description string) CashClass {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "dividend"):
		return CashDividend
	case strings.Contains(desc, "deposit"),
		strings.Contains(desc, "withdrawal"),
		strings.Contains(desc, "storting"), // dutch exports
		strings.Contains(desc, "opname"):
		return CashDeposit
	default:
		return CashOther
	}
}

// Normalize merges raw transaction and cash-activity records into one
// chronologically ordered event sequence. Records whose date cannot be
// parsed are dropped and counted in the returned skip count; the rest of
// the stream is unaffected.
//
// The sort is stable: events sharing a timestamp keep their original input
// order (transactions first, then cash records). Broker exports list
// same-timestamp fills in execution order, which is the best available
// approximation.
func Normalize(txs []TransactionRecord, cash []CashRecord) ([]Event, int) {
	events := make([]Event, 0, len(txs)+len(cash))
	skipped := 0

	for _, r := range txs {
		ts, ok := parseTimestamp(r.Date, r.Time)
		if !ok {
			skipped++
			continue
		}
		events = append(events, Trade{
			Timestamp:  ts,
			Instrument: r.Instrument,
			Quantity:   r.Quantity,
			Price:      r.Price,
			Value:      r.Value,
			Fee:        r.Fee,
			OrderID:    r.OrderID,
		})
	}

	for _, r := range cash {
		if ClassifyCash(r.Description) != CashDeposit {
			continue
		}
		ts, ok := parseTimestamp(r.Date, r.Time)
		if !ok {
			skipped++
			continue
		}
		events = append(events, Deposit{
			Timestamp:   ts,
			Amount:      r.Amount,
			Description: r.Description,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].When().Before(events[j].When())
	})
	return events, skipped
}

// DividendPayment is a dividend cash flow extracted from the cash-activity
// stream. It is not a ledger event; the aggregation reporters add it to
// realized figures per bucket.
type DividendPayment struct {
	Timestamp time.Time
	Amount    Money
}

// ExtractDividends collects dividend payments from cash-activity records,
// chronologically sorted. Unparseable dates are dropped.
func ExtractDividends(cash []CashRecord) []DividendPayment {
	var out []DividendPayment
	for _, r := range cash {
		if ClassifyCash(r.Description) != CashDividend {
			continue
		}
		ts, ok := parseTimestamp(r.Date, r.Time)
		if !ok {
			continue
		}
		out = append(out, DividendPayment{Timestamp: ts, Amount: r.Amount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
