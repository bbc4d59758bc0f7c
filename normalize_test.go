package giro

import (
	"testing"
	"time"
)

func txRecord(date, clock string, qty, price float64) TransactionRecord {
	return TransactionRecord{
		Date:       date,
		Time:       clock,
		Instrument: flowShare,
		Quantity:   Q(qty),
		Price:      EUR(price),
		Value:      EUR(price).Mul(Q(qty)).Neg(),
	}
}

func TestNormalize_SortsChronologically(t *testing.T) {
	events, skipped := Normalize(
		[]TransactionRecord{
			txRecord("10-03-2022", "14:30", 5, 30),
			txRecord("03-01-2022", "09:05", 10, 28),
		},
		[]CashRecord{
			{Date: "02-01-2022", Time: "12:00", Description: "iDEAL Deposit", Amount: EUR(1000)},
		},
	)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	if _, ok := events[0].(Deposit); !ok {
		t.Errorf("events[0] = %T, want the deposit first", events[0])
	}
	for i := 1; i < len(events); i++ {
		if events[i].When().Before(events[i-1].When()) {
			t.Errorf("events out of order at %d: %v before %v", i, events[i].When(), events[i-1].When())
		}
	}
}

func TestNormalize_BadDateDropsRecord(t *testing.T) {
	events, skipped := Normalize(
		[]TransactionRecord{
			txRecord("not-a-date", "09:05", 10, 28),
			txRecord("03-01-2022", "09:05", 10, 28),
		},
		nil,
	)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(events))
	}
}

func TestNormalize_BadTimeDegradesToMidnight(t *testing.T) {
	events, skipped := Normalize(
		[]TransactionRecord{txRecord("03-01-2022", "", 10, 28)},
		nil,
	)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	want := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	if got := events[0].When(); !got.Equal(want) {
		t.Errorf("When() = %v, want %v", got, want)
	}
}

func TestNormalize_ISODateAccepted(t *testing.T) {
	events, skipped := Normalize(
		[]TransactionRecord{txRecord("2022-01-03", "09:05", 10, 28)},
		nil,
	)
	if skipped != 0 || len(events) != 1 {
		t.Fatalf("skipped = %d, len = %d, want 0 and 1", skipped, len(events))
	}
}

func TestClassifyCash(t *testing.T) {
	tests := []struct {
		desc string
		want CashClass
	}{
		{"iDEAL Deposit", CashDeposit},
		{"flatex Deposit", CashDeposit},
		{"Withdrawal", CashDeposit},
		{"Dividend", CashDividend},
		{"Dividend Tax", CashDividend},
		{"DEGIRO Transaction and/or third party fees", CashOther},
		{"Flatex Interest", CashOther},
		{"FX Credit", CashOther},
	}
	for _, tt := range tests {
		if got := ClassifyCash(tt.desc); got != tt.want {
			t.Errorf("ClassifyCash(%q) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}

func TestExtractDividends(t *testing.T) {
	divs := ExtractDividends([]CashRecord{
		{Date: "05-06-2022", Time: "10:00", Description: "Dividend", Amount: EUR(12.50)},
		{Date: "01-03-2022", Time: "10:00", Description: "Dividend", Amount: EUR(8)},
		{Date: "01-03-2022", Time: "10:01", Description: "iDEAL Deposit", Amount: EUR(500)},
	})
	if len(divs) != 2 {
		t.Fatalf("len = %d, want 2", len(divs))
	}
	if divs[0].Timestamp.After(divs[1].Timestamp) {
		t.Error("dividends not sorted chronologically")
	}
	if got, want := divs[0].Amount, EUR(8); !got.Equal(want) {
		t.Errorf("first dividend = %v, want %v", got, want)
	}
}
