package store

import (
	"context"
	"testing"
	"time"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(date string, qty float64) giro.TransactionRecord {
	return giro.TransactionRecord{
		Date:       date,
		Time:       "09:05",
		Instrument: giro.Instrument{ISIN: "NL0009538784", Name: "FLOW TRADERS", Kind: giro.Equity},
		Quantity:   giro.Q(qty),
		Price:      giro.M(28.50, "EUR"),
		Value:      giro.M(-28.50*qty, "EUR"),
		Fee:        giro.M(-2, "EUR"),
		OrderID:    "abc-123",
	}
}

func TestStore_TransactionsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []giro.TransactionRecord{
		testRecord("03-01-2022", 10),
		testRecord("04-01-2022", -4),
	}
	batch, inserted, err := s.SaveTransactions(ctx, recs)
	if err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	if batch == "" {
		t.Error("expected a batch id")
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	got, err := s.Transactions(ctx)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Quantity.Equal(giro.Q(10)) {
		t.Errorf("Quantity = %v, want 10", got[0].Quantity)
	}
	if !got[0].Price.Equal(giro.M(28.50, "EUR")) {
		t.Errorf("Price = %v, want 28.50 EUR", got[0].Price)
	}
	if got[0].Instrument.Kind != giro.Equity {
		t.Errorf("Kind = %v, want Equity", got[0].Instrument.Kind)
	}
}

func TestStore_ReimportIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []giro.TransactionRecord{testRecord("03-01-2022", 10)}
	if _, inserted, err := s.SaveTransactions(ctx, recs); err != nil || inserted != 1 {
		t.Fatalf("first import: inserted = %d, err = %v", inserted, err)
	}
	// Same rows plus one new: only the new one lands.
	recs = append(recs, testRecord("05-01-2022", 3))
	_, inserted, err := s.SaveTransactions(ctx, recs)
	if err != nil {
		t.Fatalf("second import error = %v", err)
	}
	if inserted != 1 {
		t.Errorf("inserted = %d, want 1", inserted)
	}
	got, _ := s.Transactions(ctx)
	if len(got) != 2 {
		t.Errorf("stored rows = %d, want 2", len(got))
	}
}

func TestStore_CashRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []giro.CashRecord{
		{Date: "02-01-2022", Time: "12:00", Description: "iDEAL Deposit", Amount: giro.M(1000, "EUR")},
		{Date: "05-06-2022", Time: "10:00", Description: "Dividend", Amount: giro.M(12.50, "EUR")},
	}
	if _, inserted, err := s.SaveCash(ctx, recs); err != nil || inserted != 2 {
		t.Fatalf("SaveCash: inserted = %d, err = %v", inserted, err)
	}
	got, err := s.Cash(ctx)
	if err != nil {
		t.Fatalf("Cash() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Amount.Equal(giro.M(1000, "EUR")) {
		t.Errorf("Amount = %v, want 1000 EUR", got[0].Amount)
	}
}

func TestStore_PriceUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	inst := giro.Instrument{ISIN: "NL0009538784", Name: "FLOW TRADERS", Kind: giro.Equity}

	if err := s.UpsertPrice(ctx, inst, giro.M(28.50, "EUR"), time.Now()); err != nil {
		t.Fatalf("UpsertPrice() error = %v", err)
	}
	if err := s.UpsertPrice(ctx, inst, giro.M(30.10, "EUR"), time.Now()); err != nil {
		t.Fatalf("UpsertPrice() second error = %v", err)
	}

	prices, err := s.Prices(ctx)
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("len = %d, want 1 (upsert replaces)", len(prices))
	}
	if got, want := prices[inst.Key()], giro.M(30.10, "EUR"); !got.Equal(want) {
		t.Errorf("price = %v, want %v", got, want)
	}
}
