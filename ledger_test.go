package giro

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestLedger_OpenAndExtend(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.January, 3, 10), flowShare, 10, 100),
		trade(day(time.January, 5, 10), flowShare, 5, 130),
	})
	s := l.Replay(nil)

	p, ok := s.Position(flowShare.Key())
	if !ok {
		t.Fatal("expected an open position")
	}
	if got, want := p.Quantity, Q(15); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	// (10*100 + 5*130) / 15 = 110
	if got, want := p.AvgPrice, EUR(110); !got.Equal(want) {
		t.Errorf("AvgPrice = %v, want %v", got, want)
	}
	if !s.Realized.IsZero() {
		t.Errorf("Realized = %v, want zero on extension", s.Realized)
	}
}

func TestLedger_PartialClose(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.January, 3, 10), flowShare, 10, 100),
		trade(day(time.January, 10, 10), flowShare, -4, 120),
	})
	s := l.Replay(nil)

	if got, want := s.Realized, EUR(80); !got.Equal(want) {
		t.Errorf("Realized = %v, want %v", got, want)
	}
	p, ok := s.Position(flowShare.Key())
	if !ok {
		t.Fatal("expected a remaining position")
	}
	if got, want := p.Quantity, Q(6); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := p.AvgPrice, EUR(100); !got.Equal(want) {
		t.Errorf("AvgPrice = %v, want unchanged %v", got, want)
	}
}

func TestLedger_RoundTripClose(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.February, 1, 9), flowShare, 10, 100),
		trade(day(time.February, 2, 9), flowShare, -10, 100),
	})
	s := l.Replay(nil)

	if !s.Realized.IsZero() {
		t.Errorf("Realized = %v, want zero", s.Realized)
	}
	if _, ok := s.Position(flowShare.Key()); ok {
		t.Error("position should be removed after a full close")
	}
}

func TestLedger_SignFlip(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.March, 1, 9), flowShare, 5, 50),
		trade(day(time.March, 2, 9), flowShare, -8, 60),
	})
	s := l.Replay(nil)

	// 5 x (60 - 50) on the closed long leg.
	if got, want := s.Realized, EUR(50); !got.Equal(want) {
		t.Errorf("Realized = %v, want %v", got, want)
	}
	p, ok := s.Position(flowShare.Key())
	if !ok {
		t.Fatal("expected a short position after the flip")
	}
	if got, want := p.Quantity, Q(-3); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := p.AvgPrice, EUR(60); !got.Equal(want) {
		t.Errorf("AvgPrice = %v, want the flipping trade's own price %v", got, want)
	}
}

func TestLedger_OptionMultiplier(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.January, 4, 11), flowPut, -2, 1.50),
	})
	s := l.Replay(nil)

	p, ok := s.Position(flowPut.Key())
	if !ok {
		t.Fatal("expected an open short option position")
	}
	if got, want := p.Unrealized(EUR(0.50)), EUR(200); !got.Equal(want) {
		t.Errorf("Unrealized = %v, want %v", got, want)
	}
	if got, want := p.CostBasis(), EUR(300); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}
}

func TestLedger_OptionShortClose(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.January, 4, 11), flowPut, -2, 1.50),
		trade(day(time.February, 4, 11), flowPut, 2, 0.50),
	})
	s := l.Replay(nil)

	// Sold at 1.50, bought back at 0.50, 2 contracts of 100.
	if got, want := s.Realized, EUR(200); !got.Equal(want) {
		t.Errorf("Realized = %v, want %v", got, want)
	}
	if _, ok := s.Position(flowPut.Key()); ok {
		t.Error("position should be removed after buying back the short")
	}
}

func TestLedger_ZeroQuantityIsNoOp(t *testing.T) {
	l := NewLedger([]Event{
		trade(day(time.January, 3, 10), flowShare, 10, 100),
		trade(day(time.January, 4, 10), flowShare, 0, 999),
	})
	s := l.Replay(nil)

	p, _ := s.Position(flowShare.Key())
	if got, want := p.Quantity, Q(10); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := p.AvgPrice, EUR(100); !got.Equal(want) {
		t.Errorf("AvgPrice = %v, want %v", got, want)
	}
	if !s.Realized.IsZero() {
		t.Errorf("Realized = %v, want zero", s.Realized)
	}
}

func TestLedger_EmptyInputs(t *testing.T) {
	l := NewLedger(nil)
	s := l.Replay(nil)
	if len(s.Positions()) != 0 {
		t.Error("expected no positions")
	}
	if snaps := l.Snapshots(nil, day(time.December, 31, 0)); len(snaps) != 0 {
		t.Errorf("Snapshots = %d entries, want none", len(snaps))
	}
	if holdings := l.Holdings(nil, day(time.December, 31, 0)); len(holdings) != 0 {
		t.Errorf("Holdings = %d entries, want none", len(holdings))
	}
}

func TestLedger_AccountingIdentity(t *testing.T) {
	events := []Event{
		deposit(day(time.January, 2, 9), 10000),
		trade(day(time.January, 3, 10), flowShare, 10, 100),
		trade(day(time.January, 4, 11), flowPut, -2, 1.50),
		trade(day(time.February, 10, 10), flowShare, -4, 120),
		trade(day(time.February, 15, 10), besiShare, 20, 60),
		deposit(day(time.March, 1, 9), -2000),
		trade(day(time.March, 2, 9), flowShare, -8, 60),
		trade(day(time.March, 10, 11), flowPut, 2, 0.50),
	}
	book := NewPriceBook(nil, map[string]Money{
		flowShare.Key(): EUR(65),
		besiShare.Key(): EUR(58),
	})

	snaps := NewLedger(events).Snapshots(book, day(time.April, 1, 0))
	if len(snaps) == 0 {
		t.Fatal("expected snapshots")
	}
	for _, s := range snaps {
		lhs := s.Deposits.Add(s.Realized).Add(s.Unrealized).AsFloat()
		if math.Abs(lhs-s.Total.AsFloat()) > 1e-6 {
			t.Errorf("at %v: deposits+realized+unrealized = %v, total = %v",
				s.Timestamp, lhs, s.Total)
		}
	}
}

func TestLedger_Idempotence(t *testing.T) {
	events := []Event{
		deposit(day(time.January, 2, 9), 5000),
		trade(day(time.January, 3, 10), flowShare, 10, 100),
		trade(day(time.January, 3, 10), flowShare, -4, 120),
		trade(day(time.January, 4, 11), flowPut, -2, 1.50),
	}
	book := NewPriceBook(nil, map[string]Money{flowShare.Key(): EUR(110)})
	asOf := day(time.June, 1, 0)

	first := NewLedger(events)
	second := NewLedger(events)
	if !reflect.DeepEqual(first.Snapshots(book, asOf), second.Snapshots(book, asOf)) {
		t.Error("Snapshots differ between identical runs")
	}
	if !reflect.DeepEqual(first.Holdings(book, asOf), second.Holdings(book, asOf)) {
		t.Error("Holdings differ between identical runs")
	}
}

func TestLedger_StableOrderOnEqualTimestamps(t *testing.T) {
	ts := day(time.January, 3, 10)
	// Sell before buy in input order; the stable sort must preserve it so
	// the sell flips short before the buy closes it back.
	l := NewLedger([]Event{
		trade(ts, flowShare, -5, 100),
		trade(ts, flowShare, 5, 90),
	})
	s := l.Replay(nil)

	if _, ok := s.Position(flowShare.Key()); ok {
		t.Error("expected a flat position")
	}
	// Shorted at 100, covered at 90.
	if got, want := s.Realized, EUR(50); !got.Equal(want) {
		t.Errorf("Realized = %v, want %v", got, want)
	}
}
