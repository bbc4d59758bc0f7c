package giro

import (
	"sort"
	"time"
)

// Ledger is an immutable, chronologically sorted event stream. All reports
// are computed by replaying it; the ledger itself holds no derived state.
type Ledger struct {
	events []Event
}

// NewLedger builds a ledger from an event stream. The stream is stable
// sorted by timestamp, so callers may pass events in any order; events
// sharing a timestamp keep their relative input order.
func NewLedger(events []Event) *Ledger {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When().Before(sorted[j].When())
	})
	return &Ledger{events: sorted}
}

// Events returns the sorted event stream.
func (l *Ledger) Events() []Event { return l.events }

// Position is the open exposure in one instrument: a signed quantity and
// the weighted-average entry price per unit.
type Position struct {
	Instrument Instrument
	Quantity   Quantity // signed, never zero for an open position
	AvgPrice   Money    // per unit, always positive
}

// CostBasis returns the absolute capital committed to the position:
// |quantity| x average price x contract multiplier.
func (p Position) CostBasis() Money {
	return p.AvgPrice.Mul(p.Quantity.Abs()).Mul(p.Instrument.Multiplier())
}

// MarketValue returns the signed value of the position at the given unit
// price. Short positions value negative.
func (p Position) MarketValue(price Money) Money {
	return price.Mul(p.Quantity).Mul(p.Instrument.Multiplier())
}

// Unrealized returns the profit or loss of closing the position at the
// given unit price. The formula (price - avg) x quantity x multiplier is
// sign-correct for both long and short exposure.
func (p Position) Unrealized(price Money) Money {
	return price.Sub(p.AvgPrice).Mul(p.Quantity).Mul(p.Instrument.Multiplier())
}

// State is the accumulator of a ledger replay: the open positions plus the
// running realized, deposit and fee totals.
type State struct {
	positions map[string]Position

	// Realized is the cumulative profit and loss from closed quantity,
	// gross of fees.
	Realized Money
	// Deposits is the cumulative external capital: deposits minus
	// withdrawals.
	Deposits Money
	// Fees is the cumulative transaction cost.
	Fees Money
}

func newState() *State {
	return &State{positions: make(map[string]Position)}
}

// Position returns the open position for an instrument key, if any.
func (s *State) Position(key string) (Position, bool) {
	p, ok := s.positions[key]
	return p, ok
}

// Positions returns the open positions sorted by instrument key.
func (s *State) Positions() []Position {
	keys := make([]string, 0, len(s.positions))
	for k := range s.positions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Position, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.positions[k])
	}
	return out
}

// apply folds one event into the state and returns the realized profit or
// loss it produced (zero for anything but a closing trade).
func (s *State) apply(e Event) Money {
	switch ev := e.(type) {
	case Trade:
		realized := s.applyTrade(ev)
		s.Realized = s.Realized.Add(realized)
		s.Fees = s.Fees.Add(ev.Fee)
		return realized
	case Deposit:
		s.Deposits = s.Deposits.Add(ev.Amount)
	}
	return Money{}
}

// applyTrade updates the position for the trade's instrument under
// weighted-average cost accounting and returns the realized delta.
//
// A trade whose sign matches the position extends it and re-averages the
// entry price. An opposite-sign trade first closes quantity up to the
// position size, realizing the difference between the proceeds allocated
// to the closed quantity and their average cost; any excess flips the
// position to the other side at the trade price.
func (s *State) applyTrade(t Trade) Money {
	if t.Quantity.IsZero() {
		return Money{}
	}

	key := t.Instrument.Key()
	pos, open := s.positions[key]

	// Opening a new position, or adding to the same side.
	if !open || pos.Quantity.SameSign(t.Quantity) {
		if !open {
			s.positions[key] = Position{
				Instrument: t.Instrument,
				Quantity:   t.Quantity,
				AvgPrice:   t.Price,
			}
			return Money{}
		}
		held, added := pos.Quantity.Abs(), t.Quantity.Abs()
		cost := pos.AvgPrice.Mul(held).Add(t.Price.Mul(added))
		pos.Quantity = pos.Quantity.Add(t.Quantity)
		pos.AvgPrice = cost.Div(held.Add(added))
		s.positions[key] = pos
		return Money{}
	}

	// Opposite side: close quantity up to the position size. The trade's
	// cash value is allocated to the closed quantity pro rata.
	mult := t.Instrument.Multiplier()
	closed := pos.Quantity.MinAbs(t.Quantity)
	allocated := t.Value.Mul(closed).Div(t.Quantity.Abs())
	costOfClosed := pos.AvgPrice.Mul(closed).Mul(mult)
	var realized Money
	if pos.Quantity.Sign() > 0 {
		realized = allocated.Sub(costOfClosed)
	} else {
		realized = allocated.Add(costOfClosed)
	}

	remainder := pos.Quantity.Add(t.Quantity)
	switch {
	case remainder.IsZero():
		delete(s.positions, key)
	case remainder.SameSign(pos.Quantity):
		// Partial close, average price unchanged.
		pos.Quantity = remainder
		s.positions[key] = pos
	default:
		// Sign flip: the excess opens a fresh position at the trade price.
		s.positions[key] = Position{
			Instrument: t.Instrument,
			Quantity:   remainder,
			AvgPrice:   t.Price,
		}
	}
	return realized
}

// Replay folds the whole event stream into a final state. The optional
// visitor observes the state after each event, together with the realized
// delta the event produced; reports hook in here to cut snapshots and
// period buckets without re-walking the ledger themselves.
func (l *Ledger) Replay(visit func(e Event, s *State, realized Money)) *State {
	s := newState()
	for _, e := range l.events {
		realized := s.apply(e)
		if visit != nil {
			visit(e, s, realized)
		}
	}
	return s
}

// StateAt replays the ledger up to and including the given time.
func (l *Ledger) StateAt(t time.Time) *State {
	s := newState()
	for _, e := range l.events {
		if e.When().After(t) {
			break
		}
		s.apply(e)
	}
	return s
}
