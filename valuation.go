package giro

import (
	"math"
	"sort"
	"time"
)

// snapshotTolerance is the materiality threshold, in reporting-currency
// units, below which an extra as-of-now snapshot is not worth emitting.
const snapshotTolerance = 0.01

// PriceBook resolves instrument prices for valuation. It combines an
// optional observation timeline (most recent observation at or before the
// valuation instant wins) with an optional current-price map used as a
// fallback. A nil PriceBook resolves nothing.
type PriceBook struct {
	timeline map[string][]PriceObservation
	current  map[string]Money
}

// NewPriceBook builds a price book from an observation list and a
// current-price map, either of which may be empty. Observations are
// grouped per instrument key and sorted by timestamp.
func NewPriceBook(observations []PriceObservation, current map[string]Money) *PriceBook {
	b := &PriceBook{
		timeline: make(map[string][]PriceObservation),
		current:  current,
	}
	for _, o := range observations {
		b.timeline[o.Key] = append(b.timeline[o.Key], o)
	}
	for _, obs := range b.timeline {
		sort.SliceStable(obs, func(i, j int) bool {
			return obs[i].Timestamp.Before(obs[j].Timestamp)
		})
	}
	return b
}

// Resolve returns the price of an instrument as of the given instant: the
// most recent timeline observation at or before it, else the current-price
// entry, else nothing.
func (b *PriceBook) Resolve(key string, asOf time.Time) (Money, bool) {
	if b == nil {
		return Money{}, false
	}
	if obs := b.timeline[key]; len(obs) > 0 {
		// first observation strictly after asOf
		i := sort.Search(len(obs), func(i int) bool {
			return obs[i].Timestamp.After(asOf)
		})
		if i > 0 {
			return obs[i-1].Price, true
		}
	}
	p, ok := b.current[key]
	return p, ok
}

// ResolveNow returns the freshest known price: the current-price entry
// when present, else the latest timeline observation.
func (b *PriceBook) ResolveNow(key string) (Money, bool) {
	if b == nil {
		return Money{}, false
	}
	if p, ok := b.current[key]; ok {
		return p, true
	}
	if obs := b.timeline[key]; len(obs) > 0 {
		return obs[len(obs)-1].Price, true
	}
	return Money{}, false
}

// hasCurrent reports whether the book carries a current-price map, which
// gates the trailing as-of-now snapshot.
func (b *PriceBook) hasCurrent() bool { return b != nil && len(b.current) > 0 }

// Snapshot is a timestamped valuation of the whole portfolio. The
// accounting identity Deposits + Realized + Unrealized = Total holds for
// every snapshot.
type Snapshot struct {
	Timestamp  time.Time
	Deposits   Money
	Realized   Money
	Unrealized Money
	Total      Money
}

// unrealizedAt sums the mark-to-market profit and loss of all open
// positions at the given instant. A position with no resolvable price is
// valued at its cost basis and therefore contributes zero.
func unrealizedAt(s *State, book *PriceBook, at time.Time) Money {
	var total Money
	for _, p := range s.Positions() {
		if price, ok := book.Resolve(p.Instrument.Key(), at); ok {
			total = total.Add(p.Unrealized(price))
		}
	}
	return total
}

func buildSnapshot(s *State, book *PriceBook, at time.Time) Snapshot {
	unrealized := unrealizedAt(s, book, at)
	return Snapshot{
		Timestamp:  at,
		Deposits:   s.Deposits,
		Realized:   s.Realized,
		Unrealized: unrealized,
		Total:      s.Deposits.Add(s.Realized).Add(unrealized),
	}
}

// ValueAt returns the total portfolio value at an instant: deposits plus
// realized plus the mark-to-market value of what is open. Callers use it
// to establish the percentage base of periodic reports.
func (l *Ledger) ValueAt(book *PriceBook, at time.Time) Money {
	return buildSnapshot(l.StateAt(at), book, at).Total
}

// Snapshots replays the ledger and emits one valuation snapshot per event,
// in event order. If the price book carries current prices and the
// valuation as of asOf differs materially from the last emitted snapshot,
// one trailing as-of-now snapshot is appended.
func (l *Ledger) Snapshots(book *PriceBook, asOf time.Time) []Snapshot {
	snaps := make([]Snapshot, 0, len(l.events))
	state := l.Replay(func(e Event, s *State, _ Money) {
		snaps = append(snaps, buildSnapshot(s, book, e.When()))
	})
	if len(snaps) == 0 || !book.hasCurrent() {
		return snaps
	}
	// The trailing snapshot marks to the freshest prices, not to the
	// timeline as of the last event.
	var unrealized Money
	for _, p := range state.Positions() {
		if price, ok := book.ResolveNow(p.Instrument.Key()); ok {
			unrealized = unrealized.Add(p.Unrealized(price))
		}
	}
	final := Snapshot{
		Timestamp:  asOf,
		Deposits:   state.Deposits,
		Realized:   state.Realized,
		Unrealized: unrealized,
		Total:      state.Deposits.Add(state.Realized).Add(unrealized),
	}
	last := snaps[len(snaps)-1]
	if math.Abs(final.Total.AsFloat()-last.Total.AsFloat()) > snapshotTolerance {
		snaps = append(snaps, final)
	}
	return snaps
}
