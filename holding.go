package giro

import "time"

// Holding is the reporting view of one open position, enriched with the
// current price when one resolves. It is recomputed on demand and never
// persisted.
type Holding struct {
	Instrument   Instrument
	Quantity     Quantity
	AvgPrice     Money
	CurrentPrice Money
	Priced       bool // false when no price resolved; Unrealized is then zero
	TotalCost    Money
	Unrealized   Money
}

// Holdings replays the ledger and returns the open positions as of the
// given instant, sorted by instrument key, valued against the price book.
func (l *Ledger) Holdings(book *PriceBook, asOf time.Time) []Holding {
	state := l.StateAt(asOf)
	positions := state.Positions()
	holdings := make([]Holding, 0, len(positions))
	for _, p := range positions {
		h := Holding{
			Instrument: p.Instrument,
			Quantity:   p.Quantity,
			AvgPrice:   p.AvgPrice,
			TotalCost:  p.CostBasis(),
		}
		if price, ok := book.Resolve(p.Instrument.Key(), asOf); ok {
			h.CurrentPrice = price
			h.Priced = true
			h.Unrealized = p.Unrealized(price)
		}
		holdings = append(holdings, h)
	}
	return holdings
}
