package giro

import "time"

// event layout follows the journal idea: the ledger consumes a single
// chronologically sorted stream of atomic, immutable facts.

// Event is a single, atomic operation in the portfolio's history.
type Event interface {
	When() time.Time
}

// Trade is the execution of a buy or sell order. Quantity is signed
// (negative for sells and short openings), Value is the signed cash flow
// of the full transacted quantity (negative when cash leaves the account).
type Trade struct {
	Timestamp  time.Time
	Instrument Instrument
	Quantity   Quantity
	Price      Money // unit price, always positive
	Value      Money // signed cash flow for the full quantity
	Fee        Money
	OrderID    string
}

func (t Trade) When() time.Time { return t.Timestamp }

// Deposit is an external cash movement into (positive) or out of
// (negative) the account. Dividends, interest and fees are deliberately
// not Deposits; they are not part of the invested-capital base.
type Deposit struct {
	Timestamp   time.Time
	Amount      Money
	Description string
}

func (d Deposit) When() time.Time { return d.Timestamp }

// TransactionRecord is a raw trade row as produced by the ingestion layer.
// Date and Time are kept as the broker's strings; the normalizer parses
// them into a single timestamp and drops rows it cannot parse.
type TransactionRecord struct {
	Date       string
	Time       string
	Instrument Instrument
	Quantity   Quantity
	Price      Money
	Value      Money
	Fee        Money
	OrderID    string
}

// CashRecord is a raw cash-activity row: deposits, withdrawals, dividends,
// interest, fees, internal bookings. The normalizer classifies it by its
// description.
type CashRecord struct {
	Date        string
	Time        string
	Description string
	Amount      Money
}

// PriceObservation is a single quote for an instrument at a point in time,
// supplied by the price-feed collaborator or a user override.
type PriceObservation struct {
	Key       string // instrument key, see Instrument.Key
	Price     Money
	Timestamp time.Time
}
