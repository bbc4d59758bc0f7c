package giro

import "time"

// Kind discriminates the instrument variants the ledger knows about.
type Kind int

const (
	// Equity covers stocks, ETFs and anything else valued one-to-one.
	Equity Kind = iota
	// Option is an option contract, valued per the contract multiplier.
	Option
)

func (k Kind) String() string {
	switch k {
	case Equity:
		return "equity"
	case Option:
		return "option"
	default:
		return "unknown"
	}
}

// Right is the exercise right of an option contract.
type Right int

const (
	Call Right = iota
	Put
)

func (r Right) String() string {
	if r == Put {
		return "put"
	}
	return "call"
}

// OptionContractSize is the number of underlying units per option contract.
const OptionContractSize = 100

// Instrument identifies a tradable product. The classification is attached
// once at ingestion time; the ledger never re-derives the kind from the
// product name.
type Instrument struct {
	ISIN string
	Name string
	Kind Kind

	// Option terms, zero-valued for equities.
	Strike Money
	Expiry time.Time
	Right  Right
}

// Key returns the instrument key used by the ledger to group transactions.
// Brokers reuse ISINs across option series, so the name disambiguates.
func (i Instrument) Key() string { return i.ISIN + "|" + i.Name }

// Multiplier returns the per-unit scaling factor applied to cost,
// realization and valuation: the contract size for options, 1 otherwise.
func (i Instrument) Multiplier() Quantity {
	if i.Kind == Option {
		return Q(OptionContractSize)
	}
	return Q(1)
}
