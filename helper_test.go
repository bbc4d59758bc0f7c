package giro

import "time"

var (
	flowShare = Instrument{ISIN: "NL0009538784", Name: "FLOW TRADERS", Kind: Equity}
	besiShare = Instrument{ISIN: "NL0012866412", Name: "BE SEMICONDUCTOR", Kind: Equity}
	flowPut   = Instrument{
		ISIN:   "DE000C59E5V4",
		Name:   "FLW P31.00 18MAR22",
		Kind:   Option,
		Strike: M(31, "EUR"),
		Expiry: time.Date(2022, 3, 18, 0, 0, 0, 0, time.UTC),
		Right:  Put,
	}
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for test timestamps within a single test year.
func day(month time.Month, d, hour int) time.Time {
	return time.Date(2022, month, d, hour, 0, 0, 0, time.UTC)
}

// trade builds a Trade whose cash-flow value is derived from quantity and
// price the way broker exports record it: negative when cash leaves the
// account.
func trade(ts time.Time, inst Instrument, qty, price float64) Trade {
	return Trade{
		Timestamp:  ts,
		Instrument: inst,
		Quantity:   Q(qty),
		Price:      EUR(price),
		Value:      EUR(price).Mul(Q(qty)).Mul(inst.Multiplier()).Neg(),
	}
}

func deposit(ts time.Time, amount float64) Deposit {
	return Deposit{Timestamp: ts, Amount: EUR(amount), Description: "iDEAL Deposit"}
}
