package ingest

import (
	"regexp"
	"strconv"
	"time"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// optionName matches the broker's option naming convention, for example
// "FLW P31.00 18MAR22": an underlying code, a call/put letter glued to the
// strike, and a DDMMMYY expiry.
var optionName = regexp.MustCompile(`^(.+) ([CP])(\d+(?:\.\d+)?) (\d{2})([A-Z]{3})(\d{2})$`)

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// Classify builds the tagged instrument for a product row. A name that
// matches the option convention becomes an Option with its parsed strike,
// expiry and right; anything ambiguous defaults to Equity, never an error.
func Classify(isin, name, currency string) giro.Instrument {
	inst := giro.Instrument{ISIN: isin, Name: name, Kind: giro.Equity}

	m := optionName.FindStringSubmatch(name)
	if m == nil {
		return inst
	}
	strike, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return inst
	}
	month, ok := months[m[5]]
	if !ok {
		return inst
	}
	dom, _ := strconv.Atoi(m[4])
	year, _ := strconv.Atoi(m[6])

	inst.Kind = giro.Option
	inst.Strike = giro.M(strike, currency)
	inst.Expiry = time.Date(2000+year, month, dom, 0, 0, 0, 0, time.UTC)
	if m[2] == "P" {
		inst.Right = giro.Put
	} else {
		inst.Right = giro.Call
	}
	return inst
}
