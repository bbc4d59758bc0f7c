// Package pricefeed fetches current quotes for listed instruments from
// Tradegate-style public endpoints. It runs strictly out of band from the
// ledger computation: the caller collects prices here, persists them, and
// hands the engine a plain map.
package pricefeed

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	giro "github.com/KoenM-bit/my-giro-tracker"
)

// Fetcher retrieves current quotes. Responses are cached on disk for a
// day, so repeated report runs do not hammer the quote source.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a fetcher with the daily disk cache enabled.
func NewFetcher() *Fetcher {
	return &Fetcher{client: daily()}
}

// Fetch returns the latest traded price for an instrument, quoted in EUR
// as the venue trades everything in EUR.
func (f *Fetcher) Fetch(inst giro.Instrument) (giro.Money, error) {
	val, err := f.latest(inst.Name, inst.ISIN)
	if err != nil {
		return giro.Money{}, err
	}
	return giro.M(val, "EUR"), nil
}

// latest fetches the last traded value for an ISIN from the refresh
// endpoint.
func (f *Fetcher) latest(name, isin string) (float64, error) {
	addr := "https://www.tradegate.de/refresh.php?isin=" + isin

	var jobj map[string]any
	if err := jwget(f.client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", name, err)
	}
	return parseRefresh(name, jobj)
}

// parseRefresh extracts a price from a refresh.php payload. 'last' is the
// last transaction and moves slower than the bid, but the bid can be 0.
func parseRefresh(name string, jobj map[string]any) (float64, error) {
	jval := jobj["last"]
	if s, ok := jval.(string); ok && s == "./." {
		// the venue shows an empty last this way, use the bid instead
		jval = jobj["bid"]
	}
	val, ok := jval.(float64)
	if !ok {
		// sometimes this weird API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("cannot read value for %q: neither a float nor a string", name)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		var err error
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("cannot read value for %q: invalid string %q: %w", name, sval, err)
		}
	}
	if val == 0 {
		// sometimes the bid is empty and returns 0
		return math.NaN(), fmt.Errorf("empty bid for %q, no value to return", name)
	}
	return val, nil
}

// FetchChart returns the latest point of the intraday series for an
// instrument id on the chart endpoint, used for products the refresh
// endpoint does not carry (index trackers, currencies).
func (f *Fetcher) FetchChart(instrumentID string) (giro.Money, error) {
	addr := "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=" +
		instrumentID + "&series=intraday&type=mini"
	var jobj any
	if err := jwget(f.client, addr, &jobj); err != nil {
		return giro.Money{}, fmt.Errorf("error in wget %q: %w", instrumentID, err)
	}
	val, err := parseChartSeries(jobj)
	if err != nil {
		return giro.Money{}, fmt.Errorf("error parsing chart for %q: %w", instrumentID, err)
	}
	return giro.M(val, "EUR"), nil
}

// parseChartSeries pulls the value of the last intraday data point.
func parseChartSeries(jobj any) (float64, error) {
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("%q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%q: not a float: %v", path, jval)
	}
	return val, nil
}
