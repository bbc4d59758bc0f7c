package giro

import (
	"sort"
	"time"
)

// Interval selects the calendar bucketing of a periodic report.
type Interval int

const (
	Monthly Interval = iota
	Yearly
)

// label renders the bucket key for a timestamp. Labels sort
// chronologically because they are zero-padded, but bucketing is done on
// parsed times, never on the label strings.
func (iv Interval) label(t time.Time) string {
	if iv == Yearly {
		return t.Format("2006")
	}
	return t.Format("2006-01")
}

// bucketStart returns the calendar start of the bucket containing t.
func (iv Interval) bucketStart(t time.Time) time.Time {
	if iv == Yearly {
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// bucketEnd returns the exclusive calendar end of the bucket starting at
// start.
func (iv Interval) bucketEnd(start time.Time) time.Time {
	if iv == Yearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// PeriodReturn is the performance of the portfolio over one calendar
// bucket. Unrealized is the change in mark-to-market value over the
// bucket, so the monthly figures of a year sum to that year's figure.
type PeriodReturn struct {
	Label      string
	Start      time.Time
	End        time.Time // exclusive, clamped to the report's asOf
	Realized   Money
	Dividends  Money
	Deposits   Money
	Unrealized Money
	Total      Money
	Percentage Percent
}

// NAVFunc supplies the portfolio's net asset value at a bucket's start,
// used as the base of the percentage return. Returning false means no base
// is known and the percentage is reported as zero.
type NAVFunc func(bucketStart time.Time) (Money, bool)

// periodItem interleaves ledger events with the out-of-band dividend
// stream so that dividend-only buckets still appear in the report.
type periodItem struct {
	when time.Time
	ev   Event // nil for a dividend item
	div  DividendPayment
}

func mergeItems(events []Event, dividends []DividendPayment, until time.Time) []periodItem {
	items := make([]periodItem, 0, len(events)+len(dividends))
	for _, e := range events {
		if e.When().After(until) {
			continue
		}
		items = append(items, periodItem{when: e.When(), ev: e})
	}
	for _, d := range dividends {
		if d.Timestamp.After(until) {
			continue
		}
		items = append(items, periodItem{when: d.Timestamp, div: d})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].when.Before(items[j].when)
	})
	return items
}

// PeriodReturns re-drives the ledger walk bucketed by calendar month or
// year and returns one PeriodReturn per bucket that saw activity,
// chronologically sorted. Dividends add to the bucket's income additively;
// the percentage base comes from the caller-supplied nav function.
func (l *Ledger) PeriodReturns(iv Interval, book *PriceBook, dividends []DividendPayment, nav NAVFunc, asOf time.Time) []PeriodReturn {
	items := mergeItems(l.events, dividends, asOf)
	if len(items) == 0 {
		return nil
	}

	var out []PeriodReturn
	state := newState()
	var cur *PeriodReturn
	var prevUnrealized Money

	closeBucket := func() {
		end := iv.bucketEnd(cur.Start)
		if end.After(asOf) {
			end = asOf
		}
		cur.End = end
		unrealized := unrealizedAt(state, book, end)
		cur.Unrealized = unrealized.Sub(prevUnrealized)
		prevUnrealized = unrealized
		cur.Total = cur.Realized.Add(cur.Dividends).Add(cur.Unrealized)
		income := cur.Realized.Add(cur.Dividends)
		if nav != nil {
			if base, ok := nav(cur.Start); ok && !base.IsZero() {
				cur.Percentage = Percent(income.AsFloat() / base.AsFloat() * 100)
			}
		}
		out = append(out, *cur)
	}

	for _, it := range items {
		label := iv.label(it.when)
		if cur == nil || cur.Label != label {
			if cur != nil {
				closeBucket()
			}
			cur = &PeriodReturn{Label: label, Start: iv.bucketStart(it.when)}
		}
		if it.ev != nil {
			realized := state.apply(it.ev)
			cur.Realized = cur.Realized.Add(realized)
			if dep, ok := it.ev.(Deposit); ok {
				cur.Deposits = cur.Deposits.Add(dep.Amount)
			}
		} else {
			cur.Dividends = cur.Dividends.Add(it.div.Amount)
		}
	}
	closeBucket()
	return out
}

// YearToDate reports the single bucket from January 1st of asOf's year up
// to asOf itself.
func (l *Ledger) YearToDate(book *PriceBook, dividends []DividendPayment, nav NAVFunc, asOf time.Time) PeriodReturn {
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	ret := PeriodReturn{Label: asOf.Format("2006") + " YTD", Start: yearStart, End: asOf}

	state := newState()
	var unrealizedAtStart Money
	seeded := false
	for _, e := range l.events {
		if e.When().After(asOf) {
			break
		}
		if !seeded && !e.When().Before(yearStart) {
			unrealizedAtStart = unrealizedAt(state, book, yearStart)
			seeded = true
		}
		realized := state.apply(e)
		if e.When().Before(yearStart) {
			continue
		}
		ret.Realized = ret.Realized.Add(realized)
		if dep, ok := e.(Deposit); ok {
			ret.Deposits = ret.Deposits.Add(dep.Amount)
		}
	}
	if !seeded {
		unrealizedAtStart = unrealizedAt(state, book, yearStart)
	}
	for _, d := range dividends {
		if d.Timestamp.Before(yearStart) || d.Timestamp.After(asOf) {
			continue
		}
		ret.Dividends = ret.Dividends.Add(d.Amount)
	}

	ret.Unrealized = unrealizedAt(state, book, asOf).Sub(unrealizedAtStart)
	ret.Total = ret.Realized.Add(ret.Dividends).Add(ret.Unrealized)
	if nav != nil {
		if base, ok := nav(yearStart); ok && !base.IsZero() {
			ret.Percentage = Percent(ret.Realized.Add(ret.Dividends).AsFloat() / base.AsFloat() * 100)
		}
	}
	return ret
}
