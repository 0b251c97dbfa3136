package models

import "time"

// Quote is one daily closing rate for a currency against the base.
type Quote struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// QuoteSeries is an ordered sequence of quotes for one currency-vs-base
// pair: ascending by date, no duplicate dates, every rate positive.
type QuoteSeries []Quote

// Clone returns an independent copy of the series.
func (s QuoteSeries) Clone() QuoteSeries {
	if s == nil {
		return nil
	}
	out := make(QuoteSeries, len(s))
	copy(out, s)
	return out
}

// Latest returns the most recent quote.
func (s QuoteSeries) Latest() (Quote, bool) {
	if len(s) == 0 {
		return Quote{}, false
	}
	return s[len(s)-1], true
}

// MinDate returns the earliest date in the series.
func (s QuoteSeries) MinDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// MaxDate returns the latest date in the series.
func (s QuoteSeries) MaxDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// CacheEntry is one fetch epoch for a currency. Entries are replaced
// wholesale, never patched, so readers never see a series mixing data
// from two fetches.
type CacheEntry struct {
	Series    QuoteSeries `json:"series"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// PointOrigin tags a forecast point as observed history or model output.
type PointOrigin string

const (
	OriginObserved PointOrigin = "observed"
	OriginForecast PointOrigin = "forecast"
)

// ForecastPoint is one dated rate in a forecast result.
type ForecastPoint struct {
	Date   time.Time   `json:"date"`
	Rate   float64     `json:"rate"`
	Origin PointOrigin `json:"origin"`
}
