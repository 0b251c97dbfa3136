package repository

import (
	"context"
	"time"

	"FXPulse/internal/domain/models"
)

// QuoteStore holds one quote series per tracked currency. Series are
// replaced wholesale; there is no partial-update operation, so readers
// never observe a series mixing two fetch epochs.
type QuoteStore interface {
	Put(currency models.Currency, series models.QuoteSeries)
	Get(currency models.Currency) (models.QuoteSeries, error)
	Latest(currency models.Currency) (models.Quote, error)
}

// RateSource retrieves daily quotes for a currency from the external
// history source, paging until at least minCount samples are collected.
type RateSource interface {
	FetchDaily(ctx context.Context, currency models.Currency, minCount int) (models.QuoteSeries, error)
}

// Clock supplies the current time for cache decisions and forecast
// anchoring. Injected so tests can drive it.
type Clock interface {
	Now() time.Time
}

type Metrics interface {
	RecordFetch(currency string, pages int)
	RecordError(kind string)
	RecordCacheHit(currency string)
	RecordCacheMiss(currency string)
	RecordLastRate(currency string, rate float64)
	RecordLatency(op string, seconds float64)
}
