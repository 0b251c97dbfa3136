package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/pkg/cache"
	applogger "FXPulse/pkg/logger"
)

// RateCache wraps the rate source with TTL semantics over a pluggable
// byte store. Entries are replaced wholesale per fetch epoch, staleness
// is decided against the injected clock, and concurrent fetches for
// the same currency are coalesced into one source call.
//
// A forced refresh flushes the whole cache, not just the requested
// currency; every tracked currency is refetched on its next access.
// This mirrors the cache-wide invalidation the service has always had
// and is kept deliberately; Invalidate offers the currency-scoped
// alternative.
type RateCache struct {
	source  drepo.RateSource
	backend cache.Store
	clock   drepo.Clock
	metrics drepo.Metrics
	logger  *applogger.Logger
	ttl     time.Duration
	samples int

	mu       sync.Mutex
	inflight map[models.Currency]*fetchCall
}

type fetchCall struct {
	done   chan struct{}
	series models.QuoteSeries
	err    error
}

// NewRateCache creates a rate cache. samples is the minimum history
// length requested from the source on each refresh.
func NewRateCache(
	source drepo.RateSource,
	backend cache.Store,
	clock drepo.Clock,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	ttl time.Duration,
	samples int,
) *RateCache {
	return &RateCache{
		source:   source,
		backend:  backend,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
		ttl:      ttl,
		samples:  samples,
		inflight: make(map[models.Currency]*fetchCall),
	}
}

func cacheKey(c models.Currency) string {
	return fmt.Sprintf("quotes:%s", c)
}

// GetOrFetch returns the cached series for a currency, refetching when
// the entry is stale or absent. force drops every cached entry first.
func (rc *RateCache) GetOrFetch(ctx context.Context, currency models.Currency, force bool) (models.QuoteSeries, error) {
	if force {
		if err := rc.InvalidateAll(ctx); err != nil {
			return nil, err
		}
	} else if entry, ok := rc.lookup(ctx, currency); ok {
		rc.metrics.RecordCacheHit(currency.String())
		return entry.Series, nil
	}

	rc.metrics.RecordCacheMiss(currency.String())
	return rc.fetch(ctx, currency)
}

// Invalidate drops the cached entry for one currency only.
func (rc *RateCache) Invalidate(ctx context.Context, currency models.Currency) error {
	return rc.backend.Delete(ctx, cacheKey(currency))
}

// InvalidateAll flushes every cached entry.
func (rc *RateCache) InvalidateAll(ctx context.Context) error {
	return rc.backend.Flush(ctx)
}

func (rc *RateCache) lookup(ctx context.Context, currency models.Currency) (models.CacheEntry, bool) {
	data, err := rc.backend.Get(ctx, cacheKey(currency))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			rc.logger.Warn("cache read failed",
				applogger.String("currency", currency.String()),
				applogger.Error(err),
			)
		}
		return models.CacheEntry{}, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		rc.logger.Warn("cache entry corrupt, refetching",
			applogger.String("currency", currency.String()),
			applogger.Error(err),
		)
		return models.CacheEntry{}, false
	}

	if rc.clock.Now().Sub(entry.FetchedAt) >= rc.ttl {
		return models.CacheEntry{}, false
	}
	return entry, true
}

// fetch coalesces concurrent callers for the same currency onto one
// source call. Failures are not cached, so the next access retries.
func (rc *RateCache) fetch(ctx context.Context, currency models.Currency) (models.QuoteSeries, error) {
	rc.mu.Lock()
	if call, ok := rc.inflight[currency]; ok {
		rc.mu.Unlock()
		select {
		case <-call.done:
			return call.series, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &fetchCall{done: make(chan struct{})}
	rc.inflight[currency] = call
	rc.mu.Unlock()

	series, err := rc.source.FetchDaily(ctx, currency, rc.samples)
	if err == nil {
		entry := models.CacheEntry{Series: series, FetchedAt: rc.clock.Now()}
		if data, merr := json.Marshal(entry); merr == nil {
			if serr := rc.backend.Set(ctx, cacheKey(currency), data, 0); serr != nil {
				rc.logger.Warn("cache write failed",
					applogger.String("currency", currency.String()),
					applogger.Error(serr),
				)
			}
		}
	} else {
		rc.metrics.RecordError("fetch")
	}

	call.series, call.err = series, err
	close(call.done)

	rc.mu.Lock()
	delete(rc.inflight, currency)
	rc.mu.Unlock()

	return series, err
}
