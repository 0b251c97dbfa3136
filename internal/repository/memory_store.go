package repository

import (
	"sync"
	"time"

	"FXPulse/internal/domain/models"
	domrepo "FXPulse/internal/domain/repository"
)

// MemoryQuoteStore is the process-wide quote store: one series per
// currency, guarded by a RWMutex. Put replaces the series atomically;
// Get hands out copies so callers cannot mutate stored data.
type MemoryQuoteStore struct {
	mu     sync.RWMutex
	series map[models.Currency]models.QuoteSeries
}

func NewMemoryQuoteStore() *MemoryQuoteStore {
	return &MemoryQuoteStore{series: make(map[models.Currency]models.QuoteSeries)}
}

// Put replaces the full series for a currency.
func (s *MemoryQuoteStore) Put(currency models.Currency, series models.QuoteSeries) {
	cp := series.Clone()
	s.mu.Lock()
	s.series[currency] = cp
	s.mu.Unlock()
}

// Get returns a snapshot of the series or ErrNotFound.
func (s *MemoryQuoteStore) Get(currency models.Currency) (models.QuoteSeries, error) {
	s.mu.RLock()
	series, ok := s.series[currency]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrNotFound
	}
	return series.Clone(), nil
}

// Latest returns the most recent quote or ErrNotFound. An empty series
// counts as not found: a failed fetch leaves nothing to quote from.
func (s *MemoryQuoteStore) Latest(currency models.Currency) (models.Quote, error) {
	s.mu.RLock()
	series, ok := s.series[currency]
	s.mu.RUnlock()
	if !ok {
		return models.Quote{}, models.ErrNotFound
	}
	q, ok := series.Latest()
	if !ok {
		return models.Quote{}, models.ErrNotFound
	}
	return q, nil
}

var _ domrepo.QuoteStore = (*MemoryQuoteStore)(nil)

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

var _ domrepo.Clock = SystemClock{}
