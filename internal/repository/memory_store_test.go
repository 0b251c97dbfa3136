package repository

import (
	"errors"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func TestPutReplacesSeries(t *testing.T) {
	store := NewMemoryQuoteStore()

	store.Put(models.USD, models.QuoteSeries{
		{Date: day(t, "2025-08-20"), Rate: 1380.5},
		{Date: day(t, "2025-08-21"), Rate: 1385.0},
	})
	store.Put(models.USD, models.QuoteSeries{
		{Date: day(t, "2025-08-22"), Rate: 1390.0},
	})

	series, err := store.Get(models.USD)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected replacement series of length 1, got %d", len(series))
	}
	if series[0].Rate != 1390.0 {
		t.Fatalf("expected rate 1390.0, got %v", series[0].Rate)
	}
}

func TestGetNotFound(t *testing.T) {
	store := NewMemoryQuoteStore()

	if _, err := store.Get(models.EUR); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatest(t *testing.T) {
	store := NewMemoryQuoteStore()
	store.Put(models.USD, models.QuoteSeries{
		{Date: day(t, "2025-08-20"), Rate: 1380.5},
		{Date: day(t, "2025-08-21"), Rate: 1385.0},
	})

	q, err := store.Latest(models.USD)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if q.Rate != 1385.0 {
		t.Fatalf("expected latest rate 1385.0, got %v", q.Rate)
	}
}

func TestLatestEmptySeriesIsNotFound(t *testing.T) {
	store := NewMemoryQuoteStore()
	store.Put(models.USD, models.QuoteSeries{})

	if _, err := store.Latest(models.USD); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty series, got %v", err)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := NewMemoryQuoteStore()
	store.Put(models.USD, models.QuoteSeries{
		{Date: day(t, "2025-08-21"), Rate: 1385.0},
	})

	first, err := store.Get(models.USD)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first[0].Rate = 9999

	second, err := store.Get(models.USD)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second[0].Rate != 1385.0 {
		t.Fatalf("stored series mutated through snapshot: got %v", second[0].Rate)
	}
}
