package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/repository"
	"FXPulse/internal/services/analytics"
)

func newTestService(t *testing.T, source *countingSource) (*RateService, *repository.MemoryQuoteStore) {
	t.Helper()
	clock := &fakeClock{now: time.Now()}
	cache := newTestCache(t, source, clock, 10*time.Minute)
	store := repository.NewMemoryQuoteStore()
	svc := NewRateService(
		[]models.Currency{models.USD, models.EUR},
		30,
		1.3,
		cache,
		store,
		NewConverter(store),
		analytics.NewTrendForecaster(),
		noopMetrics{},
		testLogger(t),
	)
	return svc, store
}

func TestHistoryRejectsUntrackedCurrency(t *testing.T) {
	svc, _ := newTestService(t, newCountingSource())

	if _, err := svc.History(context.Background(), models.CAD, false); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for untracked currency, got %v", err)
	}
}

func TestHistoryMirrorsIntoStore(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2)
	svc, store := newTestService(t, source)

	series, err := svc.History(context.Background(), models.USD, false)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(series))
	}

	q, err := store.Latest(models.USD)
	if err != nil {
		t.Fatalf("store latest: %v", err)
	}
	if q.Rate != 1388.2 {
		t.Fatalf("expected mirrored latest rate 1388.2, got %v", q.Rate)
	}
}

func TestRefreshAllIsolatesFailures(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2)
	source.errs[models.EUR] = models.NewFetchError(models.EUR, errors.New("source down"))
	svc, store := newTestService(t, source)

	result := svc.RefreshAll(context.Background(), true)

	if len(result.Refreshed) != 1 || result.Refreshed[0] != models.USD {
		t.Fatalf("expected USD refreshed, got %v", result.Refreshed)
	}
	if len(result.Failed) != 1 || result.Failed[0] != models.EUR {
		t.Fatalf("expected EUR failed, got %v", result.Failed)
	}

	// The failing currency must not clobber data that is already there.
	if _, err := store.Latest(models.USD); err != nil {
		t.Fatalf("USD data missing after partial refresh: %v", err)
	}
}

func TestRefreshAllPreservesPreviousData(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2)
	source.series[models.EUR] = sampleSeries(t, 1512.4)
	svc, store := newTestService(t, source)

	if r := svc.RefreshAll(context.Background(), false); len(r.Failed) != 0 {
		t.Fatalf("initial refresh failed: %v", r.Failed)
	}

	// EUR starts failing; a forced refresh keeps the old EUR series.
	source.errs[models.EUR] = models.NewFetchError(models.EUR, errors.New("source down"))
	result := svc.RefreshAll(context.Background(), true)
	if len(result.Failed) != 1 || result.Failed[0] != models.EUR {
		t.Fatalf("expected EUR failed, got %v", result.Failed)
	}

	q, err := store.Latest(models.EUR)
	if err != nil {
		t.Fatalf("previous EUR data lost: %v", err)
	}
	if q.Rate != 1512.4 {
		t.Fatalf("expected previous EUR rate 1512.4, got %v", q.Rate)
	}
}

func TestSnapshotComputesDayOverDayChange(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2) // 1387.2 then 1388.2
	source.series[models.EUR] = sampleSeries(t, 1512.4)
	svc, _ := newTestService(t, source)

	snapshots, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	usd := snapshots[0]
	if usd.Currency != models.USD {
		t.Fatalf("expected USD first, got %s", usd.Currency)
	}
	want := (1388.2 - 1387.2) / 1387.2 * 100
	if diff := usd.ChangePct - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected change %v, got %v", want, usd.ChangePct)
	}
}

func TestSnapshotEmptyIsNotFound(t *testing.T) {
	source := newCountingSource()
	source.errs[models.USD] = models.NewFetchError(models.USD, errors.New("down"))
	source.errs[models.EUR] = models.NewFetchError(models.EUR, errors.New("down"))
	svc, _ := newTestService(t, source)

	if _, err := svc.Snapshot(context.Background()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForecastSeriesShape(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2)
	svc, _ := newTestService(t, source)

	points, err := svc.ForecastSeries(context.Background(), models.USD, 30, 7, false)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(points) != 9 {
		t.Fatalf("expected 2 observed + 7 forecast points, got %d", len(points))
	}
}

func TestForecastSeriesWindowed(t *testing.T) {
	source := newCountingSource()
	source.series[models.USD] = sampleSeries(t, 1388.2)
	svc, _ := newTestService(t, source)

	points, err := svc.ForecastSeries(context.Background(), models.USD, 1, 2, false)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 1 windowed observation + 2 forecast points, got %d", len(points))
	}
}

func TestMarginUsesStoredRate(t *testing.T) {
	source := newCountingSource()
	svc, store := newTestService(t, source)
	store.Put(models.USD, sampleSeries(t, 1300))

	res, err := svc.Margin(models.MarginRequest{
		UnitCost:  25,
		SellPrice: 42000,
		Markup:    1.3,
		Code:      "USD",
	})
	if err != nil {
		t.Fatalf("margin: %v", err)
	}
	if res.Rate != 1300 {
		t.Fatalf("expected stored rate 1300, got %v", res.Rate)
	}
	if res.LandedCost != 42250.0 {
		t.Fatalf("expected landed cost 42250.0, got %v", res.LandedCost)
	}
	if res.MarginPct != -0.6 {
		t.Fatalf("expected margin -0.6, got %v", res.MarginPct)
	}
}

func TestMarginExplicitRateWins(t *testing.T) {
	source := newCountingSource()
	svc, store := newTestService(t, source)
	store.Put(models.USD, sampleSeries(t, 1300))

	res, err := svc.Margin(models.MarginRequest{
		UnitCost:  10,
		SellPrice: 26000,
		Markup:    1.3,
		Code:      "USD",
		Rate:      1400,
	})
	if err != nil {
		t.Fatalf("margin: %v", err)
	}
	if res.Rate != 1400 {
		t.Fatalf("expected explicit rate 1400, got %v", res.Rate)
	}
}

func TestMarginMissingRate(t *testing.T) {
	svc, _ := newTestService(t, newCountingSource())

	_, err := svc.Margin(models.MarginRequest{
		UnitCost:  25,
		SellPrice: 42000,
		Markup:    1.3,
		Code:      "USD",
	})
	if !errors.Is(err, models.ErrMissingRate) {
		t.Fatalf("expected ErrMissingRate, got %v", err)
	}
}

func TestMarginRejectsBaseAndUnknownCurrency(t *testing.T) {
	svc, _ := newTestService(t, newCountingSource())

	req := models.MarginRequest{UnitCost: 25, SellPrice: 42000, Markup: 1.3, Code: "KRW"}
	if _, err := svc.Margin(req); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("base currency: expected ErrInvalidInput, got %v", err)
	}

	req.Code = "XYZ"
	if _, err := svc.Margin(req); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("unknown currency: expected ErrInvalidInput, got %v", err)
	}
}

func TestMarginDefaultsMarkup(t *testing.T) {
	source := newCountingSource()
	svc, store := newTestService(t, source)
	store.Put(models.USD, sampleSeries(t, 1300))

	res, err := svc.Margin(models.MarginRequest{
		UnitCost:  25,
		SellPrice: 42000,
		Code:      "USD",
	})
	if err != nil {
		t.Fatalf("margin: %v", err)
	}
	// Zero markup falls back to the configured 1.3.
	if res.LandedCost != 42250.0 {
		t.Fatalf("expected default markup landed cost 42250.0, got %v", res.LandedCost)
	}
}
