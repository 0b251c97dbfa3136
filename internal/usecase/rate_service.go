package usecase

import (
	"context"
	"fmt"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/internal/services/analytics"
	applogger "FXPulse/pkg/logger"
)

// RateService orchestrates the cache, the store and the calculation
// engines behind the HTTP entry points. Fetch failures are downgraded
// at the per-currency boundary so a multi-currency refresh always
// completes; conversion and margin errors propagate to the caller
// because they indicate a contract violation, not an external fault.
type RateService struct {
	currencies []models.Currency
	lookback   int
	markup     float64

	cache      *RateCache
	store      drepo.QuoteStore
	converter  *Converter
	forecaster *analytics.TrendForecaster
	metrics    drepo.Metrics
	logger     *applogger.Logger
}

func NewRateService(
	currencies []models.Currency,
	lookback int,
	markup float64,
	cache *RateCache,
	store drepo.QuoteStore,
	converter *Converter,
	forecaster *analytics.TrendForecaster,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *RateService {
	return &RateService{
		currencies: currencies,
		lookback:   lookback,
		markup:     markup,
		cache:      cache,
		store:      store,
		converter:  converter,
		forecaster: forecaster,
		metrics:    metrics,
		logger:     logger,
	}
}

// Currencies returns the tracked non-base currencies.
func (s *RateService) Currencies() []models.Currency {
	out := make([]models.Currency, len(s.currencies))
	copy(out, s.currencies)
	return out
}

func (s *RateService) tracked(currency models.Currency) bool {
	for _, c := range s.currencies {
		if c == currency {
			return true
		}
	}
	return false
}

// History returns the quote series for one tracked currency, reading
// through the cache and mirroring the result into the store.
func (s *RateService) History(ctx context.Context, currency models.Currency, force bool) (models.QuoteSeries, error) {
	if !s.tracked(currency) {
		return nil, fmt.Errorf("%w: %s is not a tracked currency", models.ErrInvalidInput, currency)
	}

	series, err := s.cache.GetOrFetch(ctx, currency, force)
	if err != nil {
		return nil, err
	}

	s.store.Put(currency, series)
	if latest, ok := series.Latest(); ok {
		s.metrics.RecordLastRate(currency.String(), latest.Rate)
	}
	return series, nil
}

// RefreshAll refreshes every tracked currency. A failing currency is
// isolated: it contributes an empty series and the refresh goes on.
func (s *RateService) RefreshAll(ctx context.Context, force bool) models.RefreshResult {
	start := time.Now()
	if force {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("cache flush failed", applogger.Error(err))
		}
	}

	var result models.RefreshResult
	for _, currency := range s.currencies {
		series, err := s.cache.GetOrFetch(ctx, currency, false)
		if err != nil {
			s.logger.Error("refresh failed",
				applogger.String("currency", currency.String()),
				applogger.Error(err),
			)
			result.Failed = append(result.Failed, currency)
			continue
		}

		s.store.Put(currency, series)
		if latest, ok := series.Latest(); ok {
			s.metrics.RecordLastRate(currency.String(), latest.Rate)
		}
		result.Refreshed = append(result.Refreshed, currency)
	}

	s.metrics.RecordLatency("refresh_all", time.Since(start).Seconds())
	return result
}

// Snapshot returns the latest rate and day-over-day change for every
// tracked currency with data.
func (s *RateService) Snapshot(ctx context.Context) ([]models.RateSnapshot, error) {
	snapshots := make([]models.RateSnapshot, 0, len(s.currencies))
	for _, currency := range s.currencies {
		series, err := s.History(ctx, currency, false)
		if err != nil || len(series) == 0 {
			continue
		}

		latest := series[len(series)-1]
		snap := models.RateSnapshot{
			Currency: currency,
			Name:     currency.Name(),
			Rate:     latest.Rate,
			Date:     latest.Date,
		}
		if len(series) > 1 {
			prev := series[len(series)-2]
			snap.ChangePct = (latest.Rate - prev.Rate) / prev.Rate * 100
		}
		snapshots = append(snapshots, snap)
	}

	if len(snapshots) == 0 {
		return nil, models.ErrNotFound
	}
	return snapshots, nil
}

// ForecastSeries returns the observed history of a currency followed by
// horizon forecast points. days limits the window the line is fitted
// over; zero or negative means the full fetched series.
func (s *RateService) ForecastSeries(ctx context.Context, currency models.Currency, days, horizon int, force bool) ([]models.ForecastPoint, error) {
	series, err := s.History(ctx, currency, force)
	if err != nil {
		return nil, err
	}
	if days > 0 && len(series) > days {
		series = series[len(series)-days:]
	}
	return s.forecaster.Forecast(series, horizon)
}

// Convert converts an amount between two supported currencies via the
// most recent stored rates.
func (s *RateService) Convert(amount float64, from, to models.Currency) (models.ConvertResult, error) {
	return s.converter.Convert(amount, from, to)
}

// Margin computes landed cost and margin. An explicit positive rate in
// the request wins; otherwise the latest stored rate for the request's
// currency is applied.
func (s *RateService) Margin(req models.MarginRequest) (models.MarginResult, error) {
	currency, err := models.ParseCurrency(req.Code)
	if err != nil {
		return models.MarginResult{}, err
	}
	if currency.IsBase() {
		return models.MarginResult{}, fmt.Errorf("%w: margin rate currency cannot be the base", models.ErrInvalidInput)
	}

	rate := req.Rate
	if rate <= 0 {
		q, err := s.store.Latest(currency)
		if err != nil {
			return models.MarginResult{}, fmt.Errorf("%w: %s", models.ErrMissingRate, currency)
		}
		rate = q.Rate
	}

	markup := req.Markup
	if markup <= 0 {
		markup = s.markup
	}

	landed, marginPct, err := SimulateMargin(req.UnitCost, rate, req.SellPrice, markup)
	if err != nil {
		return models.MarginResult{}, err
	}

	return models.MarginResult{
		Currency:   currency,
		Rate:       rate,
		LandedCost: landed,
		MarginPct:  marginPct,
	}, nil
}
