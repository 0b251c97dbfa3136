package di

import (
	"fmt"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/internal/handler/api"
	internalrepo "FXPulse/internal/repository"
	"FXPulse/internal/service/marketindex"
	"FXPulse/internal/services/analytics"
	"FXPulse/internal/usecase"
	pkgcache "FXPulse/pkg/cache"
	"FXPulse/pkg/config"
	xhttp "FXPulse/pkg/http"
	applogger "FXPulse/pkg/logger"
	"FXPulse/pkg/metrics"
	"FXPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideClock supplies the wall clock.
func ProvideClock() drepo.Clock {
	return internalrepo.SystemClock{}
}

// ProvideQuoteStore creates the in-memory quote store.
func ProvideQuoteStore() drepo.QuoteStore {
	return internalrepo.NewMemoryQuoteStore()
}

// ProvideCurrencies parses and validates the configured currency codes.
func ProvideCurrencies(cfg *config.Config) ([]models.Currency, error) {
	currencies := make([]models.Currency, 0, len(cfg.Market.Currencies))
	for _, code := range cfg.Market.Currencies {
		currency, err := models.ParseCurrency(code)
		if err != nil {
			return nil, fmt.Errorf("market.currencies: %w", err)
		}
		if currency.IsBase() {
			return nil, fmt.Errorf("market.currencies must not include the base currency %s", currency)
		}
		currencies = append(currencies, currency)
	}
	return currencies, nil
}

// ProvideCacheStore creates the configured cache backend.
func ProvideCacheStore(cfg *config.Config) (pkgcache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		prefix := cfg.Cache.Redis.Prefix
		if prefix == "" {
			prefix = "fxpulse"
		}
		store, err := pkgcache.NewRedisStore(
			pkgcache.WithAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			pkgcache.WithCredentials(cfg.Cache.Redis.Password),
			pkgcache.WithDB(cfg.Cache.Redis.DB),
			pkgcache.WithPrefix(prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return store, nil
	default:
		return pkgcache.NewMemoryStore(), nil
	}
}

// ProvideRateSource creates the marketindex history fetcher.
func ProvideRateSource(cfg *config.Config, currencies []models.Currency, l *applogger.Logger, m drepo.Metrics) (drepo.RateSource, error) {
	codes := make(map[models.Currency]string, len(currencies))
	for _, currency := range currencies {
		codes[currency] = cfg.Market.IndexCodes[currency.String()]
	}

	client := marketindex.New(cfg.Market.BaseURL, codes,
		marketindex.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Market.PageTimeout.Std()))),
		marketindex.WithPageDelay(cfg.Market.PageDelay.Std()),
		marketindex.WithPageTimeout(cfg.Market.PageTimeout.Std()),
		marketindex.WithDeadline(cfg.Market.FetchDeadline.Std()),
		marketindex.WithMaxPages(cfg.Market.MaxPages),
		marketindex.WithLogger(l),
		marketindex.WithMetrics(m),
	)
	return client, nil
}

// ProvideRateCache creates the TTL cache over the fetcher.
func ProvideRateCache(
	source drepo.RateSource,
	backend pkgcache.Store,
	clock drepo.Clock,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.RateCache {
	return usecase.NewRateCache(source, backend, clock, m, l, cfg.Cache.TTL.Std(), cfg.Market.LookbackDays)
}

// ProvideConverter creates the conversion engine.
func ProvideConverter(store drepo.QuoteStore) *usecase.Converter {
	return usecase.NewConverter(store)
}

// ProvideForecaster creates the trend forecaster.
func ProvideForecaster() *analytics.TrendForecaster {
	return analytics.NewTrendForecaster()
}

// ProvideRateService creates the orchestrating rate service.
func ProvideRateService(
	cfg *config.Config,
	currencies []models.Currency,
	cache *usecase.RateCache,
	store drepo.QuoteStore,
	converter *usecase.Converter,
	forecaster *analytics.TrendForecaster,
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.RateService {
	return usecase.NewRateService(
		currencies,
		cfg.Market.LookbackDays,
		cfg.Margin.Markup,
		cache,
		store,
		converter,
		forecaster,
		m,
		l,
	)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(l *applogger.Logger, svc *usecase.RateService) xhttp.Handler {
	return api.NewRatesEchoHandler(l, svc)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	svc *usecase.RateService,
	handler xhttp.Handler,
	backend pkgcache.Store,
) *server.App {
	return server.New(cfg, l, svc, handler, backend)
}
