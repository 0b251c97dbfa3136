//go:build wireinject
// +build wireinject

package di

import (
	"FXPulse/pkg/config"
	"FXPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideClock,

		// Infrastructure
		ProvideQuoteStore,
		ProvideCacheStore,
		ProvideCurrencies,
		ProvideRateSource,

		// Use cases
		ProvideRateCache,
		ProvideConverter,
		ProvideForecaster,
		ProvideRateService,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
