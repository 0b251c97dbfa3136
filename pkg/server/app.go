package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FXPulse/internal/usecase"
	pkgcache "FXPulse/pkg/cache"
	"FXPulse/pkg/config"
	xhttp "FXPulse/pkg/http"
	applogger "FXPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	svc        *usecase.RateService
	handler    xhttp.Handler
	backend    pkgcache.Store
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	svc *usecase.RateService,
	handler xhttp.Handler,
	backend pkgcache.Store,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		svc:     svc,
		handler: handler,
		backend: backend,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}

	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout.Std(), a.cfg.Server.WriteTimeout.Std(), a.cfg.Server.ShutdownTimeout.Std()),
		xhttp.WithMetricsPath(metricsPath),
	)

	// Warm the cache before serving; failures are already isolated
	// per currency inside RefreshAll.
	go func() {
		result := a.svc.RefreshAll(ctx, false)
		a.logger.Info("initial refresh done",
			applogger.Int("refreshed", len(result.Refreshed)),
			applogger.Int("failed", len(result.Failed)),
		)
	}()

	if a.cfg.Refresh.Auto {
		go a.autoRefresh(ctx)
		a.logger.Info("auto refresh enabled",
			applogger.Duration("interval", a.cfg.Refresh.Interval.Std()),
		)
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// autoRefresh forces a refresh of every tracked currency on a fixed
// interval, the way the dashboard used to rerun itself.
func (a *App) autoRefresh(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Refresh.Interval.Std())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := a.svc.RefreshAll(ctx, true)
			a.logger.Info("auto refresh done",
				applogger.Int("refreshed", len(result.Refreshed)),
				applogger.Int("failed", len(result.Failed)),
			)
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
