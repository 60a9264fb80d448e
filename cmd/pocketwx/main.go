package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/pocketwx/pocketwx/internal/adapter/http"
	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/adapter/ipgeo"
	"github.com/pocketwx/pocketwx/internal/adapter/nominatim"
	"github.com/pocketwx/pocketwx/internal/adapter/openmeteo"
	"github.com/pocketwx/pocketwx/internal/config"
	"github.com/pocketwx/pocketwx/internal/geo"
	"github.com/pocketwx/pocketwx/internal/observability"
	"github.com/pocketwx/pocketwx/internal/scheduler"
	"github.com/pocketwx/pocketwx/internal/session"
	"github.com/pocketwx/pocketwx/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	prefs := store.New(cfg.StatePath, logger,
		store.WithWriteErrorHook(metrics.StoreWriteErrors.Inc))

	forecast := openmeteo.NewForecastClient(
		httpx.New("forecast", cfg.HTTPTimeout), cfg.ForecastBaseURL, cfg.ForecastDays, clock, logger)
	search := openmeteo.NewSearchClient(
		httpx.New("search", cfg.HTTPTimeout), cfg.SearchBaseURL, cfg.SearchLimit, cfg.Language, logger)
	reverse := nominatim.NewCachedReverse(
		nominatim.NewClient(httpx.New("reverse", cfg.HTTPTimeout), cfg.ReverseBaseURL, cfg.Language, logger),
		cfg.ReverseCacheSize,
		func(result string) { metrics.ReverseCache.WithLabelValues(result).Inc() })
	ipLocator := ipgeo.NewClient(httpx.New("ipgeo", cfg.HTTPTimeout), cfg.IPGeoBaseURL, logger)

	// Host and system providers come from embedders; the standalone
	// agent resolves by IP only.
	providers := []geo.Provider{geo.NewIPProvider(ipLocator)}
	resolver := geo.NewResolver(providers, reverse, cfg.HTTPTimeout, metrics, logger)

	view := httpadapter.NewView()
	ctrl := session.NewController(forecast, resolver, prefs, view.Callbacks(), clock, metrics, logger)
	searchSession := session.NewSearchSession(search, view.Callbacks(), clock, cfg.SearchDebounce, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpadapter.NewServer(cfg.HTTPAddr, ctx, ctrl, searchSession, prefs, view, logger)

	refresh := scheduler.New(ctrl, cfg.RefreshInterval, logger)
	if err := refresh.Start(ctx); err != nil {
		logger.Error("failed to start refresh scheduler", "error", err)
		os.Exit(1)
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Resume the last session: saved location first, otherwise resolve.
	if saved := prefs.Load().Location; saved != nil {
		ctrl.Load(ctx, *saved, session.ReasonInitial)
	} else {
		ctrl.Locate(ctx, session.ReasonInitial)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	refresh.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
