package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/pocketwx/pocketwx/internal/domain"
	"github.com/pocketwx/pocketwx/internal/observability"
	"github.com/pocketwx/pocketwx/internal/store"
)

// LoadReason labels what triggered a forecast fetch.
type LoadReason string

const (
	ReasonInitial    LoadReason = "initial"
	ReasonManual     LoadReason = "manual"
	ReasonRefresh    LoadReason = "refresh"
	ReasonUnitChange LoadReason = "unit-change"
)

// ForecastProvider fetches a snapshot for a location and unit system.
type ForecastProvider interface {
	Forecast(ctx context.Context, loc domain.Location, units domain.Units) (*domain.ForecastSnapshot, error)
}

// Locator resolves the user's current position to a location.
type Locator interface {
	Resolve(ctx context.Context) (domain.Location, error)
}

// Controller owns the forecast state: the active location, unit system,
// and latest snapshot. Every load carries a generation token; starting
// a new load cancels the previous one, and a completed load whose token
// is no longer current is discarded without touching state. The stale
// snapshot stays visible until a newer one lands.
type Controller struct {
	provider ForecastProvider
	locator  Locator
	prefs    *store.Store
	cb       Callbacks
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snapshot   *domain.ForecastSnapshot
	location   *domain.Location
	units      domain.Units
	loading    bool
}

// NewController creates a controller seeded with the persisted unit
// preference. locator may be nil when no location providers are wired.
func NewController(provider ForecastProvider, locator Locator, prefs *store.Store, cb Callbacks, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Controller {
	return &Controller{
		provider: provider,
		locator:  locator,
		prefs:    prefs,
		cb:       cb,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
		units:    prefs.Load().Units,
	}
}

// Load starts fetching the forecast for loc. It returns immediately;
// the result arrives through the callbacks. Any in-flight load or
// locate is superseded.
func (c *Controller) Load(ctx context.Context, loc domain.Location, reason LoadReason) {
	gen, runCtx := c.begin(ctx)
	c.cb.status("Loading forecast…", false)
	go c.fetch(runCtx, gen, loc, reason)
}

// Locate resolves the current position through the provider chain and
// then loads its forecast, all under one generation token so a manual
// city choice cancels the whole sequence.
func (c *Controller) Locate(ctx context.Context, reason LoadReason) {
	if c.locator == nil {
		c.cb.status("Location detection is not available.", true)
		return
	}

	gen, runCtx := c.begin(ctx)
	c.cb.status("Determining location…", false)
	go func() {
		loc, err := c.locator.Resolve(runCtx)
		if err != nil {
			if domain.IsCancelled(err) {
				return
			}
			c.logger.Warn("location resolution failed", "error", err)
			c.finishError(gen, locateFailureText(err))
			return
		}
		c.statusIfCurrent(gen, "Loading forecast…", false)
		c.fetch(runCtx, gen, loc, reason)
	}()
}

// Refresh re-fetches the forecast for the active location. Without a
// location it is a no-op.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	loc := c.location
	c.mu.Unlock()
	if loc == nil {
		return
	}
	c.Load(ctx, *loc, ReasonRefresh)
}

// SetUnits persists the unit preference and, when it changed and a
// location is active, re-fetches so all values arrive in the new
// system. Derived displays are not converted locally.
func (c *Controller) SetUnits(ctx context.Context, units domain.Units) {
	if !units.Valid() {
		return
	}

	c.mu.Lock()
	changed := c.units != units
	c.units = units
	loc := c.location
	c.mu.Unlock()

	if !changed {
		return
	}
	c.prefs.Update(func(r *domain.PreferenceRecord) {
		r.Units = units
	})
	if loc != nil {
		c.Load(ctx, *loc, ReasonUnitChange)
	}
}

// RemoveRecent drops the recents entry matching the coordinates and
// persists the shortened list.
func (c *Controller) RemoveRecent(lat, lon float64) {
	var recents []domain.Location
	c.prefs.Update(func(r *domain.PreferenceRecord) {
		r.Recents = domain.RemoveRecent(r.Recents, lat, lon)
		recents = r.Recents
	})
	c.cb.recentsUpdated(recents)
}

// Units returns the active unit system.
func (c *Controller) Units() domain.Units {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.units
}

// Location returns the active location, or nil before the first load.
func (c *Controller) Location() *domain.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// Snapshot returns the latest forecast, or nil before the first load.
func (c *Controller) Snapshot() *domain.ForecastSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Ready reports whether a snapshot has been loaded.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil
}

// Loading reports whether a load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// begin supersedes any in-flight work: cancels it, bumps the
// generation, and derives the new load's context.
func (c *Controller) begin(ctx context.Context) (uint64, context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	return c.generation, runCtx
}

func (c *Controller) fetch(ctx context.Context, gen uint64, loc domain.Location, reason LoadReason) {
	start := c.clock.Now()
	snap, err := c.provider.Forecast(ctx, loc, c.Units())
	elapsed := c.clock.Since(start)

	// The generation check and every side effect of this result, the
	// controller state, the preference record and the callbacks, stay
	// under mu so a load beginning after the check cannot interleave.
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.metrics.SupersededResults.WithLabelValues("forecast").Inc()
		c.logger.Debug("discarding superseded forecast", "location", loc.DisplayName())
		return
	}
	c.loading = false

	if err != nil {
		if domain.IsCancelled(err) {
			return
		}
		c.metrics.ForecastLoads.WithLabelValues(string(reason), "error").Inc()
		c.logger.Warn("forecast load failed", "location", loc.DisplayName(), "reason", reason, "error", err)
		c.cb.status("Couldn't load the forecast. Check your connection and try again.", true)
		return
	}

	c.snapshot = snap
	c.location = &snap.Location

	c.metrics.ForecastLoads.WithLabelValues(string(reason), "success").Inc()
	c.metrics.ForecastLoadDuration.Observe(elapsed.Seconds())
	c.metrics.ForecastReady.Set(1)

	var recents []domain.Location
	c.prefs.Update(func(r *domain.PreferenceRecord) {
		saved := snap.Location
		r.Location = &saved
		r.Recents = domain.PushRecent(r.Recents, saved)
		recents = r.Recents
	})

	c.cb.status("", false)
	c.cb.forecastUpdated(snap)
	c.cb.recentsUpdated(recents)
}

// statusIfCurrent emits a status line unless gen has been superseded.
func (c *Controller) statusIfCurrent(gen uint64, text string, isError bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		c.cb.status(text, isError)
	}
}

// finishError clears the loading flag and surfaces msg, unless a newer
// load has already superseded gen.
func (c *Controller) finishError(gen uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.loading = false
	c.cb.status(msg, true)
}

func locateFailureText(err error) string {
	var failure *domain.GeoFailure
	msg := "Couldn't determine your location."
	if errors.Is(err, domain.ErrPermissionDenied) {
		msg = "Location access is denied. Allow it in settings or pick a city manually."
	}
	if errors.As(err, &failure) && failure.Diagnostics != "" {
		msg += " (" + failure.Diagnostics + ")"
	}
	return msg
}
