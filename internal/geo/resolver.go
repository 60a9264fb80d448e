package geo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketwx/pocketwx/internal/domain"
	"github.com/pocketwx/pocketwx/internal/observability"
)

// ReversePlacer refines bare coordinates into a named place.
type ReversePlacer interface {
	ReversePlace(ctx context.Context, lat, lon float64) (domain.Location, error)
}

// Resolver runs the provider chain in order until one yields
// coordinates, then refines them into a named location. Reverse lookup
// is best-effort: when it fails the location keeps a placeholder name.
type Resolver struct {
	providers      []Provider
	reverse        ReversePlacer
	reverseTimeout time.Duration
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// NewResolver creates a resolver over providers, tried in order.
// reverse may be nil, in which case every resolution keeps its
// placeholder name.
func NewResolver(providers []Provider, reverse ReversePlacer, reverseTimeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		providers:      providers,
		reverse:        reverse,
		reverseTimeout: reverseTimeout,
		metrics:        metrics,
		logger:         logger,
	}
}

// Resolve walks the chain. Each provider gets exactly one attempt; its
// failure is recorded and the next provider runs. A cancelled context
// aborts immediately. When every provider fails the returned error is a
// *domain.GeoFailure carrying the ordered attempts and diagnostics.
func (r *Resolver) Resolve(ctx context.Context) (domain.Location, error) {
	attempts := make([]domain.GeoAttempt, 0, len(r.providers))

	for _, p := range r.providers {
		coords, err := p.Locate(ctx)
		if err == nil {
			r.metrics.GeoAttempts.WithLabelValues(p.Name(), "success").Inc()
			r.logger.Debug("location provider succeeded", "provider", p.Name())
			return r.refine(ctx, p.Name(), coords), nil
		}
		if domain.IsCancelled(err) {
			return domain.Location{}, err
		}

		r.metrics.GeoAttempts.WithLabelValues(p.Name(), "error").Inc()
		r.logger.Info("location provider failed", "provider", p.Name(), "error", err)
		attempts = append(attempts, domain.GeoAttempt{Provider: p.Name(), Err: err})
	}

	r.metrics.GeoFailures.Inc()
	return domain.Location{}, &domain.GeoFailure{
		Attempts:    attempts,
		Diagnostics: r.diagnostics(),
	}
}

// refine reverse-geocodes coords under its own timeout. Failures keep
// the provider's placeholder name; the coordinates are already usable.
func (r *Resolver) refine(ctx context.Context, provider string, coords domain.Coordinates) domain.Location {
	loc := domain.Location{
		Name:      placeholderName(provider),
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}
	if r.reverse == nil {
		return loc
	}

	revCtx, cancel := context.WithTimeout(ctx, r.reverseTimeout)
	defer cancel()
	named, err := r.reverse.ReversePlace(revCtx, coords.Latitude, coords.Longitude)
	if err != nil {
		r.logger.Debug("reverse lookup failed, keeping placeholder", "provider", provider, "error", err)
		return loc
	}
	return named
}

func (r *Resolver) diagnostics() string {
	parts := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		if d, ok := p.(Diagnoser); ok {
			parts = append(parts, d.Diagnostics())
		}
	}
	return strings.Join(parts, " | ")
}

func placeholderName(provider string) string {
	if provider == "ip" {
		return "Approximate location (IP)"
	}
	return "Current location"
}
