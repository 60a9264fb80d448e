// Package geo resolves the user's position through an ordered chain of
// location providers: host platform first, then the system locator,
// then IP lookup as the coarse last resort.
package geo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pocketwx/pocketwx/internal/domain"
)

// Provider yields coordinates from one location source. Implementations
// classify their failures onto the domain error taxonomy.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (domain.Coordinates, error)
}

// Diagnoser is optionally implemented by providers that can report
// capability flags for support display.
type Diagnoser interface {
	Diagnostics() string
}

// HostLocationService is the host platform's location surface, supplied
// by the embedder. Implementations are expected to be cheap to query
// for the flag methods.
type HostLocationService interface {
	// Inited reports whether the service has completed initialization.
	Inited() bool
	// Init prepares the service; it may prompt the platform.
	Init(ctx context.Context) error
	// CurrentLocation requests a position fix.
	CurrentLocation(ctx context.Context) (domain.Coordinates, error)
	// LocationAvailable reports whether the platform offers location at all.
	LocationAvailable() bool
	// AccessGranted reports whether the user has allowed access.
	AccessGranted() bool
	// OpenSettings deep-links to the platform's location settings.
	OpenSettings() error
}

// HostProvider adapts a HostLocationService into the provider chain.
// When access is denied it deep-links to the platform settings, at most
// once per process, and fails over to the next provider.
type HostProvider struct {
	service     HostLocationService
	initTimeout time.Duration
	fixTimeout  time.Duration
	logger      *slog.Logger

	settingsOnce sync.Once
}

// NewHostProvider wraps service with initialization and fix timeouts.
func NewHostProvider(service HostLocationService, initTimeout, fixTimeout time.Duration, logger *slog.Logger) *HostProvider {
	return &HostProvider{
		service:     service,
		initTimeout: initTimeout,
		fixTimeout:  fixTimeout,
		logger:      logger,
	}
}

func (p *HostProvider) Name() string { return "host" }

func (p *HostProvider) Locate(ctx context.Context) (domain.Coordinates, error) {
	if !p.service.Inited() {
		initCtx, cancel := context.WithTimeout(ctx, p.initTimeout)
		err := p.service.Init(initCtx)
		cancel()
		if err != nil {
			// Init failure is not terminal; the fix attempt may still work.
			p.logger.Warn("host location init failed", "error", err)
		}
	}

	if !p.service.LocationAvailable() {
		return domain.Coordinates{}, fmt.Errorf("%w: host offers no location service", domain.ErrProviderUnavailable)
	}
	if !p.service.AccessGranted() {
		p.settingsOnce.Do(func() {
			if err := p.service.OpenSettings(); err != nil {
				p.logger.Debug("opening host location settings failed", "error", err)
			}
		})
		return domain.Coordinates{}, fmt.Errorf("%w: host location access not granted", domain.ErrPermissionDenied)
	}

	fixCtx, cancel := context.WithTimeout(ctx, p.fixTimeout)
	defer cancel()
	coords, err := p.service.CurrentLocation(fixCtx)
	if err != nil {
		if fixCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return domain.Coordinates{}, fmt.Errorf("%w: host location fix", domain.ErrTimeout)
		}
		return domain.Coordinates{}, fmt.Errorf("host location fix: %w", err)
	}
	return coords, nil
}

// Diagnostics reports the host capability flags.
func (p *HostProvider) Diagnostics() string {
	return fmt.Sprintf("host: inited=%t available=%t granted=%t",
		p.service.Inited(), p.service.LocationAvailable(), p.service.AccessGranted())
}

// PositionOptions bound a system locator position request.
type PositionOptions struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
}

// SystemLocator is the OS-level positioning surface, supplied by the
// embedder. Implementations map their native error codes onto the
// domain taxonomy.
type SystemLocator interface {
	// Supported reports whether positioning exists on this system.
	Supported() bool
	// SecureContext reports whether the environment permits its use.
	SecureContext() bool
	// CurrentPosition requests a single fix within opts.
	CurrentPosition(ctx context.Context, opts PositionOptions) (domain.Coordinates, error)
}

// SystemProvider adapts a SystemLocator into the provider chain. A
// cached fix no older than MaximumAge is acceptable.
type SystemProvider struct {
	locator SystemLocator
	opts    PositionOptions
	logger  *slog.Logger
}

// NewSystemProvider wraps locator with a fix timeout and maximum
// acceptable fix age.
func NewSystemProvider(locator SystemLocator, timeout, maxAge time.Duration, logger *slog.Logger) *SystemProvider {
	return &SystemProvider{
		locator: locator,
		opts:    PositionOptions{Timeout: timeout, MaximumAge: maxAge, HighAccuracy: true},
		logger:  logger,
	}
}

func (p *SystemProvider) Name() string { return "system" }

func (p *SystemProvider) Locate(ctx context.Context) (domain.Coordinates, error) {
	if !p.locator.Supported() {
		return domain.Coordinates{}, fmt.Errorf("%w: system locator not supported", domain.ErrProviderUnavailable)
	}
	if !p.locator.SecureContext() {
		return domain.Coordinates{}, fmt.Errorf("%w: system locator requires a secure context", domain.ErrProviderUnavailable)
	}

	fixCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	coords, err := p.locator.CurrentPosition(fixCtx, p.opts)
	if err != nil {
		if fixCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return domain.Coordinates{}, fmt.Errorf("%w: system position fix", domain.ErrTimeout)
		}
		return domain.Coordinates{}, fmt.Errorf("system position fix: %w", err)
	}
	return coords, nil
}

// Diagnostics reports the system locator capability flags.
func (p *SystemProvider) Diagnostics() string {
	return fmt.Sprintf("system: supported=%t secure=%t", p.locator.Supported(), p.locator.SecureContext())
}

// CoordsLocator is the surface the IP provider wraps.
type CoordsLocator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}

// IPProvider locates by public IP address. It is always last in the
// chain and carries no platform preconditions.
type IPProvider struct {
	client CoordsLocator
}

// NewIPProvider wraps an IP geolocation client.
func NewIPProvider(client CoordsLocator) *IPProvider {
	return &IPProvider{client: client}
}

func (p *IPProvider) Name() string { return "ip" }

func (p *IPProvider) Locate(ctx context.Context) (domain.Coordinates, error) {
	return p.client.Locate(ctx)
}
