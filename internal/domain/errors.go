package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy shared by every provider and session. Callers classify
// with errors.Is; adapters wrap these with %w and context.
var (
	// ErrProviderUnavailable marks a capability that is missing or gated
	// (no host API, insecure context, circuit open).
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrPermissionDenied marks a user or platform permission refusal.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTimeout marks an operation that exceeded its bound. Timeouts
	// behave exactly like the operation failing.
	ErrTimeout = errors.New("timed out")

	// ErrNetworkFailure marks a transport error or non-2xx response.
	ErrNetworkFailure = errors.New("network failure")

	// ErrCancelled marks work superseded by a newer request. It is
	// swallowed silently at every layer and never shown to the user.
	ErrCancelled = errors.New("cancelled")

	// ErrNoResult marks an empty but successful response.
	ErrNoResult = errors.New("no result")
)

// IsCancelled reports whether err means the work was superseded, either
// via the taxonomy sentinel or a cancelled context.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// GeoAttempt records one provider's outcome within a resolution. It is
// transient: surfaced as diagnostic text, never persisted.
type GeoAttempt struct {
	Provider string
	Err      error
}

// GeoFailure is returned when every location provider has been
// exhausted. Attempts preserve provider order; Diagnostics carries
// platform/capability flags for support display.
type GeoFailure struct {
	Attempts    []GeoAttempt
	Diagnostics string
}

func (f *GeoFailure) Error() string {
	var b strings.Builder
	b.WriteString("location resolution failed")
	for _, a := range f.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Provider, a.Err)
	}
	return b.String()
}

// Unwrap exposes the per-provider errors so errors.Is can classify an
// exhausted resolution (e.g. as permission-denied).
func (f *GeoFailure) Unwrap() []error {
	errs := make([]error, 0, len(f.Attempts))
	for _, a := range f.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}
