// Package httpx is the shared HTTP client for the provider adapters:
// one GET-JSON helper with a per-provider circuit breaker and a mapping
// from transport failures onto the domain error taxonomy.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pocketwx/pocketwx/internal/domain"
)

// UserAgent identifies the agent to upstream services that require it.
const UserAgent = "pocketwx/1.0 (+https://github.com/pocketwx/pocketwx)"

// Client wraps http.Client with a named circuit breaker. One Client per
// upstream service, so an outage of one provider never trips the others.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// New creates a client for the named upstream with a per-request timeout.
func New(name string, timeout time.Duration) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    cb,
	}
}

// GetJSON fetches fullURL and decodes the JSON body into out. Errors
// are classified onto the domain taxonomy: cancelled contexts map to
// domain.ErrCancelled, deadlines to domain.ErrTimeout, an open breaker
// to domain.ErrProviderUnavailable, and everything else (transport
// failures, non-2xx statuses, malformed bodies) to
// domain.ErrNetworkFailure.
func (c *Client) GetJSON(ctx context.Context, fullURL string, out any) error {
	body, err := c.breaker.Execute(func() (any, error) {
		return c.get(ctx, fullURL)
	})
	if err != nil {
		return c.classify(err)
	}

	data := body.([]byte)
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrNetworkFailure, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%s: status %d: %s", c.breaker.Name(), resp.StatusCode, snippet)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s request", domain.ErrCancelled, c.breaker.Name())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s request", domain.ErrTimeout, c.breaker.Name())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %s circuit open", domain.ErrProviderUnavailable, c.breaker.Name())
	default:
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
}
