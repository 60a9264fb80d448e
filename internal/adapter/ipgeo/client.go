// Package ipgeo adapts the geolocation-db.com IP lookup, the coarse
// last-resort location provider.
package ipgeo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/domain"
)

// Client locates the agent by its public IP address. Accuracy is
// city-level at best.
type Client struct {
	client  *httpx.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates an IP geolocation client against baseURL.
func NewClient(client *httpx.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{client: client, baseURL: baseURL, logger: logger}
}

// Locate returns the approximate coordinates for the caller's IP. A
// response without coordinates yields domain.ErrNoResult.
func (c *Client) Locate(ctx context.Context) (domain.Coordinates, error) {
	var resp struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.client.GetJSON(ctx, c.baseURL, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ip geolocation: %w", err)
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: ip lookup returned no coordinates", domain.ErrNoResult)
	}
	return domain.Coordinates{Latitude: *resp.Latitude, Longitude: *resp.Longitude}, nil
}
