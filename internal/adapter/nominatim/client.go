// Package nominatim adapts the OSM Nominatim reverse geocoding API,
// used to turn bare coordinates into a displayable place.
package nominatim

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/domain"
)

// Client implements reverse geocoding against a Nominatim endpoint.
type Client struct {
	client   *httpx.Client
	baseURL  string
	language string
	logger   *slog.Logger
}

// NewClient creates a reverse geocoding client. Nominatim's usage
// policy requires the identifying User-Agent, which the shared HTTP
// client sets.
func NewClient(client *httpx.Client, baseURL, language string, logger *slog.Logger) *Client {
	return &Client{
		client:   client,
		baseURL:  baseURL,
		language: language,
		logger:   logger,
	}
}

// ReversePlace resolves coordinates to a named place at city zoom.
// A response with no usable settlement name yields domain.ErrNoResult.
func (c *Client) ReversePlace(ctx context.Context, lat, lon float64) (domain.Location, error) {
	params := url.Values{
		"lat":             {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":             {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":          {"jsonv2"},
		"zoom":            {"10"},
		"addressdetails":  {"1"},
		"accept-language": {c.language},
	}

	var resp reverseResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return domain.Location{}, fmt.Errorf("reverse geocoding: %w", err)
	}

	name := firstNonEmpty(
		resp.Address.City,
		resp.Address.Town,
		resp.Address.Village,
		resp.Address.Hamlet,
		resp.Address.Municipality,
	)
	if name == "" {
		return domain.Location{}, fmt.Errorf("%w: no settlement at %.4f,%.4f", domain.ErrNoResult, lat, lon)
	}

	admin1 := firstNonEmpty(
		resp.Address.State,
		resp.Address.Region,
		resp.Address.StateDistrict,
		resp.Address.County,
	)

	return domain.Location{
		Name:      name,
		Admin1:    admin1,
		Country:   resp.Address.Country,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type reverseResponse struct {
	Address struct {
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		Hamlet        string `json:"hamlet"`
		Municipality  string `json:"municipality"`
		State         string `json:"state"`
		Region        string `json:"region"`
		StateDistrict string `json:"state_district"`
		County        string `json:"county"`
		Country       string `json:"country"`
	} `json:"address"`
}
