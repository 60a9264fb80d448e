package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/domain"
)

// SearchClient resolves free-text place queries via the Open-Meteo
// geocoding API.
type SearchClient struct {
	client   *httpx.Client
	baseURL  string
	limit    int
	language string
	logger   *slog.Logger
}

// NewSearchClient creates a search client returning at most limit
// results localized to language.
func NewSearchClient(client *httpx.Client, baseURL string, limit int, language string, logger *slog.Logger) *SearchClient {
	return &SearchClient{
		client:   client,
		baseURL:  baseURL,
		limit:    limit,
		language: language,
		logger:   logger,
	}
}

// Search returns candidate places for query. An empty result set is not
// an error: the caller renders "nothing found".
func (c *SearchClient) Search(ctx context.Context, query string) ([]domain.Location, error) {
	params := url.Values{
		"name":     {query},
		"count":    {strconv.Itoa(c.limit)},
		"language": {c.language},
		"format":   {"json"},
	}

	var resp searchResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("searching places: %w", err)
	}

	locs := make([]domain.Location, 0, len(resp.Results))
	for _, r := range resp.Results {
		locs = append(locs, domain.Location{
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Timezone:  r.Timezone,
		})
	}
	return locs, nil
}

type searchResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}
