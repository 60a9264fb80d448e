package domain

import (
	"fmt"
	"strings"
)

// Coordinates is a bare WGS-84 latitude/longitude pair as produced by a
// location provider, before any reverse place lookup.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Location is a resolved place. It is a value type: a new resolution
// always produces a new Location, never mutates an existing one.
type Location struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Key returns the identity key used for deduplication: both coordinates
// rounded to four decimal places.
func (l Location) Key() string {
	return CoordinateKey(l.Latitude, l.Longitude)
}

// CoordinateKey formats a coordinate pair the same way Location.Key does.
func CoordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// DisplayName joins name, region and country, skipping empty parts.
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Admin1, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
