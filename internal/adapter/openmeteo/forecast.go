// Package openmeteo adapts the Open-Meteo forecast and geocoding APIs.
package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/domain"
)

// Variable lists requested from the forecast endpoint. Order matters
// only for URL stability in tests.
const (
	currentVars = "temperature_2m,apparent_temperature,is_day,weather_code,wind_speed_10m,relative_humidity_2m,pressure_msl,surface_pressure"
	hourlyVars  = "temperature_2m,weather_code,is_day,precipitation_probability"
	dailyVars   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,sunrise,sunset"
)

// ForecastClient fetches forecast snapshots.
type ForecastClient struct {
	client  *httpx.Client
	baseURL string
	days    int
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewForecastClient creates a forecast client against baseURL requesting
// the given number of forecast days.
func NewForecastClient(client *httpx.Client, baseURL string, days int, clock clockwork.Clock, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		client:  client,
		baseURL: baseURL,
		days:    days,
		clock:   clock,
		logger:  logger,
	}
}

// Forecast fetches a snapshot for loc in the given unit system. The
// provider converts units server-side; timestamps come back in the
// location's own timezone.
func (c *ForecastClient) Forecast(ctx context.Context, loc domain.Location, units domain.Units) (*domain.ForecastSnapshot, error) {
	params := url.Values{
		"latitude":      {formatCoord(loc.Latitude)},
		"longitude":     {formatCoord(loc.Longitude)},
		"timezone":      {"auto"},
		"forecast_days": {strconv.Itoa(c.days)},
		"current":       {currentVars},
		"hourly":        {hourlyVars},
		"daily":         {dailyVars},
	}
	if units == domain.UnitsImperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
		params.Set("precipitation_unit", "inch")
	}

	var resp forecastResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	snap := &domain.ForecastSnapshot{
		Location: loc,
		Units:    units,
		Current: domain.CurrentConditions{
			Time:                resp.Current.Time,
			Temperature:         resp.Current.Temperature,
			ApparentTemperature: resp.Current.ApparentTemperature,
			WeatherCode:         resp.Current.WeatherCode,
			IsDay:               resp.Current.IsDay == 1,
			WindSpeed:           resp.Current.WindSpeed,
			Humidity:            resp.Current.Humidity,
			PressureMSL:         resp.Current.PressureMSL,
			SurfacePressure:     resp.Current.SurfacePressure,
		},
		Hourly: domain.HourlySeries{
			Time:              resp.Hourly.Time,
			Temperature:       resp.Hourly.Temperature,
			WeatherCode:       resp.Hourly.WeatherCode,
			IsDay:             resp.Hourly.IsDay,
			PrecipProbability: resp.Hourly.PrecipProbability,
		},
		Daily: domain.DailySeries{
			Time:             resp.Daily.Time,
			WeatherCode:      resp.Daily.WeatherCode,
			TemperatureMax:   resp.Daily.TemperatureMax,
			TemperatureMin:   resp.Daily.TemperatureMin,
			PrecipitationSum: resp.Daily.PrecipitationSum,
			WindSpeedMax:     resp.Daily.WindSpeedMax,
			Sunrise:          resp.Daily.Sunrise,
			Sunset:           resp.Daily.Sunset,
		},
		Timezone:         resp.Timezone,
		TimezoneAbbr:     resp.TimezoneAbbr,
		UTCOffsetSeconds: resp.UTCOffsetSeconds,
		FetchedAt:        c.clock.Now(),
	}
	if snap.Timezone != "" {
		snap.Location.Timezone = snap.Timezone
	}
	return snap, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Forecast endpoint response types.

type forecastResponse struct {
	Timezone         string `json:"timezone"`
	TimezoneAbbr     string `json:"timezone_abbreviation"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`

	Current struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		Humidity            float64 `json:"relative_humidity_2m"`
		PressureMSL         float64 `json:"pressure_msl"`
		SurfacePressure     float64 `json:"surface_pressure"`
	} `json:"current"`

	Hourly struct {
		Time              []string  `json:"time"`
		Temperature       []float64 `json:"temperature_2m"`
		WeatherCode       []int     `json:"weather_code"`
		IsDay             []int     `json:"is_day"`
		PrecipProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`

	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
	} `json:"daily"`
}
