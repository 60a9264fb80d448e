package domain

import "time"

// CurrentConditions holds the provider's "current" block.
type CurrentConditions struct {
	Time                string  `json:"time"` // local ISO, "2006-01-02T15:04"
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
	IsDay               bool    `json:"is_day"`
	WindSpeed           float64 `json:"wind_speed"`
	Humidity            float64 `json:"humidity"`
	PressureMSL         float64 `json:"pressure_msl"`     // hPa
	SurfacePressure     float64 `json:"surface_pressure"` // hPa, fallback when MSL is absent
}

// HourlySeries holds parallel arrays indexed by timestamp, as returned
// by the provider. All slices have equal length; PrecipProbability may
// be nil when the provider omits it.
type HourlySeries struct {
	Time              []string  `json:"time"`
	Temperature       []float64 `json:"temperature"`
	WeatherCode       []int     `json:"weather_code"`
	IsDay             []int     `json:"is_day"`
	PrecipProbability []float64 `json:"precip_probability,omitempty"`
}

// DailySeries holds 8 entries; index 0 is "today".
type DailySeries struct {
	Time             []string  `json:"time"` // "2006-01-02"
	WeatherCode      []int     `json:"weather_code"`
	TemperatureMax   []float64 `json:"temperature_max"`
	TemperatureMin   []float64 `json:"temperature_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeedMax     []float64 `json:"wind_speed_max"`
	Sunrise          []string  `json:"sunrise"` // local ISO
	Sunset           []string  `json:"sunset"`
}

// ForecastSnapshot is the raw fetched payload for one location and unit
// system. It is replaced wholesale on each successful fetch and is
// read-only to consumers.
type ForecastSnapshot struct {
	Location         Location          `json:"location"`
	Units            Units             `json:"units"`
	Current          CurrentConditions `json:"current"`
	Hourly           HourlySeries      `json:"hourly"`
	Daily            DailySeries       `json:"daily"`
	Timezone         string            `json:"timezone"`
	TimezoneAbbr     string            `json:"timezone_abbr,omitempty"`
	UTCOffsetSeconds int               `json:"utc_offset_seconds"`
	FetchedAt        time.Time         `json:"fetched_at"`
}
