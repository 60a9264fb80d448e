package domain

import "math"

// Conversion factors. Wind and precipitation factors match what the
// forecast provider uses server-side, so locally derived values agree
// with fetched ones.
const (
	kmhPerMph  = 1.60934
	mmPerInch  = 25.4
	mmHgPerHPa = 0.750061683
)

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func MphToKmh(mph float64) float64 { return mph * kmhPerMph }

func KmhToMph(kmh float64) float64 { return kmh / kmhPerMph }

func InchToMm(in float64) float64 { return in * mmPerInch }

func MmToInch(mm float64) float64 { return mm / mmPerInch }

// PressureMmHg converts a pressure in hPa to whole mmHg for display.
func PressureMmHg(hPa float64) int {
	return int(math.Round(hPa * mmHgPerHPa))
}

// ToCelsius interprets a temperature in the given unit system and
// returns Celsius. Used to evaluate recommendation thresholds in metric.
func ToCelsius(v float64, u Units) float64 {
	if u == UnitsImperial {
		return FahrenheitToCelsius(v)
	}
	return v
}

// ToKmh interprets a wind speed in the given unit system and returns km/h.
func ToKmh(v float64, u Units) float64 {
	if u == UnitsImperial {
		return MphToKmh(v)
	}
	return v
}

// ToMm interprets a precipitation amount in the given unit system and
// returns millimetres.
func ToMm(v float64, u Units) float64 {
	if u == UnitsImperial {
		return InchToMm(v)
	}
	return v
}

// TemperatureUnit returns the display suffix for temperatures.
func TemperatureUnit(u Units) string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindUnit returns the display suffix for wind speeds.
func WindUnit(u Units) string {
	if u == UnitsImperial {
		return "mph"
	}
	return "km/h"
}

// PrecipUnit returns the display suffix for precipitation amounts.
func PrecipUnit(u Units) string {
	if u == UnitsImperial {
		return "in"
	}
	return "mm"
}
