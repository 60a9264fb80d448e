package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureConversions(t *testing.T) {
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 1e-9)
	assert.InDelta(t, 0.0, FahrenheitToCelsius(32), 1e-9)
	assert.InDelta(t, 37.0, FahrenheitToCelsius(98.6), 1e-9)
}

func TestSpeedAndPrecipConversions(t *testing.T) {
	assert.InDelta(t, 16.0934, MphToKmh(10), 1e-6)
	assert.InDelta(t, 10.0, KmhToMph(MphToKmh(10)), 1e-9)
	assert.InDelta(t, 25.4, InchToMm(1), 1e-9)
	assert.InDelta(t, 0.5, MmToInch(InchToMm(0.5)), 1e-9)
}

func TestPressureMmHg(t *testing.T) {
	// Standard sea-level pressure.
	assert.Equal(t, 760, PressureMmHg(1013.25))
	assert.Equal(t, 750, PressureMmHg(1000))
	assert.Equal(t, 0, PressureMmHg(0))
}

func TestCanonicalizers(t *testing.T) {
	assert.InDelta(t, 20.0, ToCelsius(20, UnitsMetric), 1e-9)
	assert.InDelta(t, 20.0, ToCelsius(68, UnitsImperial), 1e-9)
	assert.InDelta(t, 30.0, ToKmh(30, UnitsMetric), 1e-9)
	assert.InDelta(t, 32.1868, ToKmh(20, UnitsImperial), 1e-6)
	assert.InDelta(t, 5.0, ToMm(5, UnitsMetric), 1e-9)
	assert.InDelta(t, 12.7, ToMm(0.5, UnitsImperial), 1e-9)
}

func TestUnitSuffixes(t *testing.T) {
	assert.Equal(t, "°C", TemperatureUnit(UnitsMetric))
	assert.Equal(t, "°F", TemperatureUnit(UnitsImperial))
	assert.Equal(t, "km/h", WindUnit(UnitsMetric))
	assert.Equal(t, "mph", WindUnit(UnitsImperial))
	assert.Equal(t, "mm", PrecipUnit(UnitsMetric))
	assert.Equal(t, "in", PrecipUnit(UnitsImperial))
}

func TestClassifyWeatherCode(t *testing.T) {
	cases := []struct {
		code int
		want ConditionKind
	}{
		{0, ConditionClear},
		{2, ConditionCloudy},
		{45, ConditionFog},
		{48, ConditionFog},
		{53, ConditionRain},
		{61, ConditionRain},
		{66, ConditionRain},
		{81, ConditionRain},
		{71, ConditionSnow},
		{77, ConditionSnow},
		{86, ConditionSnow},
		{95, ConditionThunder},
		{99, ConditionThunder},
		{42, ConditionUnknown},
		{-1, ConditionUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyWeatherCode(tc.code), "code %d", tc.code)
	}

	assert.True(t, isFreezingRain(66))
	assert.True(t, isFreezingRain(67))
	assert.False(t, isFreezingRain(61))
}
