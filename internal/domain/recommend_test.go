package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recommendFixture builds a one-day snapshot with the given daily
// values. Current time is mid-morning so the end-of-day window covers
// most of the day.
func recommendFixture(units Units, code int, tmin, tmax, precipSum, windMax float64) *ForecastSnapshot {
	s := &ForecastSnapshot{Units: units}
	s.Current.Time = "2026-03-01T09:30"
	s.Daily.Time = []string{"2026-03-01"}
	s.Daily.WeatherCode = []int{code}
	s.Daily.TemperatureMin = []float64{tmin}
	s.Daily.TemperatureMax = []float64{tmax}
	s.Daily.PrecipitationSum = []float64{precipSum}
	s.Daily.WindSpeedMax = []float64{windMax}
	s.Daily.Sunrise = []string{"2026-03-01T06:40"}
	s.Daily.Sunset = []string{"2026-03-01T18:05"}
	return s
}

func TestRecommendations(t *testing.T) {
	t.Run("temperature line comes first", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 2, 1, 4, 0, 10)
		tips := Recommendations(s)

		require.NotEmpty(t, tips)
		assert.Contains(t, tips[0], "Chilly today (1…4°C)")
	})

	t.Run("temperature bands", func(t *testing.T) {
		cases := []struct {
			tmax float64
			want string
		}{
			{-20, "Severe cold"},
			{-10, "Cold today"},
			{3, "Chilly today"},
			{15, "Comfortable today"},
			{25, "Warm today"},
			{33, "Hot today"},
		}
		for _, tc := range cases {
			s := recommendFixture(UnitsMetric, 2, tc.tmax-5, tc.tmax, 0, 10)
			tips := Recommendations(s)
			require.NotEmpty(t, tips, "tmax %v", tc.tmax)
			assert.Contains(t, tips[0], tc.want, "tmax %v", tc.tmax)
		}
	})

	t.Run("imperial thresholds are evaluated in metric", func(t *testing.T) {
		// 91°F ≈ 32.8°C: hot.
		s := recommendFixture(UnitsImperial, 0, 70, 91, 0, 5)
		tips := Recommendations(s)

		require.NotEmpty(t, tips)
		assert.Contains(t, tips[0], "Hot today (70…91°F)")
	})

	t.Run("rain with measurable sum names the amount", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 61, 5, 12, 4.26, 10)
		tips := Recommendations(s)

		assert.Contains(t, tips, "Precipitation expected (≈4.3 mm): an umbrella or raincoat will help.")
	})

	t.Run("rain without a sum falls back to the generic line", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 61, 5, 12, 0, 10)
		tips := Recommendations(s)

		assert.Contains(t, tips, "Precipitation expected: an umbrella and waterproof shoes will help.")
	})

	t.Run("freezing rain adds the ice warning", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 66, -3, 0, 2, 10)
		tips := Recommendations(s)

		assert.Contains(t, tips, "Freezing rain possible: watch for ice on pavements and roads.")
	})

	t.Run("high hourly probability triggers the likely-precipitation tip", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 2, 5, 12, 0, 10)
		s.Hourly.Time = []string{"2026-03-01T10:00", "2026-03-01T11:00"}
		s.Hourly.Temperature = []float64{10, 11}
		s.Hourly.WeatherCode = []int{2, 2}
		s.Hourly.IsDay = []int{1, 1}
		s.Hourly.PrecipProbability = []float64{30, 75}

		tips := Recommendations(s)
		assert.Contains(t, tips, "High chance of precipitation (up to 75%): an umbrella may come in handy.")
	})

	t.Run("strong wind", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 2, 5, 12, 0, 42)
		tips := Recommendations(s)

		assert.Contains(t, tips, "Strong wind (up to 42 km/h): a hood or hat helps, keep clear of trees.")
	})

	t.Run("clear day gets the walk and sunset remarks", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 0, 8, 16, 0, 10)
		tips := Recommendations(s)

		require.Len(t, tips, 3)
		assert.Contains(t, tips[1], "Clear sky")
		assert.Contains(t, tips[2], "It gets dark around 18:05")
	})

	t.Run("caps at five and preserves rule order", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 95, -1, 1, 6, 50)
		s.Daily.WeatherCode = []int{95}
		tips := Recommendations(s)

		require.Len(t, tips, MaxRecommendations)
		assert.Contains(t, tips[0], "Chilly today")
		assert.Contains(t, tips[1], "Thunderstorm")
		// Daily sum >= 1 mm triggers the likely-precipitation tip for
		// non-rain codes.
		assert.Contains(t, tips[2], "chance of precipitation")
		assert.Contains(t, tips[3], "Strong wind")
		assert.Contains(t, tips[4], "It gets dark")
	})

	t.Run("today is matched by date not index", func(t *testing.T) {
		s := recommendFixture(UnitsMetric, 0, 5, 12, 0, 10)
		s.Daily.Time = []string{"2026-02-28", "2026-03-01"}
		s.Daily.WeatherCode = []int{61, 0}
		s.Daily.TemperatureMin = []float64{0, 8}
		s.Daily.TemperatureMax = []float64{4, 16}
		s.Daily.PrecipitationSum = []float64{9, 0}
		s.Daily.WindSpeedMax = []float64{40, 10}
		s.Daily.Sunrise = []string{"2026-02-28T06:42", "2026-03-01T06:40"}
		s.Daily.Sunset = []string{"2026-02-28T18:03", "2026-03-01T18:05"}

		tips := Recommendations(s)
		require.NotEmpty(t, tips)
		assert.Contains(t, tips[0], "Comfortable today (8…16°C)")
		assert.Contains(t, tips[1], "Clear sky")
	})

	t.Run("nil and empty snapshots", func(t *testing.T) {
		assert.Nil(t, Recommendations(nil))
		assert.Nil(t, Recommendations(&ForecastSnapshot{}))
	})
}
