package domain

import (
	"fmt"
	"math"
)

// MaxRecommendations caps the emitted tips.
const MaxRecommendations = 5

// Recommendation thresholds, evaluated in metric.
const (
	veryColdMaxC     = -15
	coldMaxC         = -5
	chillyMaxC       = 5
	warmMinC         = 22
	hotMinC          = 30
	strongWindKmh    = 35
	likelyPrecipMm   = 1
	likelyPrecipProb = 60
)

// Recommendations builds the "today" tips from a snapshot: a fixed,
// ordered rule list (temperature comment first, hazard conditions,
// precipitation, wind, then closing remarks), capped at
// MaxRecommendations. Each rule triggers independently; the order and
// the cap are stable across runs for the same snapshot.
func Recommendations(s *ForecastSnapshot) []string {
	if s == nil || len(s.Daily.Time) == 0 {
		return nil
	}

	i := todayIndex(s)
	units := s.Units

	var (
		code    = dailyAt(s.Daily.WeatherCode, i)
		tmax    = dailyAtF(s.Daily.TemperatureMax, i)
		tmin    = dailyAtF(s.Daily.TemperatureMin, i)
		precip  = dailyAtF(s.Daily.PrecipitationSum, i)
		wind    = dailyAtF(s.Daily.WindSpeedMax, i)
		sunset  = ""
		precipC = ToMm(precip, units)
		windC   = ToKmh(wind, units)
	)
	if i < len(s.Daily.Sunset) {
		sunset = clockPart(s.Daily.Sunset[i])
	}

	maxProb, hasProb := maxPrecipProbability(HourlyUntilEndOfDay(s))

	tips := make([]string, 0, MaxRecommendations)
	add := func(tip string) {
		if len(tips) < MaxRecommendations {
			tips = append(tips, tip)
		}
	}

	// Temperature band, always first.
	tRange := fmt.Sprintf("%d…%d%s", int(math.Round(tmin)), int(math.Round(tmax)), TemperatureUnit(units))
	switch warmC := ToCelsius(tmax, units); {
	case warmC <= veryColdMaxC:
		add(fmt.Sprintf("Severe cold today (%s): hat and gloves are a must.", tRange))
	case warmC <= coldMaxC:
		add(fmt.Sprintf("Cold today (%s): warm coat and scarf.", tRange))
	case warmC <= chillyMaxC:
		add(fmt.Sprintf("Chilly today (%s): jacket and closed shoes.", tRange))
	case warmC >= hotMinC:
		add(fmt.Sprintf("Hot today (%s): carry water and wear a hat.", tRange))
	case warmC >= warmMinC:
		add(fmt.Sprintf("Warm today (%s): light clothing works.", tRange))
	default:
		add(fmt.Sprintf("Comfortable today (%s): a light jacket may help in the evening.", tRange))
	}

	kind := ClassifyWeatherCode(code)

	// Hazard conditions in fixed order.
	if kind == ConditionThunder {
		add("Thunderstorm: avoid open areas and don't shelter under trees.")
	}
	if kind == ConditionFog {
		add("Fog: drivers should use low beams and keep extra distance.")
	}
	if isFreezingRain(code) {
		add("Freezing rain possible: watch for ice on pavements and roads.")
	}

	// Precipitation for the forecast condition.
	precipRounded := math.Round(precip*10) / 10
	switch {
	case kind == ConditionSnow:
		add("Snow: warm footwear, and careful, it may be slippery.")
	case kind == ConditionRain && precipRounded > 0:
		add(fmt.Sprintf("Precipitation expected (≈%.1f %s): an umbrella or raincoat will help.", precipRounded, PrecipUnit(units)))
	case kind == ConditionRain:
		add("Precipitation expected: an umbrella and waterproof shoes will help.")
	}

	// Likely precipitation even when the daily code says otherwise.
	precipLikely := precipC >= likelyPrecipMm || (hasProb && maxProb >= likelyPrecipProb)
	if kind != ConditionRain && kind != ConditionSnow && precipLikely {
		if hasProb {
			add(fmt.Sprintf("High chance of precipitation (up to %d%%): an umbrella may come in handy.", int(math.Round(maxProb))))
		} else {
			add("Some chance of precipitation: an umbrella may come in handy.")
		}
	}

	if windC >= strongWindKmh {
		add(fmt.Sprintf("Strong wind (up to %d %s): a hood or hat helps, keep clear of trees.", int(math.Round(wind)), WindUnit(units)))
	}

	// Closing remarks only when there is room to spare.
	if kind == ConditionClear && len(tips) < 4 {
		add("Clear sky: a good day for a short walk.")
	}
	if sunset != "" && len(tips) < MaxRecommendations {
		add(fmt.Sprintf("It gets dark around %s: plan outdoor time ahead.", sunset))
	}

	return tips
}

// todayIndex finds the daily entry matching the snapshot's current
// date, falling back to index 0.
func todayIndex(s *ForecastSnapshot) int {
	base := s.Current.Time
	if base == "" && len(s.Hourly.Time) > 0 {
		base = s.Hourly.Time[0]
	}
	if len(base) < 10 {
		return 0
	}
	day := base[:10]
	for i, d := range s.Daily.Time {
		if d == day {
			return i
		}
	}
	return 0
}

func maxPrecipProbability(points []HourlyPoint) (float64, bool) {
	best, found := 0.0, false
	for _, p := range points {
		if !p.HasPrecipProb {
			continue
		}
		if !found || p.PrecipProbability > best {
			best = p.PrecipProbability
			found = true
		}
	}
	return best, found
}

func dailyAt(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func dailyAtF(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
