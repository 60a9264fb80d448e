// Package domain models the weather-widget core: resolved locations,
// forecast snapshots, user preferences, and the pure display math
// derived from them.
//
// # Data Source
//
// Forecasts come from the Open-Meteo forecast API. Timestamps in a
// snapshot are local ISO strings without offset ("2006-01-02T15:04"),
// exactly as the provider returns them with timezone=auto; windowing
// relies on their lexicographic ordering. Weather conditions are WMO
// interpretation codes:
//
//	0        clear sky
//	1–3      mainly clear / partly cloudy / overcast
//	45, 48   fog
//	51–57    drizzle (56–57 freezing)
//	61–67    rain (66–67 freezing)
//	71–77    snow
//	80–82    rain showers
//	85–86    snow showers
//	95–99    thunderstorm
//
// # Units
//
// The provider returns values pre-converted for the active unit system
// (Celsius/km/h/mm or Fahrenheit/mph/inch). Switching units therefore
// re-fetches; the only client-side conversion is pressure, which the
// provider always reports in hPa and the widget displays in mmHg
// (1 hPa = 0.750061683 mmHg, rounded to the nearest integer).
// Recommendation thresholds are evaluated in metric regardless of the
// display unit system.
//
// # Identity Key
//
// Locations are deduplicated by their coordinate pair rounded to four
// decimal places ("%.4f,%.4f"), roughly an 11 m grid. The same key
// drives recents deduplication and removal. See [Location.Key].
//
// # Daily Series
//
// Snapshots carry 8 daily entries. Index 0 is "today" and is never
// rendered as a card; [DailyCards] returns indices 1..7.
package domain
