package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultHourlyWindow is the number of upcoming hourly points shown by
// the "next hours" strip.
const DefaultHourlyWindow = 12

// HourlyPoint is one display-ready hourly entry.
type HourlyPoint struct {
	Time              string  `json:"time"` // "15:04"
	Temperature       float64 `json:"temperature"`
	WeatherCode       int     `json:"weather_code"`
	IsDay             bool    `json:"is_day"`
	PrecipProbability float64 `json:"precip_probability"`
	HasPrecipProb     bool    `json:"has_precip_prob"`
}

// DailyCard is one display-ready forecast card.
type DailyCard struct {
	Date             string  `json:"date"` // "2006-01-02"
	WeatherCode      int     `json:"weather_code"`
	TemperatureMax   float64 `json:"temperature_max"`
	TemperatureMin   float64 `json:"temperature_min"`
	PrecipitationSum float64 `json:"precipitation_sum"`
	WindSpeedMax     float64 `json:"wind_speed_max"`
	Sunrise          string  `json:"sunrise"` // "15:04"
	Sunset           string  `json:"sunset"`
}

// CeilToHour rounds a local ISO timestamp up to the next whole hour.
// "2026-03-01T09:00" stays as is; "2026-03-01T09:01" becomes
// "2026-03-01T10:00", rolling the date at midnight. Returns "" for
// unparseable input.
func CeilToHour(isoLocal string) string {
	if len(isoLocal) < 16 {
		return ""
	}
	day := isoLocal[:10]
	hh, errH := strconv.Atoi(isoLocal[11:13])
	mm, errM := strconv.Atoi(isoLocal[14:16])
	if errH != nil || errM != nil {
		return ""
	}
	if mm > 0 {
		hh++
	}
	if hh >= 24 {
		hh -= 24
		day = addDays(day, 1)
	}
	return fmt.Sprintf("%sT%02d:00", day, hh)
}

// addDays shifts an ISO date by n days, returning the input unchanged
// when it does not parse.
func addDays(dateISO string, n int) string {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return dateISO
	}
	return d.AddDate(0, 0, n).Format("2006-01-02")
}

// HourlyUntilEndOfDay selects the hourly points from the next whole
// hour after the snapshot's current time through 23:00 of the same
// calendar day.
func HourlyUntilEndOfDay(s *ForecastSnapshot) []HourlyPoint {
	if s == nil || len(s.Hourly.Time) == 0 {
		return nil
	}
	base := s.Current.Time
	if base == "" {
		base = s.Hourly.Time[0]
	}
	if len(base) < 10 {
		return nil
	}
	day := base[:10]
	start := CeilToHour(base)
	if start == "" {
		start = day + "T00:00"
	}
	end := day + "T23:00"

	var points []HourlyPoint
	for i, ts := range s.Hourly.Time {
		if len(ts) < 16 || ts[:10] != day {
			continue
		}
		if ts < start || ts > end {
			continue
		}
		points = append(points, s.hourlyPoint(i, ts))
	}
	return points
}

// HourlyNext selects the next n hourly points starting at the next
// whole hour, crossing day boundaries.
func HourlyNext(s *ForecastSnapshot, n int) []HourlyPoint {
	if s == nil || n <= 0 || len(s.Hourly.Time) == 0 {
		return nil
	}
	base := s.Current.Time
	if base == "" {
		base = s.Hourly.Time[0]
	}
	start := CeilToHour(base)
	if start == "" {
		start = s.Hourly.Time[0]
	}

	var points []HourlyPoint
	for i, ts := range s.Hourly.Time {
		if len(ts) < 16 || ts < start {
			continue
		}
		points = append(points, s.hourlyPoint(i, ts))
		if len(points) == n {
			break
		}
	}
	return points
}

func (s *ForecastSnapshot) hourlyPoint(i int, ts string) HourlyPoint {
	p := HourlyPoint{Time: ts[11:16]}
	if i < len(s.Hourly.Temperature) {
		p.Temperature = s.Hourly.Temperature[i]
	}
	if i < len(s.Hourly.WeatherCode) {
		p.WeatherCode = s.Hourly.WeatherCode[i]
	}
	if i < len(s.Hourly.IsDay) {
		p.IsDay = s.Hourly.IsDay[i] == 1
	}
	if s.Hourly.PrecipProbability != nil && i < len(s.Hourly.PrecipProbability) {
		p.PrecipProbability = s.Hourly.PrecipProbability[i]
		p.HasPrecipProb = true
	}
	return p
}

// DailyCards returns the renderable cards: indices 1..7 of the daily
// series, in original order. Index 0 is "today" and is excluded.
func DailyCards(s *ForecastSnapshot) []DailyCard {
	if s == nil || len(s.Daily.Time) < 2 {
		return nil
	}
	end := min(len(s.Daily.Time), 8)
	cards := make([]DailyCard, 0, end-1)
	for i := 1; i < end; i++ {
		c := DailyCard{Date: s.Daily.Time[i]}
		if i < len(s.Daily.WeatherCode) {
			c.WeatherCode = s.Daily.WeatherCode[i]
		}
		if i < len(s.Daily.TemperatureMax) {
			c.TemperatureMax = s.Daily.TemperatureMax[i]
		}
		if i < len(s.Daily.TemperatureMin) {
			c.TemperatureMin = s.Daily.TemperatureMin[i]
		}
		if i < len(s.Daily.PrecipitationSum) {
			c.PrecipitationSum = s.Daily.PrecipitationSum[i]
		}
		if i < len(s.Daily.WindSpeedMax) {
			c.WindSpeedMax = s.Daily.WindSpeedMax[i]
		}
		if i < len(s.Daily.Sunrise) {
			c.Sunrise = clockPart(s.Daily.Sunrise[i])
		}
		if i < len(s.Daily.Sunset) {
			c.Sunset = clockPart(s.Daily.Sunset[i])
		}
		cards = append(cards, c)
	}
	return cards
}

// clockPart extracts "15:04" from a local ISO timestamp.
func clockPart(isoLocal string) string {
	if len(isoLocal) < 16 {
		return ""
	}
	return isoLocal[11:16]
}
