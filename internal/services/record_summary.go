package services

import (
	"math"
	"strings"
	"time"

	"weather-api/internal/models"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/providers/openweather"
)

// MaxRecordDays is the longest date range a record may span.
const MaxRecordDays = 5

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseRecordDate parses a record boundary. Date-only values are read as midnight UTC.
func ParseRecordDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.InvalidInput("Invalid date format")
}

// ValidateDateRange enforces an ordered range that ends in the future and spans at most MaxRecordDays.
func ValidateDateRange(start, end, now time.Time) error {
	if start.After(end) {
		return apperrors.InvalidInput("Start date must be before end date")
	}
	if end.Before(now) {
		return apperrors.InvalidInput("Cannot create records for past dates")
	}
	days := math.Ceil(end.Sub(start).Hours() / 24)
	if days > MaxRecordDays {
		return apperrors.InvalidInput("Date range cannot exceed 5 days")
	}
	return nil
}

// forecastWindowEnd stretches an end that falls on midnight UTC over the rest of that day.
func forecastWindowEnd(end time.Time) time.Time {
	u := end.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return end.Add(24*time.Hour - time.Second)
	}
	return end
}

// Summarize averages the forecast entries that fall within [start, end].
func Summarize(entries []openweather.ForecastEntry, start, end time.Time) (models.WeatherSummary, error) {
	var relevant []openweather.ForecastEntry
	for _, entry := range entries {
		at := time.Unix(entry.Dt, 0)
		if !at.Before(start) && !at.After(end) {
			relevant = append(relevant, entry)
		}
	}
	if len(relevant) == 0 {
		return models.WeatherSummary{}, apperrors.NoForecastData("No forecast data available for the selected date range")
	}

	var tempSum, humiditySum, windSum float64
	descriptions := make([]string, 0, len(relevant))
	for _, entry := range relevant {
		tempSum += entry.Main.Temp
		humiditySum += float64(entry.Main.Humidity)
		windSum += entry.Wind.Speed
		descriptions = append(descriptions, entry.Description())
	}

	n := float64(len(relevant))
	avgTemp := tempSum / n

	return models.WeatherSummary{
		TemperatureCelsius:    round1(avgTemp),
		TemperatureFahrenheit: round1(avgTemp*9/5 + 32),
		Description:           mostCommon(descriptions),
		Humidity:              int(math.Round(humiditySum / n)),
		WindSpeed:             round1(windSum / n),
	}, nil
}

// mostCommon returns the most frequent value. On a tie the one occurring last wins.
func mostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	for i := len(values) - 1; i >= 0; i-- {
		if counts[values[i]] == best {
			return values[i]
		}
	}
	return ""
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
