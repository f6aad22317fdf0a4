package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"weather-api/internal/models"
)

var csvHeader = []string{
	"location",
	"startDate",
	"endDate",
	"temperatureCelsius",
	"temperatureFahrenheit",
	"description",
	"humidity",
	"windSpeed",
}

func renderCSV(records []models.WeatherRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Location,
			r.StartDate.UTC().Format(time.RFC3339),
			r.EndDate.UTC().Format(time.RFC3339),
			formatNumber(r.TemperatureCelsius),
			formatNumber(r.TemperatureFahrenheit),
			r.Description,
			strconv.Itoa(r.Humidity),
			formatNumber(r.WindSpeed),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
