package export

import (
	"encoding/json"

	"weather-api/internal/models"
)

type jsonRecord struct {
	ID                    uint    `json:"id"`
	Location              string  `json:"location"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	StartDate             string  `json:"startDate"`
	EndDate               string  `json:"endDate"`
	TemperatureCelsius    float64 `json:"temperatureCelsius"`
	TemperatureFahrenheit float64 `json:"temperatureFahrenheit"`
	Description           string  `json:"description"`
	Humidity              int     `json:"humidity"`
	WindSpeed             float64 `json:"windSpeed"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

func renderJSON(records []models.WeatherRecord) ([]byte, error) {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			ID:                    r.ID,
			Location:              r.Location,
			Latitude:              r.Latitude,
			Longitude:             r.Longitude,
			StartDate:             FormatDate(r.StartDate),
			EndDate:               FormatDate(r.EndDate),
			TemperatureCelsius:    r.TemperatureCelsius,
			TemperatureFahrenheit: r.TemperatureFahrenheit,
			Description:           r.Description,
			Humidity:              r.Humidity,
			WindSpeed:             r.WindSpeed,
			CreatedAt:             FormatDate(r.CreatedAt),
			UpdatedAt:             FormatDate(r.UpdatedAt),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
