package export

import (
	"encoding/xml"

	"weather-api/internal/models"
)

type xmlRecords struct {
	XMLName xml.Name    `xml:"weatherRecords"`
	Records []xmlRecord `xml:"record"`
}

type xmlRecord struct {
	Location              string  `xml:"location"`
	StartDate             string  `xml:"startDate"`
	EndDate               string  `xml:"endDate"`
	TemperatureCelsius    float64 `xml:"temperatureCelsius"`
	TemperatureFahrenheit float64 `xml:"temperatureFahrenheit"`
	Description           string  `xml:"description"`
	Humidity              int     `xml:"humidity"`
	WindSpeed             float64 `xml:"windSpeed"`
}

func renderXML(records []models.WeatherRecord) ([]byte, error) {
	doc := xmlRecords{Records: make([]xmlRecord, 0, len(records))}
	for _, r := range records {
		doc.Records = append(doc.Records, xmlRecord{
			Location:              r.Location,
			StartDate:             FormatDate(r.StartDate),
			EndDate:               FormatDate(r.EndDate),
			TemperatureCelsius:    r.TemperatureCelsius,
			TemperatureFahrenheit: r.TemperatureFahrenheit,
			Description:           r.Description,
			Humidity:              r.Humidity,
			WindSpeed:             r.WindSpeed,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
