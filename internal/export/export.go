// Package export renders weather records as downloadable documents.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"weather-api/internal/models"
	apperrors "weather-api/internal/pkg/errors"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatXML      Format = "xml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// HumanDateLayout is the US short date used in human-readable exports, e.g. "May 1, 2024".
const HumanDateLayout = "Jan 2, 2006"

// Document is a rendered export ready to be sent as an attachment.
type Document struct {
	Format      Format
	ContentType string
	Filename    string
	Data        []byte
}

type renderer func(records []models.WeatherRecord) ([]byte, error)

var formats = map[Format]struct {
	contentType string
	filename    string
	render      renderer
}{
	FormatJSON:     {"application/json", "weather-records.json", renderJSON},
	FormatCSV:      {"text/csv", "weather-records.csv", renderCSV},
	FormatXML:      {"application/xml", "weather-records.xml", renderXML},
	FormatMarkdown: {"text/markdown", "weather-records.md", renderMarkdown},
	FormatPDF:      {"application/pdf", "weather-records.pdf", renderPDF},
}

// ParseFormat accepts a case-insensitive format name. Empty means JSON; "md" is an alias for Markdown.
func ParseFormat(raw string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return FormatJSON, nil
	case "md":
		return FormatMarkdown, nil
	}
	if _, ok := formats[Format(name)]; ok {
		return Format(name), nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("Unsupported export format %q. Use json, csv, xml, markdown or pdf", raw))
}

// Render serializes records in the given format.
func Render(format Format, records []models.WeatherRecord) (*Document, error) {
	f, ok := formats[format]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unsupported export format %q", format))
	}

	data, err := f.render(records)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("Failed to convert records to %s", format))
	}

	return &Document{
		Format:      format,
		ContentType: f.contentType,
		Filename:    f.filename,
		Data:        data,
	}, nil
}

// FormatDate renders t in the human-readable export layout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(HumanDateLayout)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recordLines are the labelled lines shared by the Markdown and PDF exports.
func recordLines(r models.WeatherRecord, empty string) []string {
	orEmpty := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return empty
		}
		return s
	}
	return []string{
		"Location: " + orEmpty(r.Location),
		"Date Range: " + FormatDate(r.StartDate) + " - " + FormatDate(r.EndDate),
		"Temperature: " + formatNumber(r.TemperatureCelsius) + "°C / " + formatNumber(r.TemperatureFahrenheit) + "°F",
		"Description: " + orEmpty(r.Description),
		"Humidity: " + strconv.Itoa(r.Humidity) + "%",
		"Wind Speed: " + formatNumber(r.WindSpeed) + " m/s",
	}
}
