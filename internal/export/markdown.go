package export

import (
	"fmt"
	"strings"

	"weather-api/internal/models"
)

func renderMarkdown(records []models.WeatherRecord) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Weather Records\n\n")

	for i, r := range records {
		fmt.Fprintf(&b, "## Record %d\n\n", i+1)
		for _, line := range recordLines(r, "") {
			b.WriteString("- " + line + "\n")
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
