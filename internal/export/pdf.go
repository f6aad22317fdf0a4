package export

import (
	"bytes"
	"fmt"

	"weather-api/internal/models"

	"github.com/go-pdf/fpdf"
)

// renderPDF lays out one A4 page per record with a "Page N of M" footer.
func renderPDF(records []models.WeatherRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	for i, r := range records {
		pdf.AddPage()
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 24)
			pdf.CellFormat(0, 14, "Weather Records", "", 1, "C", false, 0, "")
			pdf.Ln(6)
		}

		pdf.SetFont("Helvetica", "U", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Record %d", i+1), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 12)
		for _, line := range recordLines(r, "N/A") {
			pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
