package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pulsedash/pulsedash/internal/models"
)

// column widths in mm, tuned for an A4 portrait page
var pdfWidths = []float64{32, 26, 26, 22, 42, 22, 20}

// PDF renders a paginated tabular "Users Report" document.
func PDF(users []models.PublicUser) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Users Report")
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(235, 235, 235)
	for i, c := range Columns {
		doc.CellFormat(pdfWidths[i], 7, c, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	for _, u := range users {
		for i, v := range Row(u) {
			doc.CellFormat(pdfWidths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
