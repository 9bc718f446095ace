// File: /export/pdf.go
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfTitleY   = 15
	pdfCaptionY = 25
	pdfTableY   = 35
)

// WritePDF renders rows as a titled, grid themed table and writes the
// document to w. The page carries the title and a "Generated: <date>"
// caption; an empty row set still produces a valid document with a
// "No data to display" note instead of a table. The layout engine breaks
// onto new pages automatically once the table outgrows the current one.
func WritePDF(w io.Writer, title string, cols []Column, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(15, pdfTitleY, title)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, pdfCaptionY, fmt.Sprintf("Generated: %s", time.Now().Format(shortDate)))

	if len(rows) == 0 {
		pdf.Text(15, pdfTableY, "No data to display")
		return pdf.Output(w)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(cols))

	// Header row: filled background, light bold text
	pdf.SetY(pdfTableY)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(180, 180, 180)
	for _, col := range cols {
		pdf.CellFormat(colWidth, 8, col.Label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for _, col := range cols {
			value, _ := row.Get(col.Key)
			text := pdfValue(value)
			if col.Format != nil && value != nil {
				text = col.Format(value)
			}
			pdf.CellFormat(colWidth, 7, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// pdfValue normalizes a cell value: dates become short date strings,
// numbers are fixed to two decimals and missing values become a dash.
func pdfValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case time.Time:
		return v.Format(shortDate)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case float32:
		return fmt.Sprintf("%.2f", v)
	case int:
		return fmt.Sprintf("%.2f", float64(v))
	case int64:
		return fmt.Sprintf("%.2f", float64(v))
	case string:
		if v == "" {
			return "-"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
