// Package reports renders a generated report locally when the backend's
// own export endpoints are unavailable.
package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Report is the tabular shape the generate endpoint answers with.
type Report struct {
	Title       string     `json:"title"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
}

var ErrNotTabular = errors.New("report payload is not tabular")

// Parse extracts a tabular report from a generate response. Payloads
// without columns cannot be exported locally.
func Parse(payload json.RawMessage) (Report, error) {
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrNotTabular, err)
	}
	if len(report.Columns) == 0 {
		return Report{}, ErrNotTabular
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}
	return report, nil
}

func RenderCSV(report Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(report.Columns); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RenderPDF(report Report) ([]byte, error) {
	title := report.Title
	if title == "" {
		title = "Report"
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", report.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(report.Columns))

	pdf.SetFont("Helvetica", "B", 10)
	for _, column := range report.Columns {
		pdf.CellFormat(colWidth, 7, column, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range report.Rows {
		for i := 0; i < len(report.Columns); i++ {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
