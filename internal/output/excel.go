// internal/output/excel.go
package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"reviewscraper/internal/model"
)

const (
	reviewsSheet = "Reviews"
	runSheet     = "Run"
)

// ExcelWriter writes reviews to a workbook: one sheet of review rows plus a
// sheet of run metadata.
type ExcelWriter struct {
	filename string
	book     *excelize.File
}

// NewExcelWriter creates a new Excel writer.
func NewExcelWriter(filename string) (*ExcelWriter, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName("Sheet1", reviewsSheet); err != nil {
		return nil, fmt.Errorf("failed to set up workbook: %w", err)
	}
	if _, err := book.NewSheet(runSheet); err != nil {
		return nil, fmt.Errorf("failed to set up workbook: %w", err)
	}
	return &ExcelWriter{
		filename: filename,
		book:     book,
	}, nil
}

// Write fills both sheets and saves the workbook.
func (w *ExcelWriter) Write(result *model.RunResult) error {
	if err := w.writeReviews(result.Reviews); err != nil {
		return err
	}
	if err := w.writeRunMetadata(result.Metadata); err != nil {
		return err
	}
	return w.book.SaveAs(w.filename)
}

func (w *ExcelWriter) writeReviews(reviews []*model.Review) error {
	header := make([]interface{}, len(reviewColumns))
	for i, column := range reviewColumns {
		header[i] = column
	}
	if err := w.book.SetSheetRow(reviewsSheet, "A1", &header); err != nil {
		return err
	}

	headerStyle, err := w.book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	lastColumn, err := excelize.ColumnNumberToName(len(reviewColumns))
	if err != nil {
		return err
	}
	if err := w.book.SetCellStyle(reviewsSheet, "A1", lastColumn+"1", headerStyle); err != nil {
		return err
	}
	// Title and description columns carry long text.
	if err := w.book.SetColWidth(reviewsSheet, "A", "B", 50); err != nil {
		return err
	}

	for i, review := range reviews {
		cells := reviewRow(review)
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		if review.Rating != nil {
			row[4] = *review.Rating
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.book.SetSheetRow(reviewsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) writeRunMetadata(meta model.RunMetadata) error {
	rows := [][]interface{}{
		{"company", meta.Company},
		{"start_date", meta.StartDate},
		{"end_date", meta.EndDate},
		{"sources", strings.Join(meta.Sources, ", ")},
		{"total_reviews", meta.TotalReviews},
		{"scraped_at", meta.ScrapedAt},
		{"scraper_version", meta.ScraperVersion},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.book.SetSheetRow(runSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Close releases workbook resources.
func (w *ExcelWriter) Close() error {
	if w.book != nil {
		err := w.book.Close()
		w.book = nil
		return err
	}
	return nil
}
