// internal/output/csv.go
package output

import (
	"encoding/csv"
	"os"

	"reviewscraper/internal/model"
)

// CSVWriter writes reviews as flat rows. Run metadata does not fit a flat
// table and is left to the JSON document.
type CSVWriter struct {
	filename string
	file     *os.File
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &CSVWriter{
		filename: filename,
		file:     file,
	}, nil
}

// Write writes a header row followed by one row per review.
func (w *CSVWriter) Write(result *model.RunResult) error {
	writer := csv.NewWriter(w.file)
	if err := writer.Write(reviewColumns); err != nil {
		return err
	}
	for _, review := range result.Reviews {
		if err := writer.Write(reviewRow(review)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Close closes the CSV writer.
func (w *CSVWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
