// internal/output/json.go
package output

import (
	"encoding/json"
	"os"

	"reviewscraper/internal/model"
)

// JSONWriter writes the run result as one indented JSON document.
type JSONWriter struct {
	filename string
	file     *os.File
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{
		filename: filename,
		file:     file,
	}, nil
}

// Write writes the run result to the JSON file.
func (w *JSONWriter) Write(result *model.RunResult) error {
	encoder := json.NewEncoder(w.file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

// Close closes the JSON writer.
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
