// internal/output/manager.go
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"reviewscraper/internal/model"
)

// Manager routes a run result to the writer for the configured format.
type Manager struct {
	format Format
	file   string
}

// NewManager creates an output manager for the given format and file path.
func NewManager(format, file string) (*Manager, error) {
	f := Format(format)
	if !f.IsValid() {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	if file == "" {
		return nil, fmt.Errorf("output file is required")
	}
	return &Manager{format: f, file: file}, nil
}

// GetWriter returns the writer for the configured format.
func (m *Manager) GetWriter() (Writer, error) {
	switch m.format {
	case FormatJSON:
		return NewJSONWriter(m.file)
	case FormatCSV:
		return NewCSVWriter(m.file)
	case FormatExcel:
		return NewExcelWriter(m.file)
	case FormatSQLite:
		return NewSQLiteWriter(m.file)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", m.format)
	}
}

// Write persists the run result, creating the output directory if needed.
func (m *Manager) Write(result *model.RunResult) error {
	if dir := filepath.Dir(m.file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	writer, err := m.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get writer: %w", err)
	}
	defer writer.Close()

	return writer.Write(result)
}

// File returns the configured output path.
func (m *Manager) File() string { return m.file }
