package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sheetops/internal/config"
	"sheetops/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteCSV writes data to a CSV file, replacing any existing file.
// Relative paths resolve against the reports directory.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.paths.GetReportPath(filePath)

	w.logger.Debug("writing csv file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return fullPath, file.Close()
}

// WriteTable writes rows under columns as <name>.csv with a BOM
func (w *CSVWriter) WriteTable(name string, columns []string, rows []domain.Row) (string, error) {
	return w.WriteCSV(name+FormatCSV.Ext(), WriteOptions{
		Headers:   columns,
		Records:   textRecords(columns, rows),
		BOMPrefix: true,
	})
}
