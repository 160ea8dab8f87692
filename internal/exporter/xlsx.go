package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"sheetops/internal/config"
	"sheetops/pkg/contracts/domain"
)

// SheetName is the only sheet in every exported workbook
const SheetName = "Sheet1"

// XLSXWriter writes single-sheet workbooks
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer rooted at the reports directory
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteTable writes rows under columns as <name>.xlsx. Numbers are stored as
// numeric cells, absent fields leave the cell empty.
func (w *XLSXWriter) WriteTable(name string, columns []string, rows []domain.Row) (string, error) {
	fullPath := w.paths.GetReportPath(name + FormatXLSX.Ext())

	w.logger.Debug("writing xlsx file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(rows)))

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		for c, col := range columns {
			v, ok := row[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(SheetName, cell, v.Interface()); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}
