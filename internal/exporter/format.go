package exporter

import (
	"fmt"
	"strings"

	"sheetops/pkg/contracts/domain"
)

// Format selects the report file type
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts xlsx or csv in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q: want xlsx or csv", s)
	}
}

// Ext returns the file extension including the dot
func (f Format) Ext() string {
	return "." + string(f)
}

// cellText renders a field for text output. Absent fields are blank.
func cellText(row domain.Row, column string) string {
	v, ok := row[column]
	if !ok {
		return ""
	}
	return v.String()
}

// textRecords lays rows out under columns
func textRecords(columns []string, rows []domain.Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = cellText(row, col)
		}
		records = append(records, record)
	}
	return records
}
