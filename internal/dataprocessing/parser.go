package dataprocessing

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "sheetops/internal/errors"
	"sheetops/pkg/contracts/domain"
)

// ReadWorkbook opens an Excel workbook and reads its first sheet as a table
func ReadWorkbook(path string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	table, err := readFirstSheet(f)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("path", path)
		}
		return domain.Table{}, err
	}
	return table, nil
}

// ParseWorkbook reads the first sheet of a workbook streamed from r
func ParseWorkbook(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, apperrors.NewParsingError("failed to read workbook", err)
	}
	defer f.Close()

	return readFirstSheet(f)
}

// readFirstSheet treats the first row as the header and every later non-empty
// row as a record. Empty cells are left absent. Each record keeps its sheet row
// number in SourceRows.
func readFirstSheet(f *excelize.File) (domain.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, apperrors.NewParsingError("workbook has no sheets", nil)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, apperrors.NewParsingError("failed to read rows", err).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return domain.NewTable(), nil
	}

	headers := headerNames(rows[0])
	table := domain.NewTable()

	for i, cells := range rows[1:] {
		rowNum := i + 2
		row := make(domain.Row, len(cells))
		for col, text := range cells {
			if col >= len(headers) || headers[col] == "" || text == "" {
				continue
			}
			value, err := CellValue(f, sheet, col+1, rowNum, text)
			if err != nil {
				return domain.Table{}, err
			}
			row[headers[col]] = value
		}
		if len(row) > 0 {
			table.Data = append(table.Data, row)
			table.SourceRows = append(table.SourceRows, rowNum)
		}
	}
	return table, nil
}

// headerNames trims the header row and disambiguates repeated names as
// Name_1, Name_2 and so on
func headerNames(cells []string) []string {
	headers := make([]string, len(cells))
	used := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 0
		}
		headers[i] = name
	}
	return headers
}

// CellValue types the raw text of a cell. Text cells stay strings so IDs such
// as "007" keep their leading zeros; numeric cells become integers or floats.
func CellValue(f *excelize.File, sheet string, col, row int, raw string) (domain.Value, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return domain.Value{}, apperrors.NewParsingError("invalid cell coordinates", err)
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return domain.Value{}, apperrors.NewParsingError("failed to read cell type", err).
			WithContext("cell", cell)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeDate, excelize.CellTypeError:
		return domain.StringValue(raw), nil
	case excelize.CellTypeBool:
		if raw == "1" {
			return domain.StringValue("true"), nil
		}
		return domain.StringValue("false"), nil
	default:
		if v, ok := domain.ParseNumber(raw); ok {
			return v, nil
		}
		return domain.StringValue(raw), nil
	}
}
