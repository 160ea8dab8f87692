package dataprocessing

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"sheetops/pkg/contracts/domain"
)

// groupedNumber matches a number whose integer part uses comma thousands grouping
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ErrFieldMissing is returned when a required field is absent from a row
var ErrFieldMissing = errors.New("field is missing")

// ErrNotNumeric is returned when a field cannot be read as a finite number
var ErrNotNumeric = errors.New("value is not numeric")

// FieldState is the presence state of a field in a row
type FieldState uint8

const (
	FieldAbsent FieldState = iota
	FieldEmpty
	FieldPresent
)

// String returns the state name
func (s FieldState) String() string {
	switch s {
	case FieldEmpty:
		return "empty"
	case FieldPresent:
		return "present"
	default:
		return "absent"
	}
}

// TryGet returns the value of field and whether the source supplied it
func TryGet(row domain.Row, field string) (domain.Value, bool) {
	v, ok := row[field]
	if !ok || !v.IsValid() {
		return domain.Value{}, false
	}
	return v, true
}

// StateOf classifies a field as absent, present-but-empty or present
func StateOf(row domain.Row, field string) FieldState {
	v, ok := TryGet(row, field)
	switch {
	case !ok:
		return FieldAbsent
	case v.IsEmpty():
		return FieldEmpty
	default:
		return FieldPresent
	}
}

// Text returns the textual form of field, or "" when it is absent
func Text(row domain.Row, field string) string {
	v, _ := TryGet(row, field)
	return v.String()
}

// Float reads a value as a finite float64. Strings are trimmed and may group
// the integer part with commas ("1,500,000"); any other comma fails the value.
func Float(v domain.Value) (float64, error) {
	switch v.Kind() {
	case domain.KindInt:
		return float64(v.Interface().(int64)), nil
	case domain.KindFloat:
		return v.Interface().(float64), nil
	case domain.KindString:
		text, ok := numericText(v.String())
		if !ok {
			return 0, ErrNotNumeric
		}
		n, ok := domain.ParseNumber(text)
		if !ok {
			return 0, ErrNotNumeric
		}
		return Float(n)
	default:
		return 0, ErrFieldMissing
	}
}

// Decimal reads a value as an exact decimal, with the same rules as Float
func Decimal(v domain.Value) (decimal.Decimal, error) {
	switch v.Kind() {
	case domain.KindInt:
		return decimal.NewFromInt(v.Interface().(int64)), nil
	case domain.KindFloat:
		f := v.Interface().(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, ErrNotNumeric
		}
		return decimal.NewFromFloat(f), nil
	case domain.KindString:
		text, ok := numericText(v.String())
		if !ok {
			return decimal.Zero, ErrNotNumeric
		}
		if _, ok := domain.ParseNumber(text); !ok {
			return decimal.Zero, ErrNotNumeric
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return decimal.Zero, ErrNotNumeric
		}
		return d, nil
	default:
		return decimal.Zero, ErrFieldMissing
	}
}

// FloatField reads field from row as a float64
func FloatField(row domain.Row, field string) (float64, error) {
	v, ok := TryGet(row, field)
	if !ok {
		return 0, ErrFieldMissing
	}
	return Float(v)
}

// DecimalField reads field from row as a decimal
func DecimalField(row domain.Row, field string) (decimal.Decimal, error) {
	v, ok := TryGet(row, field)
	if !ok {
		return decimal.Zero, ErrFieldMissing
	}
	return Decimal(v)
}

// numericText trims s and removes thousands separators. It reports false when
// commas appear anywhere other than between groups of three integer digits.
func numericText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ",") {
		return s, true
	}
	if !groupedNumber.MatchString(s) {
		return "", false
	}
	return strings.ReplaceAll(s, ",", ""), true
}
