package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the scalar type carried by a Value
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindString
	KindInt
	KindFloat
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Value is a single cell value: a string, an integer or a floating-point number.
// The zero Value is invalid and is never stored in a Row.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flt  float64
}

// StringValue wraps s as a string cell
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue wraps i as an integer cell
func IntValue(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// FloatValue wraps f as a floating-point cell
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// Kind returns the scalar type of the value
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsValid reports whether v holds a value
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// IsEmpty reports whether v is the empty string
func (v Value) IsEmpty() bool {
	return v.kind == KindString && v.str == ""
}

// String returns the textual form used for join keys and text exports.
// Integers print without decimals and floats use the shortest exact form.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	default:
		return ""
	}
}

// Interface returns the underlying Go value (string, int64 or float64), or nil
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and content
func (v Value) Equal(o Value) bool {
	return v == o
}

// MarshalJSON encodes strings as JSON strings and numbers as JSON numbers
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return strconv.AppendInt(nil, v.num, 10), nil
	case KindFloat:
		return json.Marshal(v.flt)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Null leaves the value invalid.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = StringValue(t)
	case bool:
		*v = StringValue(strconv.FormatBool(t))
	case json.Number:
		parsed, ok := ParseNumber(t.String())
		if !ok {
			return fmt.Errorf("invalid number %q", t.String())
		}
		*v = parsed
	default:
		return fmt.Errorf("unsupported cell value %s: only strings and numbers are allowed", string(data))
	}
	return nil
}

// ParseNumber converts decimal text into an integer Value when it is integral
// and fits in int64, or a float Value otherwise. NaN and infinities are rejected.
func ParseNumber(s string) (Value, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, false
	}
	return FloatValue(f), true
}

// Row is one record of a table. A field is present only if the source supplied it;
// an empty string is present-but-empty.
type Row map[string]Value

// UnmarshalJSON decodes a JSON object, dropping null members so they read as absent
func (r *Row) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	row := make(Row, len(members))
	for field, raw := range members {
		var v Value
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		if v.IsValid() {
			row[field] = v
		}
	}
	*r = row
	return nil
}

// Table is an ordered sequence of rows from one data source
type Table struct {
	Data []Row `json:"data" validate:"required"`

	// SourceRows holds the 1-based sheet row of each entry in Data when the
	// table was read from a workbook. Nil for tables built in memory.
	SourceRows []int `json:"-"`
}

// NewTable builds a table from rows
func NewTable(rows ...Row) Table {
	if rows == nil {
		rows = []Row{}
	}
	return Table{Data: rows}
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.Data)
}

// SourceRow returns the sheet row of Data[pos], or 0 when it is not known
func (t Table) SourceRow(pos int) int {
	if len(t.SourceRows) != len(t.Data) || pos < 0 || pos >= len(t.SourceRows) {
		return 0
	}
	return t.SourceRows[pos]
}

// ValidationIssue records a row excluded from an operation because one of its
// fields could not be coerced to the required type. Row is the 0-based index
// into Table.Data; SourceRow is the 1-based sheet row when the table came from
// a workbook.
type ValidationIssue struct {
	Table     string `json:"table"`
	Row       int    `json:"row"`
	SourceRow int    `json:"source_row,omitempty"`
	Field     string `json:"field"`
	Reason    string `json:"reason"`
}

// Error implements the error interface
func (i ValidationIssue) Error() string {
	if i.SourceRow > 0 {
		return fmt.Sprintf("%s row %d (sheet row %d): field %s: %s", i.Table, i.Row, i.SourceRow, i.Field, i.Reason)
	}
	return fmt.Sprintf("%s row %d: field %s: %s", i.Table, i.Row, i.Field, i.Reason)
}
