package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableUnmarshalJSON(t *testing.T) {
	payload := `{"data": [
		{"Transaction_ID": "T001", "Amount": 5000, "Customer_ID": "C100"},
		{"Transaction_ID": "T003", "Amount": 200.5, "Customer_ID": null},
		{"Transaction_ID": 17, "Amount": "1,000", "Flag": true, "Customer_ID": ""}
	]}`

	var table Table
	require.NoError(t, json.Unmarshal([]byte(payload), &table))
	require.Equal(t, 3, table.Len())

	assert.Equal(t, Row{
		"Transaction_ID": StringValue("T001"),
		"Amount":         IntValue(5000),
		"Customer_ID":    StringValue("C100"),
	}, table.Data[0])

	_, hasCustomer := table.Data[1]["Customer_ID"]
	assert.False(t, hasCustomer, "null reads as absent")
	assert.Equal(t, FloatValue(200.5), table.Data[1]["Amount"])

	assert.Equal(t, IntValue(17), table.Data[2]["Transaction_ID"])
	assert.Equal(t, StringValue("1,000"), table.Data[2]["Amount"])
	assert.Equal(t, StringValue("true"), table.Data[2]["Flag"])
	assert.True(t, table.Data[2]["Customer_ID"].IsEmpty())
}

func TestRowUnmarshalJSONRejectsNested(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "object", payload: `{"Amount": {"value": 1}}`},
		{name: "array", payload: `{"Amount": [1, 2]}`},
		{name: "not an object", payload: `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row Row
			assert.Error(t, json.Unmarshal([]byte(tt.payload), &row))
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	row := Row{
		"Employee_ID": StringValue("E1"),
		"Days":        IntValue(18),
		"Rate":        FloatValue(0.9),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Employee_ID": "E1", "Days": 18, "Rate": 0.9}`, string(data))

	data, err = json.Marshal(Value{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
		kind  ValueKind
	}{
		{value: StringValue("C100"), want: "C100", kind: KindString},
		{value: IntValue(42), want: "42", kind: KindInt},
		{value: FloatValue(1.5), want: "1.5", kind: KindFloat},
		{value: FloatValue(1e21), want: "1000000000000000000000", kind: KindFloat},
		{value: Value{}, want: "", kind: KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"_"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
			assert.Equal(t, tt.kind, tt.value.Kind())
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  Value
		ok    bool
	}{
		{input: "42", want: IntValue(42), ok: true},
		{input: "-7", want: IntValue(-7), ok: true},
		{input: "2.50", want: FloatValue(2.5), ok: true},
		{input: "1e3", want: FloatValue(1000), ok: true},
		{input: "99999999999999999999", want: FloatValue(1e20), ok: true},
		{input: "NaN"},
		{input: "+Inf"},
		{input: "abc"},
		{input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordRows(t *testing.T) {
	basic, gross := 1000.0, 1080.5
	rec := EmployeeRecord{EmployeeID: "E1", BasicSalary: &basic, FinalSalary: &gross}

	row := rec.Row()
	assert.Equal(t, StringValue("E1"), row[FieldEmployeeID])
	assert.Equal(t, IntValue(1000), row[FieldBasicSalary])
	assert.Equal(t, FloatValue(1080.5), row[FieldFinalSalary])
	_, hasName := row[FieldName]
	assert.False(t, hasName)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Employee_ID": "E1", "Basic_Salary": 1000, "Final_Salary": 1080.5}`, string(data))

	tx := CleanTransaction{TransactionID: IntValue(5), CustomerID: StringValue(MissingCustomer), Amount: 200, RiskLevel: RiskMedium}
	data, err = json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Transaction_ID": 5, "Customer_ID": "MISSING", "Amount": 200, "Risk_Level": "Medium Risk"}`, string(data))
}

func TestTableSourceRow(t *testing.T) {
	table := NewTable(Row{"A": IntValue(1)}, Row{"A": IntValue(2)})
	assert.Equal(t, 0, table.SourceRow(1), "unknown for in-memory tables")

	table.SourceRows = []int{2, 5}
	assert.Equal(t, 5, table.SourceRow(1))
	assert.Equal(t, 0, table.SourceRow(2))
	assert.Equal(t, 0, table.SourceRow(-1))

	table.SourceRows = []int{2}
	assert.Equal(t, 0, table.SourceRow(0), "ignored when out of step with Data")
}

func TestValidationIssueError(t *testing.T) {
	issue := ValidationIssue{Table: "salary", Row: 1, Field: "Allowance", Reason: "value is not numeric"}
	assert.Equal(t, "salary row 1: field Allowance: value is not numeric", issue.Error())

	issue.SourceRow = 3
	assert.Equal(t, "salary row 1 (sheet row 3): field Allowance: value is not numeric", issue.Error())

	data, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.JSONEq(t, `{"table":"salary","row":1,"source_row":3,"field":"Allowance","reason":"value is not numeric"}`, string(data))
}
