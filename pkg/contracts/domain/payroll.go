package domain

import "math"

// Payroll column headers, in report order
const (
	FieldEmployeeID  = "Employee_ID"
	FieldName        = "Name"
	FieldBasicSalary = "Basic_Salary"
	FieldAllowance   = "Allowance"
	FieldDaysPresent = "Days_Present"
	FieldGrossSalary = "Gross_Salary"
	FieldFinalSalary = "Final_Salary"
)

// PayrollColumns is the column layout of the payroll report
var PayrollColumns = []string{
	FieldEmployeeID,
	FieldName,
	FieldBasicSalary,
	FieldAllowance,
	FieldDaysPresent,
	FieldGrossSalary,
	FieldFinalSalary,
}

// EmployeeRecord is one merged payroll line. Fields other than the ID are nil
// when no matching salary or attendance row supplied them.
type EmployeeRecord struct {
	EmployeeID  string   `json:"Employee_ID"`
	Name        *Value   `json:"Name,omitempty"`
	BasicSalary *float64 `json:"Basic_Salary,omitempty"`
	Allowance   *float64 `json:"Allowance,omitempty"`
	DaysPresent *float64 `json:"Days_Present,omitempty"`
	GrossSalary *float64 `json:"Gross_Salary,omitempty"`
	FinalSalary *float64 `json:"Final_Salary,omitempty"`
}

// Row flattens the record into a table row, leaving unset fields absent
func (e EmployeeRecord) Row() Row {
	row := Row{FieldEmployeeID: StringValue(e.EmployeeID)}
	if e.Name != nil {
		row[FieldName] = *e.Name
	}
	setFloat(row, FieldBasicSalary, e.BasicSalary)
	setFloat(row, FieldAllowance, e.Allowance)
	setFloat(row, FieldDaysPresent, e.DaysPresent)
	setFloat(row, FieldGrossSalary, e.GrossSalary)
	setFloat(row, FieldFinalSalary, e.FinalSalary)
	return row
}

// PayrollResult is the output of a payroll merge
type PayrollResult struct {
	Records []EmployeeRecord  `json:"records"`
	Issues  []ValidationIssue `json:"issues,omitempty"`
}

// setFloat stores whole numbers as integers so reports show 1080 rather than 1080.0
func setFloat(row Row, field string, f *float64) {
	if f == nil {
		return
	}
	if *f == math.Trunc(*f) && math.Abs(*f) < 1<<53 {
		row[field] = IntValue(int64(*f))
		return
	}
	row[field] = FloatValue(*f)
}
