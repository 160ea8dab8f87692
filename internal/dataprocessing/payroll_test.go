package dataprocessing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetops/pkg/contracts/domain"
)

func TestMergePayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("deduction below attendance threshold", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1", "Name", "A")),
			table(row("Employee_ID", "E1", "Days_Present", 18)),
			table(row("Employee_ID", "E1", "Basic_Salary", 1000, "Allowance", 200)),
		)

		require.Len(t, result.Records, 1)
		rec := result.Records[0]
		assert.Equal(t, "E1", rec.EmployeeID)
		require.NotNil(t, rec.Name)
		assert.Equal(t, "A", rec.Name.String())
		assert.Equal(t, f64(1200), rec.GrossSalary)
		assert.Equal(t, f64(1080), rec.FinalSalary)
		assert.Empty(t, result.Issues)
	})

	t.Run("sample workbooks", func(t *testing.T) {
		employee := table(
			row("Employee_ID", "E001", "Name", "John Doe", "Department", "IT"),
			row("Employee_ID", "E002", "Name", "Jane Smith", "Department", "HR"),
			row("Employee_ID", "E003", "Name", "Mike Ross", "Department", "Legal"),
			row("Employee_ID", "E004", "Name", "Rachel Zane", "Department", "Legal"),
		)
		salary := table(
			row("Employee_ID", "E001", "Basic_Salary", 50000, "Allowance", 10000),
			row("Employee_ID", "E002", "Basic_Salary", 60000, "Allowance", 12000),
			row("Employee_ID", "E003", "Basic_Salary", 45000, "Allowance", 5000),
			row("Employee_ID", "E004", "Basic_Salary", 70000, "Allowance", 15000),
		)
		attendance := table(
			row("Employee_ID", "E001", "Days_Present", 25),
			row("Employee_ID", "E002", "Days_Present", 18),
			row("Employee_ID", "E003", "Days_Present", 22),
			row("Employee_ID", "E004", "Days_Present", 20),
		)

		result := newTestProcessor().MergePayroll(ctx, employee, attendance, salary)
		require.Len(t, result.Records, 4)

		want := map[string]float64{"E001": 60000, "E002": 64800, "E003": 50000, "E004": 85000}
		for _, rec := range result.Records {
			require.NotNil(t, rec.FinalSalary, rec.EmployeeID)
			assert.Equal(t, want[rec.EmployeeID], *rec.FinalSalary, rec.EmployeeID)
		}
	})

	t.Run("sorted by employee id", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(
				row("Employee_ID", "E10"),
				row("Employee_ID", "E2"),
				row("Employee_ID", "A7"),
			),
			table(), table(),
		)

		ids := make([]string, 0, len(result.Records))
		for _, rec := range result.Records {
			ids = append(ids, rec.EmployeeID)
		}
		assert.Equal(t, []string{"A7", "E10", "E2"}, ids)
	})

	t.Run("duplicate employees keep first name", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(
				row("Employee_ID", "E1", "Name", "First"),
				row("Employee_ID", "E1", "Name", "Second"),
				row("Name", "No ID"),
				row("Employee_ID", "", "Name", "Empty ID"),
			),
			table(row("Employee_ID", "E1", "Days_Present", 22), row("Employee_ID", "E1", "Days_Present", 10)),
			table(row("Employee_ID", "E1", "Basic_Salary", 100, "Allowance", 0)),
		)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "First", result.Records[0].Name.String())
		assert.Equal(t, f64(10), result.Records[0].DaysPresent)
		assert.Equal(t, f64(90), result.Records[0].FinalSalary)
	})

	t.Run("orphan rows create no records", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1")),
			table(row("Employee_ID", "E9", "Days_Present", 30)),
			table(row("Employee_ID", "E9", "Basic_Salary", 1, "Allowance", 1)),
		)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "E1", result.Records[0].EmployeeID)
	})

	t.Run("missing salary leaves pay unset", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1", "Name", "A")),
			table(row("Employee_ID", "E1", "Days_Present", 25)),
			table(),
		)

		require.Len(t, result.Records, 1)
		rec := result.Records[0]
		assert.Equal(t, f64(25), rec.DaysPresent)
		assert.Nil(t, rec.BasicSalary)
		assert.Nil(t, rec.GrossSalary)
		assert.Nil(t, rec.FinalSalary)

		exported := rec.Row()
		assert.Equal(t, FieldAbsent, StateOf(exported, domain.FieldGrossSalary))
		assert.Equal(t, FieldPresent, StateOf(exported, domain.FieldDaysPresent))
	})

	t.Run("missing attendance leaves pay unset", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1")),
			table(),
			table(row("Employee_ID", "E1", "Basic_Salary", 500, "Allowance", 50)),
		)

		rec := result.Records[0]
		assert.Equal(t, f64(500), rec.BasicSalary)
		assert.Equal(t, f64(50), rec.Allowance)
		assert.Nil(t, rec.DaysPresent)
		assert.Nil(t, rec.FinalSalary)
	})

	t.Run("later salary row overwrites", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1")),
			table(row("Employee_ID", "E1", "Days_Present", 20)),
			table(
				row("Employee_ID", "E1", "Basic_Salary", 100, "Allowance", 10),
				row("Employee_ID", "E1", "Basic_Salary", 200, "Allowance", 20),
			),
		)

		assert.Equal(t, f64(220), result.Records[0].FinalSalary)
	})

	t.Run("numeric ids join with text ids", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", 101)),
			table(row("Employee_ID", "101", "Days_Present", "19")),
			table(row("Employee_ID", 101, "Basic_Salary", "1,000", "Allowance", 0)),
		)

		rec := result.Records[0]
		assert.Equal(t, "101", rec.EmployeeID)
		assert.Equal(t, f64(900), rec.FinalSalary)
	})

	t.Run("non-numeric values are reported", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1"), row("Employee_ID", "E2")),
			table(
				row("Employee_ID", "E1", "Days_Present", "many"),
				row("Employee_ID", "E2", "Days_Present", 22),
			),
			table(
				row("Employee_ID", "E1", "Basic_Salary", 100, "Allowance", 10),
				row("Employee_ID", "E2", "Basic_Salary", "lots", "Allowance", 10),
				row("Employee_ID", "E2", "Basic_Salary", 100),
			),
		)

		require.Len(t, result.Records, 2)
		assert.Nil(t, result.Records[0].DaysPresent)
		assert.Nil(t, result.Records[0].FinalSalary)
		assert.Nil(t, result.Records[1].BasicSalary)
		assert.Nil(t, result.Records[1].FinalSalary)

		assert.Equal(t, []domain.ValidationIssue{
			{Table: TableSalary, Row: 1, Field: domain.FieldBasicSalary, Reason: ErrNotNumeric.Error()},
			{Table: TableSalary, Row: 2, Field: domain.FieldAllowance, Reason: ErrFieldMissing.Error()},
			{Table: TableAttendance, Row: 0, Field: domain.FieldDaysPresent, Reason: ErrNotNumeric.Error()},
		}, result.Issues)
	})

	t.Run("issues carry the sheet row of workbook tables", func(t *testing.T) {
		salary := table(
			row("Employee_ID", "E1", "Basic_Salary", 100, "Allowance", 10),
			row("Employee_ID", "E2", "Basic_Salary", "1,5", "Allowance", 10),
		)
		salary.SourceRows = []int{2, 7}

		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1"), row("Employee_ID", "E2")),
			table(),
			salary,
		)

		assert.Equal(t, []domain.ValidationIssue{
			{Table: TableSalary, Row: 1, SourceRow: 7, Field: domain.FieldBasicSalary, Reason: ErrNotNumeric.Error()},
		}, result.Issues)
	})

	t.Run("exact decimal arithmetic", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx,
			table(row("Employee_ID", "E1")),
			table(row("Employee_ID", "E1", "Days_Present", 5)),
			table(row("Employee_ID", "E1", "Basic_Salary", 0.1, "Allowance", 0.2)),
		)

		assert.Equal(t, f64(0.3), result.Records[0].GrossSalary)
		assert.Equal(t, f64(0.27), result.Records[0].FinalSalary)
	})

	t.Run("custom policy", func(t *testing.T) {
		policy := Policy{
			AttendanceThreshold: 26,
			DeductionRate:       decimal.RequireFromString("0.25"),
			HighRiskAmount:      100000,
		}
		result := NewProcessor(nil, policy).MergePayroll(ctx,
			table(row("Employee_ID", "E1")),
			table(row("Employee_ID", "E1", "Days_Present", 25)),
			table(row("Employee_ID", "E1", "Basic_Salary", 1000, "Allowance", 0)),
		)

		assert.Equal(t, f64(750), result.Records[0].FinalSalary)
	})

	t.Run("empty inputs", func(t *testing.T) {
		result := newTestProcessor().MergePayroll(ctx, table(), table(), table())
		assert.NotNil(t, result.Records)
		assert.Empty(t, result.Records)
	})
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{name: "default", policy: DefaultPolicy()},
		{name: "negative threshold", policy: Policy{AttendanceThreshold: -1, DeductionRate: decimal.Zero}, wantErr: true},
		{name: "rate above one", policy: Policy{DeductionRate: decimal.NewFromInt(2)}, wantErr: true},
		{name: "negative rate", policy: Policy{DeductionRate: decimal.NewFromInt(-1)}, wantErr: true},
		{name: "negative high risk amount", policy: Policy{DeductionRate: decimal.Zero, HighRiskAmount: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
