package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetops/internal/dataprocessing"
	"sheetops/internal/exporter"
	"sheetops/internal/services"
)

// writeWorkbook saves a single-sheet workbook with a header row and data rows
func writeWorkbook(t *testing.T, path string, header []interface{}, rows ...[]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

// testConfigFile writes a config that keeps logs quiet
func testConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\n"), 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o *options)
	}{
		{
			name: "defaults",
			args: []string{"-op", "payroll"},
			check: func(t *testing.T, o *options) {
				assert.Equal(t, services.OpPayroll, o.op)
				assert.Equal(t, exporter.FormatXLSX, o.format)
				assert.Equal(t, "Employee_Master.xlsx", o.workbooks[dataprocessing.TableEmployee])
			},
		},
		{
			name: "overrides",
			args: []string{"-op", "RISK", "-format", "csv", "-transactions", "tx.xlsx"},
			check: func(t *testing.T, o *options) {
				assert.Equal(t, services.OpRisk, o.op)
				assert.Equal(t, exporter.FormatCSV, o.format)
				assert.Equal(t, "tx.xlsx", o.workbooks[dataprocessing.TableTransactions])
				assert.Equal(t, "Master_Data.xlsx", o.workbooks[dataprocessing.TableMaster])
			},
		},
		{
			name:  "version skips operation",
			args:  []string{"-version"},
			check: func(t *testing.T, o *options) { assert.True(t, o.version) },
		},
		{name: "missing operation", args: nil, wantErr: true},
		{name: "unknown operation", args: []string{"-op", "forecast"}, wantErr: true},
		{name: "unknown format", args: []string{"-op", "risk", "-format", "pdf"}, wantErr: true},
		{name: "stray argument", args: []string{"-op", "risk", "extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestRun_Payroll(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()

	writeWorkbook(t, filepath.Join(in, "Employee_Master.xlsx"),
		[]interface{}{"Employee_ID", "Name"},
		[]interface{}{"E1", "Ann"},
		[]interface{}{"E2", "Bob"},
	)
	writeWorkbook(t, filepath.Join(in, "Salary_Structure.xlsx"),
		[]interface{}{"Employee_ID", "Basic_Salary", "Allowance"},
		[]interface{}{"E1", 1000, 200},
		[]interface{}{"E2", "n/a", 100},
	)
	writeWorkbook(t, filepath.Join(in, "Attendance.xlsx"),
		[]interface{}{"Employee_ID", "Days_Present"},
		[]interface{}{"E1", 18},
		[]interface{}{"E2", 22},
	)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-op", "payroll", "-format", "csv",
		"-in", in, "-out", out,
		"-config", testConfigFile(t),
	}, &stdout)
	require.NoError(t, err)

	payroll := filepath.Join(out, "Final_Payroll_Report.csv")
	issues := filepath.Join(out, "Validation_Issues.csv")
	assert.FileExists(t, payroll)
	assert.FileExists(t, issues)
	assert.Contains(t, stdout.String(), payroll)

	data, err := os.ReadFile(payroll)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "E1,Ann,1000,200,18,1200,1080")

	data, err = os.ReadFile(issues)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "salary,1,3,Basic_Salary,value is not numeric", strings.TrimSpace(lines[1]),
		"issue carries the data row and the sheet row")
}

func TestRun_Compliance(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()

	writeWorkbook(t, filepath.Join(in, "User_Access.xlsx"),
		[]interface{}{"User_ID", "Role", "Access_Type"},
		[]interface{}{"U1", "Clerk", "Read"},
		[]interface{}{"U2", "Intern", "Read"},
		[]interface{}{"U3", "Clerk", "Admin"},
	)
	writeWorkbook(t, filepath.Join(in, "Access_Matrix.xlsx"),
		[]interface{}{"Role", "Access_Type"},
		[]interface{}{"Clerk", "Read"},
	)
	writeWorkbook(t, filepath.Join(in, "Exception_List.xlsx"),
		[]interface{}{"User_ID", "Access_Type"},
		[]interface{}{"U3", "Admin"},
	)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-op", "compliance",
		"-in", in, "-out", out,
		"-config", testConfigFile(t),
	}, &stdout)
	require.NoError(t, err)

	violations, err := dataprocessing.ReadWorkbook(filepath.Join(out, "Violation_Report.xlsx"))
	require.NoError(t, err)
	require.Equal(t, 1, violations.Len())
	assert.Equal(t, "U2", violations.Data[0]["User_ID"].String())
	assert.Equal(t, "Unauthorized Role", violations.Data[0]["Status"].String())

	assert.FileExists(t, filepath.Join(out, "Compliance_Summary.xlsx"))
	assert.NoFileExists(t, filepath.Join(out, "Validation_Issues.xlsx"))
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing workbook", func(t *testing.T) {
		err := run(context.Background(), []string{
			"-op", "risk",
			"-in", t.TempDir(), "-out", t.TempDir(),
			"-config", testConfigFile(t),
		}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workbook")
	})

	t.Run("missing config file", func(t *testing.T) {
		err := run(context.Background(), []string{
			"-op", "risk",
			"-config", filepath.Join(t.TempDir(), "absent.yaml"),
		}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), "sheetops "))
}
