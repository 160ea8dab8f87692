package services

import (
	"fmt"
	"strings"

	"sheetops/internal/dataprocessing"
	"sheetops/pkg/contracts/domain"
)

// Operation names one of the processing operations
type Operation string

const (
	OpPayroll    Operation = "payroll"
	OpRisk       Operation = "risk"
	OpCompliance Operation = "compliance"
)

// Operations lists every supported operation
var Operations = []Operation{OpPayroll, OpRisk, OpCompliance}

// ParseOperation accepts an operation name in any case
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q: want payroll, risk or compliance", s)
}

// Tables returns the input table names the operation needs, in argument order
func (op Operation) Tables() []string {
	switch op {
	case OpPayroll:
		return []string{dataprocessing.TableEmployee, dataprocessing.TableAttendance, dataprocessing.TableSalary}
	case OpRisk:
		return []string{dataprocessing.TableTransactions, dataprocessing.TableMaster}
	case OpCompliance:
		return []string{dataprocessing.TableUserAccess, dataprocessing.TableAccessMatrix, dataprocessing.TableExceptions}
	default:
		return nil
	}
}

// Result holds the output of exactly one operation
type Result struct {
	Operation  Operation
	Payroll    *domain.PayrollResult
	Risk       *domain.RiskReport
	Compliance *domain.ComplianceReport
}

// Body returns the value the HTTP binding serializes. Payroll keeps the plain
// array of employee records.
func (r Result) Body() interface{} {
	switch {
	case r.Payroll != nil:
		return r.Payroll.Records
	case r.Risk != nil:
		return r.Risk
	case r.Compliance != nil:
		return r.Compliance
	default:
		return nil
	}
}

// Issues returns the rows excluded by coercion failures
func (r Result) Issues() []domain.ValidationIssue {
	switch {
	case r.Payroll != nil:
		return r.Payroll.Issues
	case r.Risk != nil:
		return r.Risk.Issues
	default:
		return nil
	}
}

// Emitted returns the number of output records
func (r Result) Emitted() int {
	switch {
	case r.Payroll != nil:
		return len(r.Payroll.Records)
	case r.Risk != nil:
		return len(r.Risk.CleanData)
	case r.Compliance != nil:
		return len(r.Compliance.Violations)
	default:
		return 0
	}
}
