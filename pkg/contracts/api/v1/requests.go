// Package api contains the HTTP contract of sheetops.
// Version v1 represents the current stable API version.
package api

import (
	"sheetops/pkg/contracts/domain"
)

// PayrollRequest carries the three tables joined by a payroll run
type PayrollRequest struct {
	Employee   *domain.Table `json:"employee" validate:"required"`
	Attendance *domain.Table `json:"attendance" validate:"required"`
	Salary     *domain.Table `json:"salary" validate:"required"`
}

// RiskRequest carries the transactions to score and the customer master list
type RiskRequest struct {
	Transactions *domain.Table `json:"transactions" validate:"required"`
	Master       *domain.Table `json:"master" validate:"required"`
}

// ComplianceRequest carries the access records, the role matrix and the exception list
type ComplianceRequest struct {
	UserAccess   *domain.Table `json:"user_access" validate:"required"`
	AccessMatrix *domain.Table `json:"access_matrix" validate:"required"`
	Exceptions   *domain.Table `json:"exceptions" validate:"required"`
}

// Upload form part names, one workbook per table
const (
	PartEmployee     = "employee"
	PartAttendance   = "attendance"
	PartSalary       = "salary"
	PartTransactions = "transactions"
	PartMaster       = "master"
	PartUserAccess   = "user_access"
	PartAccessMatrix = "access_matrix"
	PartExceptions   = "exceptions"
)
