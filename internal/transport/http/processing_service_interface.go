package http

import (
	"context"

	"sheetops/internal/services"
	"sheetops/pkg/contracts/domain"
)

// ProcessingServiceInterface defines the processing operations the handlers call
type ProcessingServiceInterface interface {
	ProcessPayroll(ctx context.Context, employee, attendance, salary domain.Table) (domain.PayrollResult, error)
	AnalyzeRisk(ctx context.Context, transactions, master domain.Table) (domain.RiskReport, error)
	CheckCompliance(ctx context.Context, userAccess, matrix, exceptions domain.Table) (domain.ComplianceReport, error)
	Run(ctx context.Context, op services.Operation, tables map[string]domain.Table) (services.Result, error)
}
