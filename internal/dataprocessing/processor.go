package dataprocessing

import (
	"context"
	"log/slog"

	"sheetops/pkg/contracts/domain"
)

// Source table names used in validation issues and logs
const (
	TableEmployee     = "employee"
	TableAttendance   = "attendance"
	TableSalary       = "salary"
	TableTransactions = "transactions"
	TableMaster       = "master"
	TableUserAccess   = "user_access"
	TableAccessMatrix = "access_matrix"
	TableExceptions   = "exceptions"
)

// Processor runs the payroll, risk and compliance operations. It holds no
// per-call state, so one instance may serve concurrent callers.
type Processor struct {
	logger *slog.Logger
	policy Policy
}

// NewProcessor creates a processor with the given policy
func NewProcessor(logger *slog.Logger, policy Policy) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger.With(slog.String("component", "dataprocessing")),
		policy: policy,
	}
}

// Policy returns the thresholds in use
func (p *Processor) Policy() Policy {
	return p.policy
}

// issueLog collects rows excluded for coercion failures during one call
type issueLog struct {
	ctx    context.Context
	logger *slog.Logger
	issues []domain.ValidationIssue
}

func (p *Processor) newIssueLog(ctx context.Context) *issueLog {
	return &issueLog{ctx: ctx, logger: p.logger}
}

func (l *issueLog) reject(name string, t domain.Table, pos int, field string, err error) {
	issue := domain.ValidationIssue{
		Table:     name,
		Row:       pos,
		SourceRow: t.SourceRow(pos),
		Field:     field,
		Reason:    err.Error(),
	}
	l.logger.WarnContext(l.ctx, "row excluded",
		slog.String("table", name),
		slog.Int("row", pos),
		slog.Int("source_row", issue.SourceRow),
		slog.String("field", field),
		slog.String("reason", issue.Reason))
	l.issues = append(l.issues, issue)
}
