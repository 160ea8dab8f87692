package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"sheetops/internal/config"
	apperrors "sheetops/internal/errors"
	"sheetops/internal/infrastructure"
	"sheetops/pkg/contracts/domain"
)

// Report file names, without extension
const (
	ReportPayroll           = "Final_Payroll_Report"
	ReportCleanTransactions = "Cleaned_Transactions"
	ReportRiskSummary       = "Risk_Summary_Report"
	ReportViolations        = "Violation_Report"
	ReportComplianceSummary = "Compliance_Summary"
	ReportValidationIssues  = "Validation_Issues"
)

// ValidationIssueColumns is the column layout of the validation issues report.
// Row is the 0-based data row and Source_Row the sheet row, blank when unknown.
var ValidationIssueColumns = []string{"Table", "Row", "Source_Row", "Field", "Reason"}

// tableWriter writes one report file and returns its path
type tableWriter interface {
	WriteTable(name string, columns []string, rows []domain.Row) (string, error)
}

// ReportWriter writes operation results in a single format
type ReportWriter struct {
	writer  tableWriter
	format  Format
	logger  *slog.Logger
	metrics *infrastructure.ProcessingMetrics
}

// NewReportWriter creates a report writer. metrics may be nil.
func NewReportWriter(paths *config.Paths, format Format, logger *slog.Logger, metrics *infrastructure.ProcessingMetrics) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))

	var w tableWriter
	if format == FormatCSV {
		w = NewCSVWriter(paths, logger)
	} else {
		format = FormatXLSX
		w = NewXLSXWriter(paths, logger)
	}

	return &ReportWriter{
		writer:  w,
		format:  format,
		logger:  logger,
		metrics: metrics,
	}
}

// Format returns the output format
func (rw *ReportWriter) Format() Format {
	return rw.format
}

type report struct {
	name    string
	columns []string
	rows    []domain.Row
}

// WritePayroll writes the merged employee records, plus rejected rows if any
func (rw *ReportWriter) WritePayroll(ctx context.Context, result domain.PayrollResult) ([]string, error) {
	rows := make([]domain.Row, 0, len(result.Records))
	for _, rec := range result.Records {
		rows = append(rows, rec.Row())
	}

	reports := []report{{ReportPayroll, domain.PayrollColumns, rows}}
	return rw.write(ctx, "payroll", withIssues(reports, result.Issues))
}

// WriteRisk writes the cleaned transactions and the per-tier summary
func (rw *ReportWriter) WriteRisk(ctx context.Context, result domain.RiskReport) ([]string, error) {
	clean := make([]domain.Row, 0, len(result.CleanData))
	for _, tx := range result.CleanData {
		clean = append(clean, tx.Row())
	}
	summary := make([]domain.Row, 0, len(result.RiskSummary))
	for _, s := range result.RiskSummary {
		summary = append(summary, s.Row())
	}

	reports := []report{
		{ReportCleanTransactions, domain.CleanTransactionColumns, clean},
		{ReportRiskSummary, domain.RiskSummaryColumns, summary},
	}
	return rw.write(ctx, "risk", withIssues(reports, result.Issues))
}

// WriteCompliance writes the violations and the status summary
func (rw *ReportWriter) WriteCompliance(ctx context.Context, result domain.ComplianceReport) ([]string, error) {
	violations := make([]domain.Row, 0, len(result.Violations))
	for _, v := range result.Violations {
		violations = append(violations, v.Row())
	}
	summary := make([]domain.Row, 0, len(result.Summary))
	for _, s := range result.Summary {
		summary = append(summary, s.Row())
	}

	return rw.write(ctx, "compliance", []report{
		{ReportViolations, domain.ViolationColumns, violations},
		{ReportComplianceSummary, domain.ComplianceSummaryColumns, summary},
	})
}

func withIssues(reports []report, issues []domain.ValidationIssue) []report {
	if len(issues) == 0 {
		return reports
	}
	rows := make([]domain.Row, 0, len(issues))
	for _, is := range issues {
		r := domain.Row{
			"Table":  domain.StringValue(is.Table),
			"Row":    domain.IntValue(int64(is.Row)),
			"Field":  domain.StringValue(is.Field),
			"Reason": domain.StringValue(is.Reason),
		}
		if is.SourceRow > 0 {
			r["Source_Row"] = domain.IntValue(int64(is.SourceRow))
		}
		rows = append(rows, r)
	}
	return append(reports, report{ReportValidationIssues, ValidationIssueColumns, rows})
}

func (rw *ReportWriter) write(ctx context.Context, operation string, reports []report) ([]string, error) {
	runID := uuid.New().String()
	files := make([]string, 0, len(reports))

	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		path, err := rw.writer.WriteTable(rep.name, rep.columns, rep.rows)
		if err != nil {
			return files, apperrors.NewStorageError(fmt.Sprintf("failed to write %s", rep.name), err).
				WithContext("run_id", runID).
				WithContext("format", string(rw.format))
		}

		rw.metrics.RecordReport(ctx, rep.name, string(rw.format))
		rw.logger.InfoContext(ctx, "report written",
			slog.String("run_id", runID),
			slog.String("operation", operation),
			slog.String("report", rep.name),
			slog.String("path", path),
			slog.Int("rows", len(rep.rows)),
		)
		files = append(files, path)
	}

	return files, nil
}
