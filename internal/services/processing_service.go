package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sheetops/internal/config"
	"sheetops/internal/dataprocessing"
	apperrors "sheetops/internal/errors"
	"sheetops/internal/infrastructure"
	"sheetops/pkg/contracts/domain"
)

// ProcessingService runs the processing operations with tracing and metrics
type ProcessingService struct {
	processor *dataprocessing.Processor
	tracer    trace.Tracer
	metrics   *infrastructure.ProcessingMetrics
	logger    *slog.Logger
}

// PolicyFromConfig converts configured thresholds into a processing policy
func PolicyFromConfig(cfg config.PolicyConfig) dataprocessing.Policy {
	return dataprocessing.Policy{
		AttendanceThreshold: cfg.AttendanceThreshold,
		DeductionRate:       decimal.NewFromFloat(cfg.DeductionRate),
		HighRiskAmount:      cfg.HighRiskAmount,
	}
}

// NewProcessingService creates the service. tracer and metrics may be nil.
func NewProcessingService(policy dataprocessing.Policy, tracer trace.Tracer, metrics *infrastructure.ProcessingMetrics, logger *slog.Logger) (*ProcessingService, error) {
	if err := policy.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid processing policy", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(infrastructure.MeterName)
	}

	return &ProcessingService{
		processor: dataprocessing.NewProcessor(logger, policy),
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "processing_service")),
	}, nil
}

// Policy returns the thresholds in use
func (s *ProcessingService) Policy() dataprocessing.Policy {
	return s.processor.Policy()
}

// ProcessPayroll merges employee, attendance and salary tables
func (s *ProcessingService) ProcessPayroll(ctx context.Context, employee, attendance, salary domain.Table) (domain.PayrollResult, error) {
	res, err := s.Run(ctx, OpPayroll, map[string]domain.Table{
		dataprocessing.TableEmployee:   employee,
		dataprocessing.TableAttendance: attendance,
		dataprocessing.TableSalary:     salary,
	})
	if err != nil {
		return domain.PayrollResult{}, err
	}
	return *res.Payroll, nil
}

// AnalyzeRisk cleans and classifies transactions
func (s *ProcessingService) AnalyzeRisk(ctx context.Context, transactions, master domain.Table) (domain.RiskReport, error) {
	res, err := s.Run(ctx, OpRisk, map[string]domain.Table{
		dataprocessing.TableTransactions: transactions,
		dataprocessing.TableMaster:       master,
	})
	if err != nil {
		return domain.RiskReport{}, err
	}
	return *res.Risk, nil
}

// CheckCompliance checks user access against the role matrix
func (s *ProcessingService) CheckCompliance(ctx context.Context, userAccess, matrix, exceptions domain.Table) (domain.ComplianceReport, error) {
	res, err := s.Run(ctx, OpCompliance, map[string]domain.Table{
		dataprocessing.TableUserAccess:   userAccess,
		dataprocessing.TableAccessMatrix: matrix,
		dataprocessing.TableExceptions:   exceptions,
	})
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	return *res.Compliance, nil
}

// Run executes op over tables keyed by table name. Every table the operation
// needs must be present. The only errors are a missing table, an unknown
// operation and a done context.
func (s *ProcessingService) Run(ctx context.Context, op Operation, tables map[string]domain.Table) (Result, error) {
	names := op.Tables()
	if names == nil {
		return Result{}, apperrors.NewAppValidationError(fmt.Sprintf("unknown operation %q", op))
	}

	args := make([]domain.Table, len(names))
	for i, name := range names {
		t, ok := tables[name]
		if !ok {
			return Result{}, apperrors.NewAppValidationError(fmt.Sprintf("missing %s table", name)).
				WithContext("operation", string(op))
		}
		args[i] = t
	}

	ctx, span := s.tracer.Start(ctx, "processing."+string(op),
		trace.WithAttributes(attribute.String("operation", string(op))))
	defer span.End()

	if err := ctx.Err(); err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordOperation(ctx, string(op), 0, 0, 0, err)
		return Result{}, err
	}

	for i, name := range names {
		s.metrics.RecordRowsRead(ctx, string(op), name, args[i].Len())
		span.SetAttributes(attribute.Int("rows."+name, args[i].Len()))
	}

	start := time.Now()
	res := Result{Operation: op}
	switch op {
	case OpPayroll:
		out := s.processor.MergePayroll(ctx, args[0], args[1], args[2])
		res.Payroll = &out
	case OpRisk:
		out := s.processor.AnalyzeRisk(ctx, args[0], args[1])
		res.Risk = &out
	case OpCompliance:
		out := s.processor.CheckCompliance(ctx, args[0], args[1], args[2])
		res.Compliance = &out
	}
	duration := time.Since(start)

	rejected := len(res.Issues())
	s.metrics.RecordOperation(ctx, string(op), duration, res.Emitted(), rejected, nil)
	infrastructure.AddSpanEvent(ctx, "processing.completed",
		attribute.Int("rows.emitted", res.Emitted()),
		attribute.Int("rows.rejected", rejected))

	s.logger.InfoContext(ctx, "operation completed",
		slog.String("operation", string(op)),
		slog.Int("emitted", res.Emitted()),
		slog.Int("rejected", rejected),
		slog.Duration("duration", duration),
	)

	return res, nil
}
