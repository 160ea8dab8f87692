package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"sheetops/internal/config"
	"sheetops/pkg/contracts"
)

// MeterName is the instrumentation scope for sheetops meters and tracers
const MeterName = "sheetops"

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// NewOTelConfig derives the telemetry settings from the application config
func NewOTelConfig(cfg config.TelemetryConfig) *OTelConfig {
	return &OTelConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    cfg.Environment,
		TraceExporter:  cfg.TraceExporter,
		EnableMetrics:  cfg.MetricsEnabled,
		EnableTracing:  cfg.TracesEnabled && cfg.TraceExporter != config.TraceExporterNone,
		SampleRatio:    1.0,
	}
}

// DefaultOTelConfig returns metrics on, tracing off
func DefaultOTelConfig() *OTelConfig {
	return NewOTelConfig(config.Default().Telemetry)
}

// InitializeOTel sets up tracing and metrics. Disabled signals fall back to the
// global no-op providers so Tracer and Meter are never nil.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "initializing opentelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if providers.Tracer == nil {
		providers.Tracer = otel.GetTracerProvider().Tracer(MeterName)
	}
	if providers.Meter == nil {
		providers.Meter = otel.GetMeterProvider().Meter(MeterName)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case config.TraceExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case config.TraceExporterNone:
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

// initializeMetrics registers the prometheus reader on a private registry so
// repeated initialization (tests, restarts) never collides on the default one.
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetMeterProvider(mp)

	providers.Logger.InfoContext(ctx, "metrics initialized", slog.String("exporter", "prometheus"))
	return nil
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "opentelemetry shutdown complete")
	return nil
}

// ProcessingMetrics holds the instruments recorded by the processing service
// and the HTTP layer.
type ProcessingMetrics struct {
	OperationsTotal   metric.Int64Counter
	OperationDuration metric.Float64Histogram
	RowsRead          metric.Int64Counter
	RowsEmitted       metric.Int64Counter
	RowsRejected      metric.Int64Counter
	ReportsWritten    metric.Int64Counter

	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

// CreateProcessingMetrics registers the sheetops instruments on meter
func CreateProcessingMetrics(meter metric.Meter) (*ProcessingMetrics, error) {
	m := &ProcessingMetrics{}
	var err error

	if m.OperationsTotal, err = meter.Int64Counter(
		"sheetops_operations_total",
		metric.WithDescription("Total number of processing operations"),
	); err != nil {
		return nil, err
	}

	if m.OperationDuration, err = meter.Float64Histogram(
		"sheetops_operation_duration_seconds",
		metric.WithDescription("Processing operation duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.RowsRead, err = meter.Int64Counter(
		"sheetops_rows_read_total",
		metric.WithDescription("Input rows received per table"),
	); err != nil {
		return nil, err
	}

	if m.RowsEmitted, err = meter.Int64Counter(
		"sheetops_rows_emitted_total",
		metric.WithDescription("Output records produced"),
	); err != nil {
		return nil, err
	}

	if m.RowsRejected, err = meter.Int64Counter(
		"sheetops_rows_rejected_total",
		metric.WithDescription("Rows excluded because a field failed coercion"),
	); err != nil {
		return nil, err
	}

	if m.ReportsWritten, err = meter.Int64Counter(
		"sheetops_reports_written_total",
		metric.WithDescription("Report files written"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOperation records one completed operation
func (m *ProcessingMetrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, emitted, rejected int, err error) {
	if m == nil {
		return
	}

	op := attribute.String("operation", operation)
	status := attribute.String("status", "success")
	if err != nil {
		status = attribute.String("status", "failure")
	}

	m.OperationsTotal.Add(ctx, 1, metric.WithAttributes(op, status))
	m.OperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op, status))
	m.RowsEmitted.Add(ctx, int64(emitted), metric.WithAttributes(op))
	if rejected > 0 {
		m.RowsRejected.Add(ctx, int64(rejected), metric.WithAttributes(op))
	}
}

// RecordRowsRead records the size of one input table
func (m *ProcessingMetrics) RecordRowsRead(ctx context.Context, operation, table string, rows int) {
	if m == nil {
		return
	}
	m.RowsRead.Add(ctx, int64(rows), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("table", table),
	))
}

// RecordReport counts a written report file
func (m *ProcessingMetrics) RecordReport(ctx context.Context, report, format string) {
	if m == nil {
		return
	}
	m.ReportsWritten.Add(ctx, 1, metric.WithAttributes(
		attribute.String("report", report),
		attribute.String("format", format),
	))
}

// RecordHTTPRequest records a served request
func (m *ProcessingMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the otel trace ID for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// AddSpanEvent adds an event to the current span
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
