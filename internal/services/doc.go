// Package services implements the application layer between the transports
// (HTTP handlers, the processor CLI) and the processing core.
//
// ProcessingService validates the configured policy once, then runs payroll,
// risk and compliance operations inside an OpenTelemetry span, recording input
// sizes, output sizes and rejected rows as metrics. Operations are addressed
// either through typed methods or through Run with an Operation name and a map
// of tables, which is what the upload endpoint and the CLI use.
//
// HealthService answers liveness, readiness and version queries.
package services
