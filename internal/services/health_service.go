package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"sheetops/internal/config"
	"sheetops/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual dependency health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service. paths may be nil when no
// directories are in use.
func NewHealthService(paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.Duration("uptime", time.Since(hs.startTime)))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports whether the report directory is usable
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]ServiceHealth{
			"reports": hs.checkReportsDir(),
		},
	}

	for _, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	result := map[string]interface{}{
		"version":             info.Version,
		"api_version":         info.APIVersion,
		"data_format_version": info.DataFormat,
		"go_version":          runtime.Version(),
		"os":                  runtime.GOOS,
		"arch":                runtime.GOARCH,
		"uptime":              time.Since(hs.startTime).Seconds(),
		"start_time":          hs.startTime.Format(time.RFC3339),
	}
	if info.BuildTime != "unknown" {
		result["build_time"] = info.BuildTime
	}
	if info.GitCommit != "unknown" {
		result["git_commit"] = info.GitCommit
	}
	return result
}

func (hs *HealthService) checkReportsDir() ServiceHealth {
	if hs.paths == nil {
		return ServiceHealth{Status: "ready", Message: "no report directory configured"}
	}

	info, err := os.Stat(hs.paths.ReportsDir)
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("reports directory unavailable: %v", err),
		}
	}
	if !info.IsDir() {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("reports path is not a directory: %s", hs.paths.ReportsDir),
		}
	}
	return ServiceHealth{Status: "ready", Message: "reports directory is accessible"}
}
