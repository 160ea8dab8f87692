package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved application directories
type Paths struct {
	BaseDir    string
	InputDir   string
	ReportsDir string
	LogsDir    string
}

// ResolvePaths turns the configured directories into absolute paths
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir)
		}
		return filepath.Join(base, dir)
	}

	return &Paths{
		BaseDir:    base,
		InputDir:   resolve(cfg.InputDir, DefaultInputDir),
		ReportsDir: resolve(cfg.ReportsDir, DefaultReportsDir),
		LogsDir:    resolve(cfg.LogsDir, DefaultLogsDir),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.InputDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// LogPathResolution logs the resolved directories for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input_dir", p.InputDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}
