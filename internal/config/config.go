package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Policy    PolicyConfig    `yaml:"policy" envconfig:"POLICY"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration. Relative directories
// are resolved against BaseDir, which defaults to the working directory.
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	InputDir   string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// PolicyConfig contains the payroll and risk thresholds
type PolicyConfig struct {
	AttendanceThreshold float64 `yaml:"attendance_threshold" envconfig:"ATTENDANCE_THRESHOLD"`
	DeductionRate       float64 `yaml:"deduction_rate" envconfig:"DEDUCTION_RATE"`
	HighRiskAmount      float64 `yaml:"high_risk_amount" envconfig:"HIGH_RISK_AMOUNT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string `yaml:"environment" envconfig:"ENVIRONMENT"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	TracesEnabled  bool   `yaml:"traces_enabled" envconfig:"TRACES_ENABLED"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
}

// Load loads configuration from defaults, the config file and the environment.
// Later sources take precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Load from environment variables last so they override the file
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports the variables of a .env file without overriding the
// process environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadFromFile overlays the YAML file onto cfg. Keys missing from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}

	if c.Logging.Output != "stdout" && c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if c.Policy.AttendanceThreshold < 0 {
		return fmt.Errorf("attendance threshold must not be negative")
	}

	if c.Policy.DeductionRate < 0 || c.Policy.DeductionRate > 1 {
		return fmt.Errorf("deduction rate must be within [0, 1]: %v", c.Policy.DeductionRate)
	}

	if c.Policy.HighRiskAmount < 0 {
		return fmt.Errorf("high risk amount must not be negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive rps and burst")
	}

	switch c.Telemetry.TraceExporter {
	case TraceExporterNone, TraceExporterStdout:
	default:
		return fmt.Errorf("invalid trace exporter: %q", c.Telemetry.TraceExporter)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  32 << 20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputDir:   DefaultInputDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Policy: PolicyConfig{
			AttendanceThreshold: 20,
			DeductionRate:       0.10,
			HighRiskAmount:      100000,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     100,
			Burst:   50,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			MetricsEnabled: true,
			TraceExporter:  TraceExporterNone,
		},
	}
}
