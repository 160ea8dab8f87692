package config

// Application constants
const (
	AppName = "sheetops"

	// EnvPrefix namespaces every environment variable, e.g. SHEETOPS_SERVER_PORT
	EnvPrefix = "SHEETOPS"

	// DotEnvFile is loaded into the environment before configuration is read
	DotEnvFile = ".env"

	DefaultInputDir   = "data/input"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "logs/sheetops.log"
)

// Trace exporters
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)
