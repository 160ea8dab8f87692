// Package config provides configuration management for sheetops.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones taking
// precedence:
//
//	1. Default values (Default)
//	2. A YAML file: $SHEETOPS_CONFIG, config.yaml or configs/config.yaml
//	3. Environment variables, after variables from a .env file are exported
//
// # Environment Variables
//
// All environment variables use the SHEETOPS_ prefix followed by the section
// and field name:
//
//	SHEETOPS_SERVER_PORT=8080
//	SHEETOPS_LOGGING_LEVEL=debug
//	SHEETOPS_POLICY_ATTENDANCE_THRESHOLD=20
//	SHEETOPS_POLICY_DEDUCTION_RATE=0.10
//	SHEETOPS_POLICY_HIGH_RISK_AMOUNT=100000
//	SHEETOPS_RATE_LIMIT_RPS=100
//
// # Paths
//
// ResolvePaths turns the configured directories into absolute paths rooted
// at Paths.BaseDir (the working directory unless configured).
package config
