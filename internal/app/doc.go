// Package app wires configuration, telemetry, services and HTTP handlers into
// a runnable web service and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config.yaml, .env and SHEETOPS_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Resolve and create the working directories
//	4. Build the processing and health services
//	5. Set up the chi router, middleware and handlers
//	6. Create the HTTP server
//
// # Usage
//
//	a, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return a.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. In-flight
// requests get Server.ShutdownTimeout to finish, then the telemetry providers
// are flushed. The package never calls os.Exit.
package app
