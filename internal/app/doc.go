// Package app provides application initialization and lifecycle management.
// It handles the orchestration of all major components including configuration
// loading, service initialization, and graceful shutdown.
//
// The app package follows a dependency injection pattern where all components
// are wired together at startup:
//
//	1. Load configuration from environment and files
//	2. Initialize logging
//	3. Create the ledger store
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//	7. Set up graceful shutdown handlers
//
// The package handles SIGINT and SIGTERM so active requests are completed and
// the log file is flushed before exit.
package app
