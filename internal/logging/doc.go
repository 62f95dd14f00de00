// Package logging provides structured logging for lancast.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the discovery engine and CLI. Logging is silent by
// default so CLI output stays clean; set LANCAST_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (raw advertisements, sweep decisions)
//   - Info: Normal operations (devices added/updated/reaped, engine lifecycle)
//   - Warn: Non-fatal issues (malformed advertisements, failed browses)
//   - Error: Fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Added new device",
//	    zap.String("device_id", "_googlecast._tcp.local.:livingroom:8009"),
//	    zap.String("name", "Living Room"),
//	)
//
// # Configuration
//
// Initialize logging at startup, passing the configured level (empty falls
// back to LANCAST_LOG_LEVEL, then silent):
//
//	if err := logging.Initialize(settings.LogLevel); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
