package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar controls logging verbosity when the config file does not.
// Valid values: "debug", "info", "warn", "error". Unset means silent.
const LogLevelEnvVar = "LANCAST_LOG_LEVEL"

var logger = zap.NewNop()

// Initialize sets up the global logger at the given level. An empty level
// falls back to LANCAST_LOG_LEVEL; if that is also unset the logger stays
// silent so CLI output is never polluted by default.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		// An explicitly requested but unrecognized level still enables
		// logging rather than silently discarding it.
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

// GetLogger returns the global logger. Safe to call before Initialize; the
// uninitialized logger discards everything.
func GetLogger() *zap.Logger {
	return logger
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) { logger.Debug(msg, fields...) }

// Info logs at info level.
func Info(msg string, fields ...zap.Field) { logger.Info(msg, fields...) }

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) { logger.Warn(msg, fields...) }

// Error logs at error level.
func Error(msg string, fields ...zap.Field) { logger.Error(msg, fields...) }

// Fatal logs at fatal level and exits.
func Fatal(msg string, fields ...zap.Field) { logger.Fatal(msg, fields...) }

// Sync flushes buffered log entries; call on process exit.
func Sync() {
	_ = logger.Sync()
}
