// Package logger provides a process-wide structured logger for the API server.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Initialize sets up the process-wide logger. JSON output by default,
// human-readable console output when debug is enabled. Safe to call more
// than once; only the first call takes effect.
func Initialize(debug bool) {
	once.Do(func() {
		var cfg zap.Config
		if debug {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}

		zl, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			// Fall back to a no-op logger rather than failing process startup
			zl = zap.NewNop()
		}
		log = zl.Sugar()
	})
}

// ensure returns the configured logger, initializing with defaults if
// Initialize was never called (keeps early init-order call sites safe).
func ensure() *zap.SugaredLogger {
	if log == nil {
		Initialize(false)
	}
	return log
}

// Debug logs a message at debug level
func Debug(args ...any) { ensure().Debug(args...) }

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) { ensure().Debugf(format, args...) }

// Info logs a message at info level
func Info(args ...any) { ensure().Info(args...) }

// Infof logs a formatted message at info level
func Infof(format string, args ...any) { ensure().Infof(format, args...) }

// Warn logs a message at warn level
func Warn(args ...any) { ensure().Warn(args...) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...any) { ensure().Warnf(format, args...) }

// Error logs a message at error level
func Error(args ...any) { ensure().Error(args...) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) { ensure().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits the process
func Fatalf(format string, args ...any) { ensure().Fatalf(format, args...) }

// Sync flushes any buffered log entries; called on shutdown
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
