// Package logger provides structured logging utilities.
// It wraps the zap logger with a simplified interface that follows
// the 12-Factor App logging principles (logs as event streams).
//
// 12-Factor App compliance:
//   - XI. Logs: Treat logs as event streams
//   - Output to stdout; an optional rotated file copy for hosts without a collector
//   - Structured logging format (JSON) for easy parsing
package logger

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// contextKey is a custom type for context keys.
type contextKey string

// requestIDKey is the context key for the request ID.
const requestIDKey contextKey = "request_id"

// ContextWithRequestID returns a context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context.
//
// Returns:
//   - string: the request ID, or empty string if not found
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Logger is the application logger interface implementation.
type Logger struct {
	zap    *zap.Logger
	sugar  *zap.SugaredLogger
	fields []any
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimun log level (debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// Development enables development mode (more verbose)
	Development bool

	// File is an optional path; entries are also written there with size-based rotation.
	File string

	// MaxSizeMB is the size a log file reaches before it is rotated.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// MaxAgeDays is the number of days rotated files are kept.
	MaxAgeDays int
}

// DefaultConfig returns the default logger configuration.
//
// Returns:
//   - Config: default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		Development: false,
		MaxSizeMB:   100,
		MaxBackups:  7,
		MaxAgeDays:  30,
	}
}

// New creates a new Logger writing to stdout (and Config.File when set).
//
// Parameters:
//   - cfg: Logger configuration
//
// Returns:
//   - *Logger: configured logger instance
//   - error: Any error during initialization
func New(cfg Config) (*Logger, error) {
	var sinks []zapcore.WriteSyncer
	sinks = append(sinks, zapcore.AddSync(os.Stdout))
	if cfg.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}))
	}
	return NewWithWriter(cfg, zapcore.NewMultiWriteSyncer(sinks...))
}

// NewWithWriter creates a new Logger writing to w. Used by tests to capture output.
func NewWithWriter(cfg Config, w io.Writer) (*Logger, error) {
	// Parse log level
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	// configure encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	zapLogger := zap.New(core, opts...)

	return &Logger{
		zap:   zapLogger,
		sugar: zapLogger.Sugar(),
	}, nil
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, l.withFields(keysAndValues)...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, l.withFields(keysAndValues)...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, l.withFields(keysAndValues)...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, l.withFields(keysAndValues)...)
}

// Fatal logs a fatal message and exits the program.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	l.sugar.Fatalw(msg, l.withFields(keysAndValues)...)
}

// withFields prepends the logger's bound fields without aliasing l.fields.
func (l *Logger) withFields(keysAndValues []any) []any {
	if len(l.fields) == 0 {
		return keysAndValues
	}
	all := make([]any, 0, len(l.fields)+len(keysAndValues))
	all = append(all, l.fields...)
	return append(all, keysAndValues...)
}

// With return a logger with additional context fields.
// These fields will be included in all subsequent log entries.
//
// Parameters:
//   - keysAndValues: key-value pairs to add
//
// Returns:
//   - Logger: new logger with additional fields
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{
		zap:    l.zap,
		sugar:  l.sugar,
		fields: l.withFields(keysAndValues),
	}
}

// WithContext return a logger carrying the request ID found in ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		return l
	}
	return l.With("request_id", requestID)
}

// Sync flushes any buffered log entries.
// Should be called before application exit.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// globalLogger serves code that runs outside a configured component, such as
// the CLI entry point. Until SetGlobal is called it writes JSON to stderr.
var globalLogger *Logger

func init() {
	l, err := NewWithWriter(DefaultConfig(), os.Stderr)
	if err != nil {
		panic(err)
	}
	globalLogger = l
}

// SetGlobal replaces the global logger and returns the previous one.
func SetGlobal(logger *Logger) *Logger {
	prev := globalLogger
	globalLogger = logger
	return prev
}

// Error logs an error message using the global logger.
func Error(msg string, keysAndValues ...any) {
	globalLogger.Error(msg, keysAndValues...)
}

// Fatal logs a fatal message using the global logger and exits with status 1.
func Fatal(msg string, keysAndValues ...any) {
	globalLogger.Fatal(msg, keysAndValues...)
}
