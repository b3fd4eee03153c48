package main

import (
	"context"

	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/pkg/logger"
)

// ============================================================================
// Adapters to implement port interfaces
// ============================================================================

// loggerAdapter adapts the logger.Logger to the port.Logger interface.
type loggerAdapter struct {
	*logger.Logger
}

var _ port.Logger = (*loggerAdapter)(nil)

// With implements port.Logger.
func (l *loggerAdapter) With(keysAndValues ...any) port.Logger {
	return &loggerAdapter{l.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (l *loggerAdapter) WithContext(ctx context.Context) port.Logger {
	return &loggerAdapter{l.Logger.WithContext(ctx)}
}
