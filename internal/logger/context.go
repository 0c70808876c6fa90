package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is unexported so only this package installs or reads the logger.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying l. Context-accepting
// build paths (registry DefinitionOfCtx) pick it up with FromContext, so a
// request-scoped logger follows the schema build it triggered.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger carried by ctx. Contexts without one get a
// nop logger, so call sites never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
