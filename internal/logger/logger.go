// Package logger carries a *zap.Logger through a context.
package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// NewContext returns a copy of ctx that carries l.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// L returns the logger stored in ctx, or the global logger.
func L(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.L()
}
