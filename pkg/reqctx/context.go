// Package reqctx carries per-request values on context.Context. Each request
// derives its own context chain, so concurrent requests can never observe
// one another's request id or ambient transaction.
package reqctx

import (
	"context"

	"gorm.io/gorm"
)

type requestIDKey struct{}

type txKey struct{}

// WithRequestID binds the request id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithTx binds an open transaction as the ambient connection for every
// repository call made through the returned context.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the ambient transaction, or nil when the caller is
// outside any transaction scope.
func TxFromContext(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return nil
	}
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}
