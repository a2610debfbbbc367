package services

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	resourceKey  contextKey = "resource"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// EnsureRequestID returns ctx unchanged when it already carries a correlation
// identifier, otherwise it stamps a fresh random one.
func EnsureRequestID(ctx context.Context) context.Context {
	if _, ok := RequestIDFromContext(ctx); ok {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithResource annotates context with the catalog resource being fetched
// (for example "country/han-quoc").
func WithResource(ctx context.Context, resource string) context.Context {
	if resource == "" {
		return ctx
	}
	return context.WithValue(ctx, resourceKey, resource)
}

// ResourceFromContext returns the resource label if present.
func ResourceFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(resourceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
