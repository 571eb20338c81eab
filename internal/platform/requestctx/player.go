// Package requestctx carries per-call identity through context.
package requestctx

import (
	"context"
	"strings"
)

type playerIDContextKey struct{}

type invocationIDContextKey struct{}

// WithPlayerID stores the calling player's identifier in context. Blank ids
// leave the context unchanged.
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ctx
	}
	return context.WithValue(ctx, playerIDContextKey{}, playerID)
}

// PlayerIDFromContext returns the player identifier stored in context.
func PlayerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(playerIDContextKey{}).(string)
	return value
}

// WithInvocationID stores the tool invocation identifier in context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDContextKey{}, invocationID)
}

// InvocationIDFromContext returns the invocation identifier stored in context.
func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(invocationIDContextKey{}).(string)
	return value
}
