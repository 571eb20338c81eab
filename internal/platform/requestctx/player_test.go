package requestctx

import (
	"context"
	"testing"
)

func TestPlayerIDFromContextRoundTrip(t *testing.T) {
	ctx := WithPlayerID(context.Background(), " player-42 ")
	if got := PlayerIDFromContext(ctx); got != "player-42" {
		t.Fatalf("PlayerIDFromContext = %q, want %q", got, "player-42")
	}
}

func TestWithPlayerIDIgnoresBlank(t *testing.T) {
	ctx := WithPlayerID(context.Background(), "player-1")
	ctx = WithPlayerID(ctx, "   ")
	if got := PlayerIDFromContext(ctx); got != "player-1" {
		t.Fatalf("PlayerIDFromContext = %q, want player-1", got)
	}
}

func TestPlayerIDFromContextEmpty(t *testing.T) {
	if got := PlayerIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := PlayerIDFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithPlayerIDNilContext(t *testing.T) {
	ctx := WithPlayerID(nil, "player-99")
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := PlayerIDFromContext(ctx); got != "player-99" {
		t.Fatalf("PlayerIDFromContext = %q, want %q", got, "player-99")
	}
}

func TestInvocationIDRoundTrip(t *testing.T) {
	ctx := WithInvocationID(nil, "inv-1")
	if got := InvocationIDFromContext(ctx); got != "inv-1" {
		t.Fatalf("InvocationIDFromContext = %q, want inv-1", got)
	}
	if got := InvocationIDFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}
