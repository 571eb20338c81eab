package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/zenithfall/internal/platform/requestctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// DefaultPlayerHeader carries the player id on HTTP transports.
	DefaultPlayerHeader = "X-User-ID"
	// DefaultPlayerID is used when a call carries no player id.
	DefaultPlayerID = "default-user"
)

// PlayerResolver identifies the player behind a tool call.
type PlayerResolver struct {
	Header   string
	Fallback string
}

// Resolve returns the player id already bound to ctx, else the configured
// request header, else the fallback id. Stdio calls carry no headers.
func (r PlayerResolver) Resolve(ctx context.Context, req *mcp.CallToolRequest) string {
	if playerID := requestctx.PlayerIDFromContext(ctx); playerID != "" {
		return playerID
	}
	header := strings.TrimSpace(r.Header)
	if header == "" {
		header = DefaultPlayerHeader
	}
	if req != nil && req.Extra != nil && req.Extra.Header != nil {
		if playerID := strings.TrimSpace(req.Extra.Header.Get(header)); playerID != "" {
			return playerID
		}
	}
	if fallback := strings.TrimSpace(r.Fallback); fallback != "" {
		return fallback
	}
	return DefaultPlayerID
}
