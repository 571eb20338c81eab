package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/zenithfall/internal/platform/branding"
	"github.com/louisbranch/zenithfall/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.3.0"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs streamable MCP over HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address. Defaults to localhost:8081.
	// PlayerHeader names the HTTP header carrying the player id.
	PlayerHeader string
	// DefaultPlayerID is used when a call carries no player id.
	DefaultPlayerID string
	// Debug registers the maintenance tools.
	Debug      bool
	Vocabulary domain.Vocabulary
	Logger     *zap.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	game      domain.Game
	players   domain.PlayerResolver
	logger    *zap.Logger
	debug     bool
}

// New creates an MCP server with every tool bound to game.
func New(game domain.Game, cfg Config) (*Server, error) {
	if game == nil {
		return nil, errors.New("game engine is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    branding.ServerSlug,
		Title:   branding.AppName,
		Version: serverVersion,
	}, &mcp.ServerOptions{})

	server := &Server{
		mcpServer: mcpServer,
		game:      game,
		players: domain.PlayerResolver{
			Header:   strings.TrimSpace(cfg.PlayerHeader),
			Fallback: strings.TrimSpace(cfg.DefaultPlayerID),
		},
		logger: logger,
		debug:  cfg.Debug,
	}
	for _, module := range newRegistrationModules(cfg.Vocabulary) {
		if module.debugOnly && !server.debug {
			continue
		}
		if err := module.register(server); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return server, nil
}

// MCPServer exposes the underlying protocol server.
func (s *Server) MCPServer() *mcp.Server {
	if s == nil {
		return nil
	}
	return s.mcpServer
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server on transport. Context cancellation is
// a clean stop.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
// Stdio serves local tools; HTTP serves remote clients.
func Run(ctx context.Context, game domain.Game, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server, err := New(game, cfg)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx)
	case TransportHTTP:
		return NewHTTPTransport(cfg.HTTPAddr, server, cfg.Debug).Start(ctx)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}
