package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/louisbranch/zenithfall/internal/platform/branding"
	"github.com/louisbranch/zenithfall/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

var listenTCP = net.Listen

// defaultHTTPAddr keeps the default footprint local.
const defaultHTTPAddr = "localhost:8081"

// HTTPTransport serves streamable MCP at /mcp with health endpoints beside it.
type HTTPTransport struct {
	addr       string
	server     *Server
	debug      bool
	logger     *zap.Logger
	httpServer *http.Server
}

// NewHTTPTransport creates an HTTP transport for server.
func NewHTTPTransport(addr string, server *Server, debug bool) *HTTPTransport {
	if addr == "" {
		addr = defaultHTTPAddr
	}
	logger := zap.NewNop()
	if server != nil && server.logger != nil {
		logger = server.logger
	}
	return &HTTPTransport{addr: addr, server: server, debug: debug, logger: logger}
}

// Handler returns the HTTP routes: / and /health report liveness and /mcp
// carries the protocol. Each request reaches the same MCP server so the
// player header of every call is visible to the tool handlers.
func (t *HTTPTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server.MCPServer()
	}, nil)
	mux.Handle("/mcp", mcpHandler)
	mux.HandleFunc("GET /health", t.handleHealth)
	mux.HandleFunc("GET /{$}", t.handleRoot)
	return mux
}

// Start listens on the configured address and blocks until ctx is canceled
// or the server fails. Cancellation drains in-flight requests.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil || t.server.MCPServer() == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.serve(ctx, listener)
}

func (t *HTTPTransport) serve(ctx context.Context, listener net.Listener) error {
	t.httpServer = &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	t.logger.Info("starting MCP HTTP server", zap.String("addr", t.httpServer.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	Version   string `json:"version,omitempty"`
	DebugMode *bool  `json:"debug_mode,omitempty"`
}

func (t *HTTPTransport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, healthResponse{Status: "healthy"})
}

func (t *HTTPTransport) handleRoot(w http.ResponseWriter, _ *http.Request) {
	debug := t.debug
	writeJSON(w, healthResponse{
		Status:    "ok",
		Server:    branding.ServerSlug,
		Version:   serverVersion,
		DebugMode: &debug,
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
