package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/louisbranch/zenithfall/internal/services/game/storage/memory"
	"github.com/louisbranch/zenithfall/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	server *Server
	store  *memory.Store
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T, debug bool) *fixture {
	t.Helper()
	contentStore, err := content.Embedded()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	store := memory.NewStore()
	game, err := engine.New(contentStore, store, engine.Config{Debug: debug})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	core, logs := observer.New(zap.InfoLevel)
	server, err := New(game, Config{
		Debug:  debug,
		Logger: zap.New(core),
		Vocabulary: domain.Vocabulary{
			Races:     contentStore.RaceIDs(),
			Materials: contentStore.MaterialIDs(),
			Essences:  contentStore.EssenceIDs(),
		},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &fixture{server: server, store: store, logs: logs}
}

// connect serves f over in-memory transports and returns a client session.
func (f *fixture) connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- f.server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
		_ = session.Close()
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected text content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T", result.Content[0])
	}
	return text.Text
}

func structured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	list, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(list.Tools))
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewRequiresGame(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("expected error for nil game")
	}
}

func TestToolRegistration(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  int
	}{
		{"player tools", false, 7},
		{"debug tools", true, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			names := toolNames(t, newFixture(t, tc.debug).connect(t))
			if len(names) != tc.want {
				t.Fatalf("tools = %v, want %d", names, tc.want)
			}
			hasDebug := strings.Contains(strings.Join(names, ","), "debug_")
			if hasDebug != tc.debug {
				t.Fatalf("debug tools registered = %v, want %v", hasDebug, tc.debug)
			}
		})
	}
}

func TestStartAndTransmuteOverProtocol(t *testing.T) {
	f := newFixture(t, false)
	session := f.connect(t)

	result := callTool(t, session, engine.ToolStartRun, map[string]any{"race_id": "hume"})
	if result.IsError {
		t.Fatalf("start_run failed: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, "Aria") || !strings.Contains(text, "(Affection: 0.0)") {
		t.Fatalf("start text = %q", text)
	}

	result = callTool(t, session, engine.ToolTransmutePhoto, map[string]any{
		"detected_material": "metal",
		"detected_essence":  "attack",
		"detected_quality":  4,
		"hint_text":         "a key",
	})
	if result.IsError {
		t.Fatalf("transmute failed: %s", resultText(t, result))
	}
	out := structured(t, result)
	if out["ok"] != true || out["code"] != string(engine.CodeOK) {
		t.Fatalf("structured = %v", out)
	}

	state, err := f.store.View(context.Background(), domain.DefaultPlayerID)
	if err != nil {
		t.Fatalf("view state: %v", err)
	}
	if len(state.Materials) != 1 || state.Materials[0].Quality != 4 || state.DailyTransmuteCount != 1 {
		t.Fatalf("state = %+v", state)
	}
}

func TestDomainFailureIsToolError(t *testing.T) {
	f := newFixture(t, false)
	session := f.connect(t)

	result := callTool(t, session, engine.ToolExplore, map[string]any{"dungeon_id": "whispering_woods"})
	if !result.IsError {
		t.Fatalf("expected tool error, got %s", resultText(t, result))
	}
	out := structured(t, result)
	if out["ok"] != false || out["error_code"] != "NO_COMPANION" {
		t.Fatalf("structured = %v", out)
	}
}

func TestTransmuteClampsOutOfRangeQuality(t *testing.T) {
	f := newFixture(t, false)
	session := f.connect(t)

	result := callTool(t, session, engine.ToolTransmutePhoto, map[string]any{
		"detected_material": "metal",
		"detected_essence":  "attack",
		"detected_quality":  7,
	})
	if result.IsError {
		t.Fatalf("transmute failed: %s", resultText(t, result))
	}
	state, err := f.store.View(context.Background(), domain.DefaultPlayerID)
	if err != nil {
		t.Fatalf("view state: %v", err)
	}
	if len(state.Materials) != 1 || state.Materials[0].Quality != 5 {
		t.Fatalf("materials = %+v", state.Materials)
	}
}

func TestUnknownVocabularyReachesEngine(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		suggest string
	}{
		{
			name:    "material",
			tool:    engine.ToolTransmutePhoto,
			args:    map[string]any{"detected_material": "metl", "detected_essence": "attack"},
			suggest: "did you mean metal?",
		},
		{
			name:    "race",
			tool:    engine.ToolStartRun,
			args:    map[string]any{"race_id": "hum"},
			suggest: "did you mean hume?",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := newFixture(t, false).connect(t)
			result := callTool(t, session, tc.tool, tc.args)
			if !result.IsError {
				t.Fatalf("expected tool error, got %s", resultText(t, result))
			}
			out := structured(t, result)
			if out["ok"] != false || out["code"] != string(engine.CodeHardFail) || out["error_code"] != "INVALID_INPUT" {
				t.Fatalf("structured = %v", out)
			}
			if msg, _ := out["message"].(string); !strings.Contains(msg, tc.suggest) {
				t.Fatalf("message = %q, want suggestion %q", msg, tc.suggest)
			}
		})
	}
}

func TestToolCallsAreLogged(t *testing.T) {
	f := newFixture(t, false)
	session := f.connect(t)
	callTool(t, session, engine.ToolGetStatus, map[string]any{})

	entries := f.logs.FilterMessage("tool call").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["tool"] != engine.ToolGetStatus || fields["player_id"] != domain.DefaultPlayerID || fields["code"] != string(engine.CodeOK) {
		t.Fatalf("fields = %v", fields)
	}
	if id, _ := fields["invocation_id"].(string); id == "" {
		t.Fatalf("missing invocation id: %v", fields)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, _ := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- f.server.serveWithTransport(ctx, serverTransport) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	contentStore, err := content.Embedded()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	game, err := engine.New(contentStore, memory.NewStore(), engine.Config{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	err = Run(context.Background(), game, Config{Transport: "carrier-pigeon"})
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("err = %v", err)
	}
}

type headerTransport struct {
	header string
	value  string
	base   http.RoundTripper
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(h.header, h.value)
	return h.base.RoundTrip(req)
}

func TestHTTPHealth(t *testing.T) {
	f := newFixture(t, true)
	srv := httptest.NewServer(NewHTTPTransport("", f.server, true).Handler())
	defer srv.Close()

	tests := []struct {
		path   string
		status string
	}{
		{"/health", "healthy"},
		{"/", "ok"},
	}
	for _, tc := range tests {
		resp, err := http.Get(srv.URL + tc.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		var body healthResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", tc.path, err)
		}
		if body.Status != tc.status {
			t.Fatalf("%s status = %q, want %q", tc.path, body.Status, tc.status)
		}
	}
}

func TestHTTPPlayerHeader(t *testing.T) {
	f := newFixture(t, false)
	srv := httptest.NewServer(NewHTTPTransport("", f.server, false).Handler())
	defer srv.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: srv.URL + "/mcp",
		HTTPClient: &http.Client{Transport: headerTransport{
			header: domain.DefaultPlayerHeader,
			value:  "alice",
			base:   http.DefaultTransport,
		}},
	}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Close()

	result := callTool(t, session, engine.ToolStartRun, map[string]any{"race_id": "felina"})
	if result.IsError {
		t.Fatalf("start_run failed: %s", resultText(t, result))
	}
	state, err := f.store.View(context.Background(), "alice")
	if err != nil {
		t.Fatalf("view state: %v", err)
	}
	if state.RaceID != "felina" {
		t.Fatalf("alice's state = %+v", state)
	}
	if f.store.Len() != 1 {
		t.Fatalf("players = %d, want only alice", f.store.Len())
	}
}

func TestHTTPStartStopsOnCancel(t *testing.T) {
	f := newFixture(t, false)
	transport := NewHTTPTransport("127.0.0.1:0", f.server, false)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- transport.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("HTTP transport did not stop")
	}
}
