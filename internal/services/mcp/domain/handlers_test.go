package domain

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/louisbranch/zenithfall/internal/platform/requestctx"
	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type fakeGame struct {
	playerID  string
	start     engine.StartRunInput
	transmute engine.TransmuteInput
	craft     engine.CraftInput
	explore   engine.ExploreInput
	override  engine.StateOverride
	called    string
	resp      engine.Response
	err       error
}

func (f *fakeGame) record(name, playerID string) (engine.Response, error) {
	f.called = name
	f.playerID = playerID
	return f.resp, f.err
}

func (f *fakeGame) StartRun(_ context.Context, playerID string, in engine.StartRunInput) (engine.Response, error) {
	f.start = in
	return f.record("start", playerID)
}

func (f *fakeGame) TransmutePhoto(_ context.Context, playerID string, in engine.TransmuteInput) (engine.Response, error) {
	f.transmute = in
	return f.record("transmute", playerID)
}

func (f *fakeGame) CraftItem(_ context.Context, playerID string, in engine.CraftInput) (engine.Response, error) {
	f.craft = in
	return f.record("craft", playerID)
}

func (f *fakeGame) Explore(_ context.Context, playerID string, in engine.ExploreInput) (engine.Response, error) {
	f.explore = in
	return f.record("explore", playerID)
}

func (f *fakeGame) Status(_ context.Context, playerID string) (engine.Response, error) {
	return f.record("status", playerID)
}

func (f *fakeGame) AvailableDungeons(_ context.Context, playerID string) (engine.Response, error) {
	return f.record("dungeons", playerID)
}

func (f *fakeGame) Recipes(_ context.Context, playerID string) (engine.Response, error) {
	return f.record("recipes", playerID)
}

func (f *fakeGame) DebugResetDaily(_ context.Context, playerID string) (engine.Response, error) {
	return f.record("reset", playerID)
}

func (f *fakeGame) DebugSetState(_ context.Context, playerID string, override engine.StateOverride) (engine.Response, error) {
	f.override = override
	return f.record("set", playerID)
}

func (f *fakeGame) DebugForceVanish(_ context.Context, playerID string) (engine.Response, error) {
	return f.record("vanish", playerID)
}

func (f *fakeGame) Printer() *message.Printer { return i18n.Printer(language.English) }

func okResponse(msg string) engine.Response {
	return engine.Response{OK: true, Code: engine.CodeOK, StatePatch: engine.Fields{}, UIHints: engine.Fields{}, Log: engine.Fields{}, Message: msg}
}

func requestWithHeader(name, value string) *mcp.CallToolRequest {
	header := http.Header{}
	header.Set(name, value)
	return &mcp.CallToolRequest{Extra: &mcp.RequestExtra{Header: header}}
}

func TestPlayerResolver(t *testing.T) {
	tests := []struct {
		name     string
		resolver PlayerResolver
		ctx      context.Context
		req      *mcp.CallToolRequest
		want     string
	}{
		{"nil request", PlayerResolver{}, context.Background(), nil, DefaultPlayerID},
		{"no extra", PlayerResolver{Fallback: "solo"}, context.Background(), &mcp.CallToolRequest{}, "solo"},
		{"default header", PlayerResolver{}, context.Background(), requestWithHeader("X-User-ID", "alice"), "alice"},
		{"custom header", PlayerResolver{Header: "X-Player"}, context.Background(), requestWithHeader("X-Player", "bob"), "bob"},
		{"other header ignored", PlayerResolver{Header: "X-Player"}, context.Background(), requestWithHeader("X-User-ID", "bob"), DefaultPlayerID},
		{"blank header value", PlayerResolver{Fallback: "solo"}, context.Background(), requestWithHeader("X-User-ID", "  "), "solo"},
		{"bound in context", PlayerResolver{}, requestctx.WithPlayerID(context.Background(), "carol"), requestWithHeader("X-User-ID", "alice"), "carol"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resolver.Resolve(tc.ctx, tc.req); got != tc.want {
				t.Fatalf("Resolve = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStartRunHandler(t *testing.T) {
	game := &fakeGame{resp: okResponse("Welcome back!")}
	handler := StartRunHandler(game, PlayerResolver{})
	result, out, err := handler(context.Background(), requestWithHeader("X-User-ID", "alice"), StartRunInput{RaceID: "hume", PartnerName: "Ari", ForceNew: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.playerID != "alice" || game.start != (engine.StartRunInput{RaceID: "hume", PartnerName: "Ari", ForceNew: true}) {
		t.Fatalf("call = %q %+v", game.playerID, game.start)
	}
	if result == nil || result.IsError {
		t.Fatalf("result = %+v", result)
	}
	if out.Message != "Welcome back!" {
		t.Fatalf("structured output = %+v", out)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok || text.Text != "Welcome back!" {
		t.Fatalf("content = %+v", result.Content)
	}
}

func TestTransmutePhotoHandlerDefaultsQuality(t *testing.T) {
	game := &fakeGame{resp: okResponse("")}
	handler := TransmutePhotoHandler(game, PlayerResolver{})

	if _, _, err := handler(context.Background(), nil, TransmutePhotoInput{Material: "metal", Essence: "attack", Hint: "a key"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := engine.TransmuteInput{Material: "metal", Essence: "attack", Quality: defaultTransmuteQuality, Hint: "a key"}
	if game.transmute != want {
		t.Fatalf("input = %+v, want %+v", game.transmute, want)
	}

	quality := 5
	if _, _, err := handler(context.Background(), nil, TransmutePhotoInput{Material: "wood", Essence: "heal", Quality: &quality}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.transmute.Quality != 5 {
		t.Fatalf("quality = %d", game.transmute.Quality)
	}
}

func TestCraftAndExploreHandlersForwardInput(t *testing.T) {
	game := &fakeGame{resp: okResponse("")}
	if _, _, err := CraftItemHandler(game, PlayerResolver{})(context.Background(), nil, CraftItemInput{
		MaterialIDs: []string{"mat_1", "mat_2"},
		CatalystID:  "cat_1",
		CraftType:   "gift",
	}); err != nil {
		t.Fatalf("craft: %v", err)
	}
	if len(game.craft.MaterialIDs) != 2 || game.craft.CatalystID != "cat_1" || game.craft.CraftType != "gift" {
		t.Fatalf("craft input = %+v", game.craft)
	}

	if _, _, err := ExploreHandler(game, PlayerResolver{})(context.Background(), nil, ExploreInput{DungeonID: "rusted_mine", Style: "guard"}); err != nil {
		t.Fatalf("explore: %v", err)
	}
	if game.explore != (engine.ExploreInput{DungeonID: "rusted_mine", Style: "guard"}) {
		t.Fatalf("explore input = %+v", game.explore)
	}
}

func TestPlayerOnlyHandlers(t *testing.T) {
	tests := []struct {
		name    string
		handler func(Game, PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response]
		called  string
	}{
		{"status", GetStatusHandler, "status"},
		{"dungeons", GetAvailableDungeonsHandler, "dungeons"},
		{"recipes", GetRecipesHandler, "recipes"},
		{"reset", DebugResetDailyHandler, "reset"},
		{"vanish", DebugForceVanishHandler, "vanish"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			game := &fakeGame{resp: okResponse("")}
			if _, _, err := tc.handler(game, PlayerResolver{Fallback: "solo"})(context.Background(), nil, EmptyInput{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if game.called != tc.called || game.playerID != "solo" {
				t.Fatalf("called %q for %q", game.called, game.playerID)
			}
		})
	}
}

func TestDebugSetStateHandlerMapsOverride(t *testing.T) {
	game := &fakeGame{resp: okResponse("")}
	phase, affection, vanished := 3, 55.5, true
	_, _, err := DebugSetStateHandler(game, PlayerResolver{})(context.Background(), nil, DebugSetStateInput{
		Phase:      &phase,
		Affection:  &affection,
		IsVanished: &vanished,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := game.override
	if o.Phase == nil || *o.Phase != 3 || o.Affection == nil || *o.Affection != 55.5 || o.IsVanished == nil || !*o.IsVanished {
		t.Fatalf("override = %+v", o)
	}
	if o.Rank != nil || o.TotalStats != nil || o.HasRevivalItem != nil {
		t.Fatalf("unset fields should stay nil: %+v", o)
	}
}

func TestHandlerDomainFailureIsToolError(t *testing.T) {
	game := &fakeGame{resp: engine.Response{OK: false, Code: engine.CodeLimitReached, ErrorCode: "LIMIT_REACHED", Message: "You have reached today's exploration limit (1)."}}
	result, out, err := ExploreHandler(game, PlayerResolver{})(context.Background(), nil, ExploreInput{DungeonID: "rusted_mine"})
	if err != nil {
		t.Fatalf("domain failures are not handler errors: %v", err)
	}
	if !result.IsError || out.Code != engine.CodeLimitReached {
		t.Fatalf("result %+v out %+v", result, out)
	}
}

func TestHandlerInternalFaultIsError(t *testing.T) {
	game := &fakeGame{err: errors.New("store unavailable")}
	result, _, err := GetStatusHandler(game, PlayerResolver{})(context.Background(), nil, EmptyInput{})
	if err == nil || result != nil {
		t.Fatalf("expected handler error, got result %+v err %v", result, err)
	}
	if !strings.Contains(err.Error(), "get status failed") {
		t.Fatalf("error = %v", err)
	}
}

func inputSchema(t *testing.T, tool *mcp.Tool) *jsonschema.Schema {
	t.Helper()
	schema, ok := tool.InputSchema.(*jsonschema.Schema)
	if !ok {
		t.Fatalf("%s input schema has type %T, want *jsonschema.Schema", tool.Name, tool.InputSchema)
	}
	return schema
}

func TestToolSchemasAdvertiseVocabulary(t *testing.T) {
	vocab := Vocabulary{
		Races:     []string{"hume", "sylva"},
		Materials: []string{"metal"},
		Essences:  []string{"attack", "heal"},
	}
	start := StartRunTool(vocab)
	race := inputSchema(t, start).Properties["race_id"]
	if len(race.Enum) != 0 || !strings.Contains(race.Description, "one of: hume, sylva") {
		t.Fatalf("race_id = enum %v, description %q", race.Enum, race.Description)
	}
	transmute := TransmutePhotoTool(vocab)
	props := inputSchema(t, transmute).Properties
	for name, want := range map[string]string{
		"detected_material": "one of: metal",
		"detected_essence":  "one of: attack, heal",
	} {
		prop := props[name]
		if len(prop.Enum) != 0 || !strings.Contains(prop.Description, want) {
			t.Fatalf("%s = enum %v, description %q", name, prop.Enum, prop.Description)
		}
	}
	if quality := props["detected_quality"]; quality.Minimum != nil || quality.Maximum != nil {
		t.Fatalf("quality should be unbounded, got %v..%v", quality.Minimum, quality.Maximum)
	}
	required := strings.Join(inputSchema(t, transmute).Required, ",")
	if !strings.Contains(required, "detected_material") || strings.Contains(required, "detected_quality") {
		t.Fatalf("required = %q", required)
	}
	if style := inputSchema(t, ExploreTool()).Properties["style"]; len(style.Enum) != 0 || !strings.Contains(style.Description, "heal, guard, none") {
		t.Fatalf("style = enum %v, description %q", style.Enum, style.Description)
	}
	debug := DebugSetStateTool()
	if stats := inputSchema(t, debug).Properties["total_stats"]; stats.Minimum == nil || stats.Maximum != nil {
		t.Fatalf("total_stats bounds = %v..%v", stats.Minimum, stats.Maximum)
	}
}

func TestToolNames(t *testing.T) {
	vocab := Vocabulary{}
	tools := []*mcp.Tool{
		StartRunTool(vocab), TransmutePhotoTool(vocab), CraftItemTool(), ExploreTool(),
		GetStatusTool(), GetAvailableDungeonsTool(), GetRecipesTool(),
		DebugResetDailyTool(), DebugSetStateTool(), DebugForceVanishTool(),
	}
	seen := map[string]bool{}
	for _, tool := range tools {
		if tool.Name == "" || tool.Description == "" {
			t.Fatalf("tool missing name or description: %+v", tool)
		}
		if seen[tool.Name] {
			t.Fatalf("duplicate tool %q", tool.Name)
		}
		seen[tool.Name] = true
	}
}
