package engine

import (
	"context"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
)

func explore(t *testing.T, h *harness, in ExploreInput) Response {
	t.Helper()
	resp, err := h.engine.Explore(context.Background(), testPlayer, in)
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	return resp
}

func turnLogs(t *testing.T, resp Response) []TurnLog {
	t.Helper()
	turns, ok := resp.UIHints["exploration_log"].([]TurnLog)
	if !ok {
		t.Fatalf("exploration_log = %T", resp.UIHints["exploration_log"])
	}
	return turns
}

func TestExploreFullSuccess(t *testing.T) {
	h := newHarness(t)
	h.start(t, "hume")

	resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"})
	if !resp.OK || resp.Code != CodeOK {
		t.Fatalf("resp = %+v", resp)
	}
	turns := turnLogs(t, resp)
	if len(turns) != 3 || !turns[2].Boss || turns[2].Drops != 3 {
		t.Fatalf("turns = %+v", turns)
	}
	for _, turn := range turns[:2] {
		if !turn.Enemy || !turn.Survived || turn.Drops != 2 {
			t.Fatalf("turn = %+v", turn)
		}
	}
	if resp.UIHints["treasure_count"] != 2 || resp.UIHints["total_drops"] != 9 || resp.UIHints["missed_drops"] != 0 {
		t.Fatalf("hints = %v", resp.UIHints)
	}

	s := h.state(t)
	if len(s.Catalysts) != 9 {
		t.Fatalf("catalysts = %d", len(s.Catalysts))
	}
	first := s.Catalysts[0]
	if first.BaseCatalystID != "cat_oak_resin" || first.Material != "wood" || first.Essence != "heal" || !first.IsPrimary {
		t.Fatalf("catalyst = %+v", first)
	}
	if !strings.HasPrefix(first.ID, "cat_oak_resin_") {
		t.Fatalf("catalyst id = %q", first.ID)
	}
	if s.Affection != 1 || s.DailyExploreCount != 1 {
		t.Fatalf("affection %v explore count %d", s.Affection, s.DailyExploreCount)
	}
	want := "Exploration succeeded! Obtained Oak Resin, Oak Resin, Oak Resin and more, 9 catalysts in total!"
	if resp.Message != want {
		t.Fatalf("message = %q", resp.Message)
	}
	next, _ := resp.UIHints["suggest_next"].(Fields)
	if next["action"] != ToolTransmutePhoto || next["essence_hint"] != "create" {
		t.Fatalf("suggest_next = %v", next)
	}
}

func TestExploreBossDefeat(t *testing.T) {
	h := newHarness(t)
	h.start(t, "hume")
	h.rng.floats = []float64{0.9, 0.9, 0.99}

	resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"})
	if !resp.OK || resp.Code != CodeSoftFail {
		t.Fatalf("resp = %+v", resp)
	}
	turns := turnLogs(t, resp)
	if len(turns) != 3 || turns[0].Enemy || turns[2].Survived {
		t.Fatalf("turns = %+v", turns)
	}
	s := h.state(t)
	if len(s.Catalysts) != 2 {
		t.Fatalf("catalysts = %d, want turn drops kept", len(s.Catalysts))
	}
	if s.Affection != 0 || s.DailyExploreCount != 1 {
		t.Fatalf("affection %v count %d", s.Affection, s.DailyExploreCount)
	}
	if resp.UIHints["suggest_next"] != nil || resp.UIHints["treasure_count"] != 0 {
		t.Fatalf("hints = %v", resp.UIHints)
	}
}

func TestExploreDefeatOnFirstTurn(t *testing.T) {
	h := newHarness(t)
	h.start(t, "hume")
	h.rng.floats = []float64{0.1, 0.99}

	resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"})
	if resp.Code != CodeSoftFail {
		t.Fatalf("resp = %+v", resp)
	}
	if turns := turnLogs(t, resp); len(turns) != 1 || turns[0].Survived {
		t.Fatalf("turns = %+v", turns)
	}
	if got := len(h.state(t).Catalysts); got != 0 {
		t.Fatalf("catalysts = %d", got)
	}
	if resp.Message != "Exploration failed... making it back at all was lucky." {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestExploreSuccessRate(t *testing.T) {
	tests := []struct {
		name  string
		style string
		stats int
		want  float64
	}{
		{"baseline", "", 40, 0.75},
		{"heal", StyleHeal, 40, 0.80},
		{"guard", StyleGuard, 40, 0.85},
		{"equipment", StyleNone, 60, 0.85},
		{"equipment capped", StyleGuard, 200, 1.05},
		{"unknown style fights unsupported", "gaurd", 40, 0.75},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.start(t, "hume")
			h.mutate(t, func(s *player.State) { s.TotalStats = tc.stats })
			resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods", Style: tc.style})
			got, _ := resp.UIHints["success_rate"].(float64)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("success_rate = %v, want %v", got, tc.want)
			}
			if tc.style != StyleHeal && tc.style != StyleGuard && resp.Log["style"] != StyleNone {
				t.Fatalf("logged style = %v, want none", resp.Log["style"])
			}
		})
	}
}

func TestExploreLimitReached(t *testing.T) {
	h := newHarness(t)
	h.start(t, "hume")
	if resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"}); !resp.OK {
		t.Fatalf("first explore: %+v", resp)
	}
	resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"})
	assertFailure(t, resp, CodeLimitReached, apperrors.CodeLimitReached)
	if got := h.state(t).DailyExploreCount; got != 1 {
		t.Fatalf("explore count = %d", got)
	}
}

func TestExplorePreconditions(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*testing.T, *harness)
		in       ExploreInput
		errCode  apperrors.Code
		suggests string
	}{
		{
			name:    "no companion",
			setup:   func(*testing.T, *harness) {},
			in:      ExploreInput{DungeonID: "whispering_woods"},
			errCode: apperrors.CodeNoCompanion,
		},
		{
			name: "vanished",
			setup: func(t *testing.T, h *harness) {
				h.start(t, "hume")
				h.mutate(t, func(s *player.State) { s.IsVanished = true })
			},
			in:      ExploreInput{DungeonID: "whispering_woods"},
			errCode: apperrors.CodeCompanionVanished,
		},
		{
			name:     "unknown dungeon",
			setup:    func(t *testing.T, h *harness) { h.start(t, "hume") },
			in:       ExploreInput{DungeonID: "rusted_mien"},
			errCode:  apperrors.CodeNotFound,
			suggests: "rusted_mine",
		},
		{
			name:    "rank too low",
			setup:   func(t *testing.T, h *harness) { h.start(t, "hume") },
			in:      ExploreInput{DungeonID: "sunken_library"},
			errCode: apperrors.CodeRankTooLow,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			tc.setup(t, h)
			resp := explore(t, h, tc.in)
			assertFailure(t, resp, CodeHardFail, tc.errCode)
			if tc.suggests != "" && !strings.Contains(resp.Message, tc.suggests) {
				t.Fatalf("message %q should suggest %q", resp.Message, tc.suggests)
			}
			s := h.state(t)
			if s.DailyExploreCount != 0 || len(s.Catalysts) != 0 {
				t.Fatalf("state changed: %+v", s)
			}
		})
	}
}

func TestExploreOverflowDropsExtraCatalysts(t *testing.T) {
	limits := rules.DefaultLimits()
	limits.MaxCatalysts = 3
	h := newHarness(t, withLimits(limits))
	h.start(t, "hume")

	resp := explore(t, h, ExploreInput{DungeonID: "whispering_woods"})
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	if got := len(h.state(t).Catalysts); got != 3 {
		t.Fatalf("catalysts = %d, want 3", got)
	}
	if resp.UIHints["overflow"] != 6 || resp.UIHints["total_drops"] != 3 {
		t.Fatalf("hints = %v", resp.UIHints)
	}
	if !strings.HasSuffix(resp.Message, "6 catalysts were left behind because your pouch is full.") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func ghostContent(t *testing.T) *content.Store {
	t.Helper()
	store, err := content.Load(fstest.MapFS{
		content.MaterialsFile: {Data: []byte(`{
			"materials": [{"id": "metal"}],
			"essences": [{"id": "attack"}],
			"quality": [{"level": 1}, {"level": 2}, {"level": 3}, {"level": 4}, {"level": 5}]
		}`)},
		content.RacesFile: {Data: []byte(`{"races": [{"id": "hume", "like_essences": ["attack"]}]}`)},
		content.DungeonsFile: {Data: []byte(`{
			"dungeons": [{"id": "haunt", "rank": 1, "catalyst_drop_table": [{"catalyst_id": "cat_ghost", "weight": 10}]}]
		}`)},
		content.RecipesFile: {Data: []byte(`{"catalysts": []}`)},
	})
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return store
}

func TestExploreCountsMissedDrops(t *testing.T) {
	h := newHarnessWithContent(t, ghostContent(t))
	h.start(t, "hume")
	h.rng.floats = []float64{0.9, 0.9, 0, 0}

	resp := explore(t, h, ExploreInput{DungeonID: "haunt"})
	if resp.Code != CodeOK {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.UIHints["missed_drops"] != 7 || resp.UIHints["total_drops"] != 0 {
		t.Fatalf("hints = %v", resp.UIHints)
	}
	turns := turnLogs(t, resp)
	if turns[0].Missed != 1 || turns[2].Missed != 3 {
		t.Fatalf("turns = %+v", turns)
	}
	if resp.Message != "Exploration succeeded! But nothing was found..." {
		t.Fatalf("message = %q", resp.Message)
	}
}
