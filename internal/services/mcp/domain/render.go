package domain

import (
	"strings"

	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/message"
)

// emptyText is rendered when a response has nothing to say.
const emptyText = "OK"

// ToolResult wraps a response envelope as an MCP tool result. Domain failures
// are tool errors so clients can tell them apart from successes.
func ToolResult(p *message.Printer, resp engine.Response) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: Render(p, resp)}},
		IsError: !resp.OK,
	}
}

// Render turns a response envelope into narrative text: the message, the
// companion notes from the state patch, the exploration turns and the
// revival and phase-up lines.
func Render(p *message.Printer, resp engine.Response) string {
	var parts []string
	if resp.Message != "" {
		parts = append(parts, resp.Message)
	}

	if value, ok := resp.StatePatch["affection"]; ok {
		if affection, ok := number(value); ok {
			parts = append(parts, p.Sprintf(i18n.KeyNoteAffection, affection))
		}
	}
	if value, ok := resp.StatePatch["phase"]; ok {
		if phase, ok := number(value); ok {
			parts = append(parts, p.Sprintf(i18n.KeyNotePhase, int(phase)))
		}
	}
	if vanished, _ := resp.StatePatch["is_vanished"].(bool); vanished {
		parts = append(parts, p.Sprintf(i18n.KeyNoteVanished))
	}

	if turns, ok := resp.UIHints["exploration_log"].([]engine.TurnLog); ok {
		for _, turn := range turns {
			if turn.Message != "" {
				parts = append(parts, "  "+turn.Message)
			}
		}
	}
	if revival, ok := resp.UIHints["revival"].(engine.Fields); ok {
		if revived, _ := revival["revived"].(bool); revived {
			text, _ := revival["message"].(string)
			parts = append(parts, p.Sprintf(i18n.KeyNoteRevived, text))
		}
	}
	if phaseUp, _ := resp.UIHints["phase_up"].(bool); phaseUp {
		parts = append(parts, p.Sprintf(i18n.KeyNotePhaseUp))
	}

	if len(parts) == 0 {
		return emptyText
	}
	return strings.Join(parts, "\n")
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
