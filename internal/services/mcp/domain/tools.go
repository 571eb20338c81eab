package domain

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultTransmuteQuality    = 2
	minRank, maxRank           = 1, 5
	minPhase, maxPhase         = 1, 5
	minAffection, maxAffection = 0, 100
)

// StartRunInput represents the MCP tool input for starting or resuming a game.
type StartRunInput struct {
	RaceID      string `json:"race_id,omitempty" jsonschema:"race to bind for a new game"`
	PartnerName string `json:"partner_name,omitempty" jsonschema:"optional companion name"`
	ForceNew    bool   `json:"force_new,omitempty" jsonschema:"start a new game even when a companion is bound"`
}

// TransmutePhotoInput represents the MCP tool input for turning a photo into a material.
type TransmutePhotoInput struct {
	Material string `json:"detected_material" jsonschema:"material type detected in the photo"`
	Essence  string `json:"detected_essence" jsonschema:"essence detected in the photo"`
	Quality  *int   `json:"detected_quality,omitempty" jsonschema:"photo quality from 1 to 5; values outside the range are clamped"`
	Hint     string `json:"hint_text,omitempty" jsonschema:"short description of the photo"`
}

// CraftItemInput represents the MCP tool input for crafting.
type CraftItemInput struct {
	MaterialIDs []string `json:"material_ids" jsonschema:"ids of the materials to consume"`
	CatalystID  string   `json:"catalyst_id,omitempty" jsonschema:"optional catalyst id"`
	CraftType   string   `json:"craft_type,omitempty" jsonschema:"normal crafts an item, gift hands it to the companion"`
}

// ExploreInput represents the MCP tool input for a dungeon expedition.
type ExploreInput struct {
	DungeonID string `json:"dungeon_id" jsonschema:"dungeon to explore"`
	Style     string `json:"style,omitempty" jsonschema:"companion support style"`
}

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// DebugSetStateInput represents the MCP tool input for forcing state fields.
type DebugSetStateInput struct {
	Phase          *int     `json:"phase,omitempty" jsonschema:"bond phase"`
	Affection      *float64 `json:"affection,omitempty" jsonschema:"affection value"`
	Rank           *int     `json:"rank,omitempty" jsonschema:"crafting rank"`
	TotalStats     *int     `json:"total_stats,omitempty" jsonschema:"accumulated equipment stat total"`
	IsVanished     *bool    `json:"is_vanished,omitempty" jsonschema:"companion vanished flag"`
	HasRevivalItem *bool    `json:"has_revival_item,omitempty" jsonschema:"revival item flag; requires is_vanished"`
}

// Vocabulary lists the values advertised in tool property descriptions.
// The engine validates them, so schemas do not restrict them.
type Vocabulary struct {
	Races     []string
	Materials []string
	Essences  []string
}

// StartRunTool defines the MCP tool schema for starting a game.
func StartRunTool(v Vocabulary) *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolStartRun,
		Description: "Starts or resumes the game. New players choose a race.",
		InputSchema: mustSchema[StartRunInput](func(s *jsonschema.Schema) {
			describeValues(s, "race_id", v.Races)
		}),
	}
}

// TransmutePhotoTool defines the MCP tool schema for photo transmutation.
func TransmutePhotoTool(v Vocabulary) *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolTransmutePhoto,
		Description: "Turns a photo into an alchemy material. Classify the photo's material, essence and quality first.",
		InputSchema: mustSchema[TransmutePhotoInput](func(s *jsonschema.Schema) {
			describeValues(s, "detected_material", v.Materials)
			describeValues(s, "detected_essence", v.Essences)
		}),
	}
}

// CraftItemTool defines the MCP tool schema for crafting.
func CraftItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolCraftItem,
		Description: "Crafts an item from materials, or a gift that is handed to the companion at once. Normal and gift crafts share a daily limit.",
		InputSchema: mustSchema[CraftItemInput](func(s *jsonschema.Schema) {
			describeValues(s, "craft_type", []string{engine.CraftNormal, engine.CraftGift})
		}),
	}
}

// ExploreTool defines the MCP tool schema for exploration.
func ExploreTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolExplore,
		Description: "Explores a dungeon over three turns with a boss on the last one. Success yields catalysts and a treasure chest. Not possible while the companion has vanished.",
		InputSchema: mustSchema[ExploreInput](func(s *jsonschema.Schema) {
			describeValues(s, "style", []string{engine.StyleHeal, engine.StyleGuard, engine.StyleNone})
		}),
	}
}

// GetStatusTool defines the MCP tool schema for the status query.
func GetStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolGetStatus,
		Description: "Returns the current game state: inventory, affection, rank and vanish status.",
	}
}

// GetAvailableDungeonsTool defines the MCP tool schema for the dungeon listing.
func GetAvailableDungeonsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolGetAvailableDungeons,
		Description: "Lists the dungeons open at the current rank.",
	}
}

// GetRecipesTool defines the MCP tool schema for the recipe listing.
func GetRecipesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolGetRecipes,
		Description: "Lists the recipes craftable at the current rank, gift recipes included.",
	}
}

// DebugResetDailyTool defines the MCP tool schema for resetting daily counters.
func DebugResetDailyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolDebugResetDaily,
		Description: "[debug] Resets the daily counters.",
	}
}

// DebugSetStateTool defines the MCP tool schema for forcing state fields.
func DebugSetStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolDebugSetState,
		Description: "[debug] Sets state fields directly.",
		InputSchema: mustSchema[DebugSetStateInput](func(s *jsonschema.Schema) {
			setRange(s, "phase", minPhase, maxPhase)
			setRange(s, "affection", minAffection, maxAffection)
			setRange(s, "rank", minRank, maxRank)
			setRange(s, "total_stats", 0, -1)
		}),
	}
}

// DebugForceVanishTool defines the MCP tool schema for forcing a vanish.
func DebugForceVanishTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        engine.ToolDebugForceVanish,
		Description: "[debug] Forces the companion into the vanished state.",
	}
}

// mustSchema infers the input schema of T and lets edit add descriptions and bounds.
// Inference only fails for unsupported Go types, which is a programming error.
func mustSchema[T any](edit func(*jsonschema.Schema)) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("infer schema for %T: %v", *new(T), err))
	}
	if edit != nil {
		edit(schema)
	}
	return schema
}

// describeValues appends the accepted values to a property description.
func describeValues(s *jsonschema.Schema, property string, values []string) {
	prop, ok := s.Properties[property]
	if !ok || len(values) == 0 {
		return
	}
	list := "one of: " + strings.Join(values, ", ")
	if prop.Description == "" {
		prop.Description = list
		return
	}
	prop.Description += " (" + list + ")"
}

// setRange bounds a numeric property; a negative max leaves it unbounded.
func setRange(s *jsonschema.Schema, property string, min, max float64) {
	prop, ok := s.Properties[property]
	if !ok {
		return
	}
	prop.Minimum = &min
	if max >= 0 {
		prop.Maximum = &max
	}
}
