package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/message"
)

// Game is the engine facade the tool handlers call.
type Game interface {
	StartRun(ctx context.Context, playerID string, in engine.StartRunInput) (engine.Response, error)
	TransmutePhoto(ctx context.Context, playerID string, in engine.TransmuteInput) (engine.Response, error)
	CraftItem(ctx context.Context, playerID string, in engine.CraftInput) (engine.Response, error)
	Explore(ctx context.Context, playerID string, in engine.ExploreInput) (engine.Response, error)
	Status(ctx context.Context, playerID string) (engine.Response, error)
	AvailableDungeons(ctx context.Context, playerID string) (engine.Response, error)
	Recipes(ctx context.Context, playerID string) (engine.Response, error)
	DebugResetDaily(ctx context.Context, playerID string) (engine.Response, error)
	DebugSetState(ctx context.Context, playerID string, override engine.StateOverride) (engine.Response, error)
	DebugForceVanish(ctx context.Context, playerID string) (engine.Response, error)
	Printer() *message.Printer
}

// StartRunHandler executes a start or resume request.
func StartRunHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[StartRunInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StartRunInput) (*mcp.CallToolResult, engine.Response, error) {
		resp, err := game.StartRun(ctx, players.Resolve(ctx, req), engine.StartRunInput{
			RaceID:      input.RaceID,
			PartnerName: input.PartnerName,
			ForceNew:    input.ForceNew,
		})
		return respond(game, resp, err, "start run")
	}
}

// TransmutePhotoHandler executes a photo transmutation. A missing quality
// counts as common.
func TransmutePhotoHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[TransmutePhotoInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TransmutePhotoInput) (*mcp.CallToolResult, engine.Response, error) {
		quality := defaultTransmuteQuality
		if input.Quality != nil {
			quality = *input.Quality
		}
		resp, err := game.TransmutePhoto(ctx, players.Resolve(ctx, req), engine.TransmuteInput{
			Material: input.Material,
			Essence:  input.Essence,
			Quality:  quality,
			Hint:     input.Hint,
		})
		return respond(game, resp, err, "transmute photo")
	}
}

// CraftItemHandler executes a normal or gift craft.
func CraftItemHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[CraftItemInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CraftItemInput) (*mcp.CallToolResult, engine.Response, error) {
		resp, err := game.CraftItem(ctx, players.Resolve(ctx, req), engine.CraftInput{
			MaterialIDs: input.MaterialIDs,
			CatalystID:  input.CatalystID,
			CraftType:   input.CraftType,
		})
		return respond(game, resp, err, "craft item")
	}
}

// ExploreHandler executes a dungeon expedition.
func ExploreHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[ExploreInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExploreInput) (*mcp.CallToolResult, engine.Response, error) {
		resp, err := game.Explore(ctx, players.Resolve(ctx, req), engine.ExploreInput{
			DungeonID: input.DungeonID,
			Style:     input.Style,
		})
		return respond(game, resp, err, "explore")
	}
}

// GetStatusHandler returns the player's status.
func GetStatusHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return playerOnly(game, players, game.Status, "get status")
}

// GetAvailableDungeonsHandler lists the dungeons open to the player.
func GetAvailableDungeonsHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return playerOnly(game, players, game.AvailableDungeons, "get available dungeons")
}

// GetRecipesHandler lists the recipes open to the player.
func GetRecipesHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return playerOnly(game, players, game.Recipes, "get recipes")
}

// DebugResetDailyHandler resets the player's daily counters.
func DebugResetDailyHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return playerOnly(game, players, game.DebugResetDaily, "debug reset daily")
}

// DebugForceVanishHandler forces the companion to vanish.
func DebugForceVanishHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return playerOnly(game, players, game.DebugForceVanish, "debug force vanish")
}

// DebugSetStateHandler forces state fields.
func DebugSetStateHandler(game Game, players PlayerResolver) mcp.ToolHandlerFor[DebugSetStateInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DebugSetStateInput) (*mcp.CallToolResult, engine.Response, error) {
		resp, err := game.DebugSetState(ctx, players.Resolve(ctx, req), engine.StateOverride{
			Phase:          input.Phase,
			Affection:      input.Affection,
			Rank:           input.Rank,
			TotalStats:     input.TotalStats,
			IsVanished:     input.IsVanished,
			HasRevivalItem: input.HasRevivalItem,
		})
		return respond(game, resp, err, "debug set state")
	}
}

func playerOnly(game Game, players PlayerResolver, call func(context.Context, string) (engine.Response, error), action string) mcp.ToolHandlerFor[EmptyInput, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, engine.Response, error) {
		resp, err := call(ctx, players.Resolve(ctx, req))
		return respond(game, resp, err, action)
	}
}

// respond renders a domain envelope. Internal faults surface as handler
// errors rather than envelopes.
func respond(game Game, resp engine.Response, err error, action string) (*mcp.CallToolResult, engine.Response, error) {
	if err != nil {
		return nil, engine.Response{}, fmt.Errorf("%s failed: %w", action, err)
	}
	return ToolResult(game.Printer(), resp), resp, nil
}
