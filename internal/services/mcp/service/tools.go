package service

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/zenithfall/internal/platform/id"
	"github.com/louisbranch/zenithfall/internal/platform/requestctx"
	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/louisbranch/zenithfall/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	gameplayToolsModuleName = "gameplay-tools"
	listingToolsModuleName  = "listing-tools"
	debugToolsModuleName    = "debug-tools"
)

type registrationModule struct {
	name      string
	debugOnly bool
	register  func(*Server) error
}

func newRegistrationModules(vocab domain.Vocabulary) []registrationModule {
	return []registrationModule{
		{
			name: gameplayToolsModuleName,
			register: func(s *Server) error {
				if err := registerTool(s, domain.StartRunTool(vocab), domain.StartRunHandler(s.game, s.players)); err != nil {
					return err
				}
				if err := registerTool(s, domain.TransmutePhotoTool(vocab), domain.TransmutePhotoHandler(s.game, s.players)); err != nil {
					return err
				}
				if err := registerTool(s, domain.CraftItemTool(), domain.CraftItemHandler(s.game, s.players)); err != nil {
					return err
				}
				return registerTool(s, domain.ExploreTool(), domain.ExploreHandler(s.game, s.players))
			},
		},
		{
			name: listingToolsModuleName,
			register: func(s *Server) error {
				if err := registerTool(s, domain.GetStatusTool(), domain.GetStatusHandler(s.game, s.players)); err != nil {
					return err
				}
				if err := registerTool(s, domain.GetAvailableDungeonsTool(), domain.GetAvailableDungeonsHandler(s.game, s.players)); err != nil {
					return err
				}
				return registerTool(s, domain.GetRecipesTool(), domain.GetRecipesHandler(s.game, s.players))
			},
		},
		{
			name:      debugToolsModuleName,
			debugOnly: true,
			register: func(s *Server) error {
				if err := registerTool(s, domain.DebugResetDailyTool(), domain.DebugResetDailyHandler(s.game, s.players)); err != nil {
					return err
				}
				if err := registerTool(s, domain.DebugSetStateTool(), domain.DebugSetStateHandler(s.game, s.players)); err != nil {
					return err
				}
				return registerTool(s, domain.DebugForceVanishTool(), domain.DebugForceVanishHandler(s.game, s.players))
			},
		},
	}
}

func registerTool[In any](s *Server, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, engine.Response]) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	if handler == nil {
		return fmt.Errorf("tool %q has no handler", tool.Name)
	}
	mcp.AddTool(s.mcpServer, tool, logToolCalls(s.logger, s.players, tool.Name, handler))
	return nil
}

// logToolCalls binds the player and an invocation id to the call context and
// writes one "tool call" entry per invocation.
func logToolCalls[In any](logger *zap.Logger, players domain.PlayerResolver, tool string, handler mcp.ToolHandlerFor[In, engine.Response]) mcp.ToolHandlerFor[In, engine.Response] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, engine.Response, error) {
		invocationID, err := id.NewID()
		if err != nil {
			return nil, engine.Response{}, fmt.Errorf("generate invocation id: %w", err)
		}
		playerID := players.Resolve(ctx, req)
		ctx = requestctx.WithInvocationID(requestctx.WithPlayerID(ctx, playerID), invocationID)

		start := time.Now()
		result, resp, err := handler(ctx, req, input)
		fields := []zap.Field{
			zap.String("tool", tool),
			zap.String("player_id", playerID),
			zap.String("invocation_id", invocationID),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Error("tool call", append(fields, zap.Error(err))...)
			return result, resp, err
		}
		fields = append(fields, zap.String("code", string(resp.Code)), zap.Bool("ok", resp.OK))
		if resp.ErrorCode != "" {
			fields = append(fields, zap.String("error_code", resp.ErrorCode))
		}
		logger.Info("tool call", fields...)
		return result, resp, nil
	}
}
