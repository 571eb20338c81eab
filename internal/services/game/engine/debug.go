package engine

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
)

// StateOverride lists the fields the debug tools may set. Nil fields are
// left unchanged.
type StateOverride struct {
	Phase          *int
	Affection      *float64
	Rank           *int
	TotalStats     *int
	IsVanished     *bool
	HasRevivalItem *bool
}

// Validate checks the override against s, the state it will be applied to.
func (o StateOverride) Validate(s *player.State) error {
	if o.Phase != nil && (*o.Phase < 1 || *o.Phase > len(rules.PhaseThresholds)) {
		return fmt.Errorf("phase %d outside 1-%d", *o.Phase, len(rules.PhaseThresholds))
	}
	if o.Affection != nil && (*o.Affection < 0 || *o.Affection > rules.MaxAffection) {
		return fmt.Errorf("affection %.1f outside 0-%.0f", *o.Affection, rules.MaxAffection)
	}
	if o.Rank != nil && (*o.Rank < 1 || *o.Rank > content.MaxRank) {
		return fmt.Errorf("rank %d outside 1-%d", *o.Rank, content.MaxRank)
	}
	if o.TotalStats != nil && *o.TotalStats < 0 {
		return fmt.Errorf("total_stats %d is negative", *o.TotalStats)
	}
	vanished := s.IsVanished
	if o.IsVanished != nil {
		vanished = *o.IsVanished
	}
	revival := s.HasRevivalItem
	if o.HasRevivalItem != nil {
		revival = *o.HasRevivalItem
	}
	if revival && !vanished {
		return fmt.Errorf("has_revival_item requires is_vanished")
	}
	return nil
}

// Apply writes the set fields onto s.
func (o StateOverride) Apply(s *player.State) {
	if o.Phase != nil {
		s.Phase = *o.Phase
	}
	if o.Affection != nil {
		s.Affection = *o.Affection
	}
	if o.Rank != nil {
		s.Rank = *o.Rank
	}
	if o.TotalStats != nil {
		s.TotalStats = *o.TotalStats
	}
	if o.IsVanished != nil {
		s.IsVanished = *o.IsVanished
	}
	if o.HasRevivalItem != nil {
		s.HasRevivalItem = *o.HasRevivalItem
	}
}

func (e *Engine) debugRun(ctx context.Context, tool, playerID string, fn func(*player.State, time.Time) (Response, error)) (Response, error) {
	if !e.debug {
		return e.run(ctx, tool, playerID, func(*player.State, time.Time) (Response, error) {
			return Response{}, e.errorf(apperrors.CodeDebugDisabled, i18n.KeyDebugDisabled)
		})
	}
	return e.run(ctx, tool, playerID, fn)
}

// DebugResetDaily zeroes the daily counters and forgets the reset date.
func (e *Engine) DebugResetDaily(ctx context.Context, playerID string) (Response, error) {
	return e.debugRun(ctx, ToolDebugResetDaily, playerID, func(s *player.State, _ time.Time) (Response, error) {
		rules.ResetDaily(s)
		s.LastDailyReset = ""
		return ok(fullPatch(s), nil, Fields{"action": ToolDebugResetDaily}, e.printer.Sprintf(i18n.KeyDebugResetDaily)), nil
	})
}

// DebugSetState applies a validated override.
func (e *Engine) DebugSetState(ctx context.Context, playerID string, override StateOverride) (Response, error) {
	return e.debugRun(ctx, ToolDebugSetState, playerID, func(s *player.State, _ time.Time) (Response, error) {
		if err := override.Validate(s); err != nil {
			return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, e.printer.Sprintf(i18n.KeyDebugInvalidOverride, err.Error()), err)
		}
		override.Apply(s)
		return ok(fullPatch(s), nil, Fields{"action": ToolDebugSetState}, e.printer.Sprintf(i18n.KeyDebugStateUpdated)), nil
	})
}

// DebugForceVanish puts the companion into the vanished state.
func (e *Engine) DebugForceVanish(ctx context.Context, playerID string) (Response, error) {
	return e.debugRun(ctx, ToolDebugForceVanish, playerID, func(s *player.State, _ time.Time) (Response, error) {
		s.IsVanished = true
		s.HasRevivalItem = false
		return ok(fullPatch(s), nil, Fields{"action": ToolDebugForceVanish}, e.printer.Sprintf(i18n.KeyDebugForceVanish)), nil
	})
}
