package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
)

// Status returns the full player state with race details and quota usage.
func (e *Engine) Status(ctx context.Context, playerID string) (Response, error) {
	return e.run(ctx, ToolGetStatus, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		hints := Fields{
			"race_info":        e.raceInfo(s.RaceID),
			"vanish_status":    e.vanishHint(s, check),
			"companion_status": rules.Status(s),
			"rank_name":        e.content.RankName(s.Rank, e.locale),
			"limits": Fields{
				"transmute": fmt.Sprintf("%d/%d", s.DailyTransmuteCount, e.limits.DailyTransmute),
				"craft":     fmt.Sprintf("%d/%d", s.DailyCraftCount, e.limits.DailyCraft),
				"explore":   fmt.Sprintf("%d/%d", s.DailyExploreCount, e.limits.DailyExplore),
			},
			"inventory": Fields{
				"materials": fmt.Sprintf("%d/%d", len(s.Materials), e.limits.MaxMaterials),
				"items":     fmt.Sprintf("%d/%d", len(s.Items), e.limits.MaxItems),
				"catalysts": fmt.Sprintf("%d/%d", len(s.Catalysts), e.limits.MaxCatalysts),
			},
		}
		msg := ""
		if check.Changed {
			msg = e.printer.Sprintf(i18n.KeyVanished, s.PartnerName, check.DaysInactive)
		}
		return ok(fullPatch(s), hints, nil, msg), nil
	})
}

func (e *Engine) raceInfo(raceID string) Fields {
	race, found := e.content.Race(raceID)
	if !found {
		return Fields{}
	}
	return Fields{
		"id":               race.ID,
		"name":             e.text(race.Name),
		"description":      e.text(race.Description),
		"base_stats_total": race.BaseStatsTotal,
		"like_essences":    append([]string{}, race.LikeEssences...),
		"dislike_essences": append([]string{}, race.DislikeEssences...),
	}
}

// AvailableDungeons lists the dungeons unlocked at the player's rank.
func (e *Engine) AvailableDungeons(ctx context.Context, playerID string) (Response, error) {
	return e.run(ctx, ToolGetAvailableDungeons, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		available := []Fields{}
		for _, d := range e.content.Dungeons() {
			if d.Rank > s.Rank {
				continue
			}
			available = append(available, Fields{
				"id":                d.ID,
				"name":              e.text(d.Name),
				"rank":              d.Rank,
				"difficulty":        d.Difficulty,
				"base_success_rate": d.BaseSuccessRate,
				"description":       e.text(d.Description),
			})
		}
		hints := e.withVanish(Fields{"dungeons": available, "current_rank": s.Rank}, s, check)
		return ok(nil, hints, nil, ""), nil
	})
}

// Recipes lists the normal recipes unlocked at the player's rank followed by
// every gift recipe.
func (e *Engine) Recipes(ctx context.Context, playerID string) (Response, error) {
	return e.run(ctx, ToolGetRecipes, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		available := []Fields{}
		for _, r := range e.content.Recipes() {
			if r.Rank > s.Rank {
				continue
			}
			available = append(available, Fields{
				"id":       r.ID,
				"name":     e.text(r.Name),
				"category": r.Category,
				"rank":     r.Rank,
				"required_attributes": Fields{
					"materials": append([]string{}, r.Materials...),
					"essences":  append([]string{}, r.Essences...),
				},
				"stats":       r.Stats,
				"description": e.text(r.Description),
			})
		}
		for _, g := range e.content.GiftRecipes() {
			available = append(available, Fields{
				"id":       g.ID,
				"name":     e.text(g.Name),
				"category": CraftGift,
				"required_attributes": Fields{
					"essences": append([]string{}, g.Essences...),
				},
				"base_affection": g.BaseAffection,
			})
		}
		hints := e.withVanish(Fields{"recipes": available, "current_rank": s.Rank}, s, check)
		return ok(nil, hints, nil, ""), nil
	})
}
