package engine

import (
	"context"
	"math"
	"strings"
	"time"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/random"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
)

// Support styles.
const (
	StyleHeal  = "heal"
	StyleGuard = "guard"
	StyleNone  = "none"
)

const (
	exploreTurns         = 3
	bossTurn             = 3
	encounterChance      = 0.5
	normalEnemyBonus     = 0.10
	baselineStats        = player.DefaultTotalStats
	exploreAffectionGain = 1.0
	fallbackSuggestion   = "control"
	namedDropsInMessage  = 3
)

// treasureCounts and treasureProbs define the post-run treasure roll.
var (
	treasureCounts = [...]int{2, 3, 4}
	treasureProbs  = [...]float64{0.60, 0.30, 0.10}
)

// ExploreInput selects a dungeon and a support style.
type ExploreInput struct {
	DungeonID string
	Style     string
}

// TurnLog records one exploration turn. Drops counts catalysts gained and
// Missed counts rolls that resolved to no catalyst.
type TurnLog struct {
	Turn     int    `json:"turn"`
	Enemy    bool   `json:"enemy_encountered"`
	Boss     bool   `json:"is_boss"`
	Survived bool   `json:"survived"`
	Drops    int    `json:"drops"`
	Missed   int    `json:"missed"`
	Message  string `json:"message"`
}

type dropRoller struct {
	e       *Engine
	dungeon content.Dungeon
	weights []int
	now     time.Time
	missed  int
}

// roll draws one catalyst from the dungeon table. Ids missing from the
// catalyst master list count as a miss.
func (r *dropRoller) roll(primary bool) (player.Catalyst, bool, error) {
	idx, found := random.Weighted(r.e.rng, r.weights)
	if !found {
		r.missed++
		return player.Catalyst{}, false, nil
	}
	baseID := r.dungeon.DropTable[idx].CatalystID
	master, found := r.e.content.Catalyst(baseID)
	if !found {
		r.missed++
		return player.Catalyst{}, false, nil
	}
	instanceID, err := r.e.newID(baseID+"_", catalystInstanceHexLength)
	if err != nil {
		return player.Catalyst{}, false, err
	}
	return player.Catalyst{
		ID:             instanceID,
		BaseCatalystID: baseID,
		Name:           r.e.text(master.Name),
		Material:       master.Material,
		Essence:        master.Essence,
		IsPrimary:      primary,
		ObtainedAt:     r.now.In(rules.JST),
	}, true, nil
}

// rollMany rolls one drop per entry of tiers.
func (r *dropRoller) rollMany(tiers ...bool) ([]player.Catalyst, int, error) {
	before := r.missed
	var drops []player.Catalyst
	for _, primary := range tiers {
		drop, found, err := r.roll(primary)
		if err != nil {
			return nil, 0, err
		}
		if found {
			drops = append(drops, drop)
		}
	}
	return drops, r.missed - before, nil
}

// Explore runs a three-turn dungeon expedition.
func (e *Engine) Explore(ctx context.Context, playerID string, in ExploreInput) (Response, error) {
	return e.run(ctx, ToolExplore, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		if !s.HasCompanion() {
			return Response{}, e.errorf(apperrors.CodeNoCompanion, i18n.KeyNoCompanion)
		}
		if s.IsVanished {
			return Response{}, e.errorf(apperrors.CodeCompanionVanished, i18n.KeyExploreVanished, s.PartnerName)
		}
		if s.DailyExploreCount >= e.limits.DailyExplore {
			return Response{}, e.errorf(apperrors.CodeLimitReached, i18n.KeyExploreLimit, e.limits.DailyExplore)
		}
		dungeonID := strings.TrimSpace(in.DungeonID)
		dungeon, found := e.content.Dungeon(dungeonID)
		if !found {
			return Response{}, e.unknown(apperrors.CodeNotFound, i18n.KeyDungeonNotFound, dungeonID, e.content.DungeonIDs())
		}
		if dungeon.Rank > s.Rank {
			return Response{}, e.errorf(apperrors.CodeRankTooLow, i18n.KeyRankTooLow, dungeon.Rank, s.Rank)
		}
		// Any style other than heal or guard fights without support.
		style := strings.TrimSpace(in.Style)
		mods := e.content.Exploration()
		rate := dungeon.BaseSuccessRate
		switch style {
		case StyleHeal:
			rate += mods.HealBonus
		case StyleGuard:
			rate += mods.GuardBonus
		default:
			style = StyleNone
		}
		rate += math.Min(float64(s.TotalStats-baselineStats)*mods.PerStatPoint, mods.EquipmentCap)

		return e.expedition(s, now, check, dungeon, style, rate)
	})
}

func (e *Engine) expedition(s *player.State, now time.Time, check rules.VanishCheck, dungeon content.Dungeon, style string, rate float64) (Response, error) {
	weights := make([]int, len(dungeon.DropTable))
	for i, entry := range dungeon.DropTable {
		weights[i] = entry.Weight
	}
	roller := &dropRoller{e: e, dungeon: dungeon, weights: weights, now: now}
	rules.Touch(s, now)

	var (
		turns   []TurnLog
		drops   []player.Catalyst
		success = true
	)
	for turn := 1; turn <= exploreTurns; turn++ {
		turnLog, gained, err := e.exploreTurn(turn, rate, roller)
		if err != nil {
			return Response{}, err
		}
		turns = append(turns, turnLog)
		drops = append(drops, gained...)
		if !turnLog.Survived {
			success = false
			break
		}
	}

	var treasure []player.Catalyst
	if success {
		count := e.treasureCount()
		tiers := make([]bool, count)
		for i := range tiers {
			tiers[i] = e.rng.Intn(2) == 0
		}
		gained, _, err := roller.rollMany(tiers...)
		if err != nil {
			return Response{}, err
		}
		treasure = gained
		drops = append(drops, treasure...)
	}

	kept, overflow := drops, 0
	if room := e.limits.MaxCatalysts - len(s.Catalysts); len(drops) > room {
		if room < 0 {
			room = 0
		}
		kept, overflow = drops[:room], len(drops)-room
	}
	s.Catalysts = append(s.Catalysts, kept...)
	s.DailyExploreCount++

	phaseUp := false
	if success {
		phaseUp = rules.ApplyAffection(s, exploreAffectionGain)
	}

	dropIDs := make([]string, 0, len(kept))
	for _, d := range kept {
		dropIDs = append(dropIDs, d.BaseCatalystID)
	}
	result := "failure"
	if success {
		result = "success"
	}
	hints := Fields{
		"result":          result,
		"phase_up":        phaseUp,
		"success_rate":    rate,
		"exploration_log": turns,
		"treasure_count":  len(treasure),
		"total_drops":     len(kept),
		"missed_drops":    roller.missed,
		"overflow":        overflow,
		"suggest_next":    nil,
	}
	if success {
		hints["suggest_next"] = e.suggestNext(s)
	}
	hints = e.withVanish(hints, s, check)
	patch := Fields{
		"catalysts":           append([]player.Catalyst{}, s.Catalysts...),
		"affection":           s.Affection,
		"phase":               s.Phase,
		"daily_explore_count": s.DailyExploreCount,
	}
	log := Fields{
		"action":          ToolExplore,
		"dungeon_id":      dungeon.ID,
		"style":           style,
		"success":         success,
		"turns_completed": len(turns),
		"drops":           dropIDs,
	}
	msg := e.exploreMessage(success, kept)
	if overflow > 0 {
		msg += " " + e.printer.Sprintf(i18n.KeyCatalystsLost, overflow)
	}
	if success {
		return ok(patch, hints, log, msg), nil
	}
	return soft(patch, hints, log, msg), nil
}

// exploreTurn plays one turn. Turns before the boss meet an enemy half the
// time and fight it at a bonus; the boss turn always fights at the base rate.
func (e *Engine) exploreTurn(turn int, rate float64, roller *dropRoller) (TurnLog, []player.Catalyst, error) {
	log := TurnLog{Turn: turn, Boss: turn == bossTurn, Survived: true}
	var tiers []bool

	switch {
	case log.Boss:
		log.Enemy = true
		if e.rng.Float64() >= rate {
			log.Survived = false
			log.Message = e.printer.Sprintf(i18n.KeyBossDefeat)
			return log, nil, nil
		}
		tiers = []bool{true, true, false}
		log.Message = e.printer.Sprintf(i18n.KeyBossWin)
	case e.rng.Float64() < encounterChance:
		log.Enemy = true
		if e.rng.Float64() >= rate+normalEnemyBonus {
			log.Survived = false
			log.Message = e.printer.Sprintf(i18n.KeyTurnDefeat, turn)
			return log, nil, nil
		}
		tiers = []bool{true, false}
		log.Message = e.printer.Sprintf(i18n.KeyTurnWin, turn)
	default:
		tiers = []bool{true}
		log.Message = e.printer.Sprintf(i18n.KeyTurnQuiet, turn)
	}

	drops, missed, err := roller.rollMany(tiers...)
	if err != nil {
		return TurnLog{}, nil, err
	}
	log.Drops = len(drops)
	log.Missed = missed
	return log, drops, nil
}

func (e *Engine) treasureCount() int {
	roll := e.rng.Float64()
	cumulative := 0.0
	for i, p := range treasureProbs {
		cumulative += p
		if roll < cumulative {
			return treasureCounts[i]
		}
	}
	return treasureCounts[len(treasureCounts)-1]
}

func (e *Engine) suggestNext(s *player.State) Fields {
	race, _ := e.content.Race(s.RaceID)
	essence, found := random.Pick(e.rng, race.LikeEssences)
	if !found {
		essence = fallbackSuggestion
	}
	label := essence
	if term, found := e.content.Essence(essence); found {
		label = e.text(term.Name)
	}
	return Fields{
		"action":       ToolTransmutePhoto,
		"reason":       e.printer.Sprintf(i18n.KeySuggestNext, label),
		"essence_hint": essence,
	}
}

func (e *Engine) exploreMessage(success bool, drops []player.Catalyst) string {
	if !success {
		return e.printer.Sprintf(i18n.KeyExploreFailed)
	}
	if len(drops) == 0 {
		return e.printer.Sprintf(i18n.KeyExploreEmpty)
	}
	names := make([]string, 0, namedDropsInMessage)
	for i := 0; i < len(drops) && i < namedDropsInMessage; i++ {
		names = append(names, drops[i].Name)
	}
	if len(drops) > namedDropsInMessage {
		return e.printer.Sprintf(i18n.KeyExploreManyDrops, e.joinNames(names), len(drops))
	}
	return e.printer.Sprintf(i18n.KeyExploreFewDrops, e.joinNames(names))
}
