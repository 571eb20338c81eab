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

// Craft modes share one daily quota.
const (
	CraftNormal = "normal"
	CraftGift   = "gift"
)

const (
	genericGiftID          = "gift_generic"
	genericGiftAffection   = 2.0
	likedEssenceBonus      = 2.0
	dislikedEssencePenalty = 1.0
	qualityBonusPerStep    = 0.5
	neutralQuality         = 3.0
	minGiftAffection       = 0.5
	unknownJunkID          = "junk_unknown"
)

// CraftInput selects materials, an optional catalyst and the craft mode.
type CraftInput struct {
	MaterialIDs []string
	CatalystID  string
	CraftType   string
}

type craftOutcome struct {
	code     ResultCode
	item     Fields
	reaction string
	phaseUp  bool
	rankUp   Fields
	message  string
}

// CraftItem consumes materials and an optional catalyst to craft an item, or
// in gift mode to raise the companion's affection.
func (e *Engine) CraftItem(ctx context.Context, playerID string, in CraftInput) (Response, error) {
	return e.run(ctx, ToolCraftItem, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		if s.DailyCraftCount >= e.limits.DailyCraft {
			return Response{}, e.errorf(apperrors.CodeLimitReached, i18n.KeyCraftLimit, e.limits.DailyCraft)
		}
		if len(in.MaterialIDs) == 0 {
			return Response{}, e.errorf(apperrors.CodeInvalidInput, i18n.KeySelectMaterials)
		}
		craftType := strings.TrimSpace(in.CraftType)
		if craftType == "" {
			craftType = CraftNormal
		}
		if craftType != CraftNormal && craftType != CraftGift {
			return Response{}, e.unknown(apperrors.CodeInvalidInput, i18n.KeyUnknownCraftType, craftType, []string{CraftNormal, CraftGift})
		}

		used := make([]player.Material, 0, len(in.MaterialIDs))
		seen := make(map[string]struct{}, len(in.MaterialIDs))
		for _, materialID := range in.MaterialIDs {
			if _, dup := seen[materialID]; dup {
				return Response{}, e.errorf(apperrors.CodeInvalidInput, i18n.KeyDuplicateMaterial, materialID)
			}
			seen[materialID] = struct{}{}
			idx := s.FindMaterial(materialID)
			if idx < 0 {
				return Response{}, e.errorf(apperrors.CodeNotFound, i18n.KeyMaterialNotFound, materialID)
			}
			used = append(used, s.Materials[idx])
		}

		var catalyst *player.Catalyst
		catalystID := strings.TrimSpace(in.CatalystID)
		if catalystID != "" {
			idx := s.FindCatalyst(catalystID)
			if idx < 0 {
				return Response{}, e.errorf(apperrors.CodeNotFound, i18n.KeyCatalystNotFound, catalystID)
			}
			c := s.Catalysts[idx]
			catalyst = &c
		}

		if craftType == CraftGift && !s.HasCompanion() {
			return Response{}, e.errorf(apperrors.CodeNoCompanion, i18n.KeyNoCompanion)
		}
		if craftType == CraftNormal && len(s.Items) >= e.limits.MaxItems {
			return Response{}, e.errorf(apperrors.CodeInventoryFull, i18n.KeyItemsFull, e.limits.MaxItems)
		}

		var (
			outcome craftOutcome
			err     error
		)
		if craftType == CraftGift {
			outcome = e.craftGift(s, used)
		} else {
			outcome, err = e.craftNormal(s, used, catalyst, now)
			if err != nil {
				return Response{}, err
			}
		}

		usedIDs := make([]string, 0, len(used))
		for _, m := range used {
			usedIDs = append(usedIDs, m.ID)
		}
		s.RemoveMaterials(usedIDs)
		if catalyst != nil {
			s.RemoveCatalyst(catalyst.ID)
		}
		s.DailyCraftCount++
		rules.Touch(s, now)
		revival := e.revive(s, now)

		patch := Fields{
			"materials":         append([]player.Material{}, s.Materials...),
			"catalysts":         append([]player.Catalyst{}, s.Catalysts...),
			"items":             append([]player.Item{}, s.Items...),
			"daily_craft_count": s.DailyCraftCount,
			"affection":         s.Affection,
			"phase":             s.Phase,
			"rank":              s.Rank,
			"total_stats":       s.TotalStats,
			"is_vanished":       s.IsVanished,
			"has_revival_item":  s.HasRevivalItem,
		}
		hints := Fields{
			"craft_type":   craftType,
			"crafted_item": outcome.item,
			"phase_up":     outcome.phaseUp,
			"revival":      revival,
		}
		if outcome.reaction != "" {
			hints["reaction"] = outcome.reaction
		}
		if outcome.rankUp != nil {
			hints["rank_up"] = outcome.rankUp
		}
		hints = e.withVanish(hints, s, check)
		var catalystUsed any
		if catalyst != nil {
			catalystUsed = catalyst.ID
		}
		log := Fields{
			"action":         ToolCraftItem,
			"craft_type":     craftType,
			"materials_used": usedIDs,
			"catalyst_used":  catalystUsed,
			"result":         outcome.item,
		}
		if outcome.code == CodeSoftFail {
			return soft(patch, hints, log, outcome.message), nil
		}
		return ok(patch, hints, log, outcome.message), nil
	})
}

// tagSets unions material types and essences across the materials and the
// optional catalyst.
func tagSets(materials []player.Material, catalyst *player.Catalyst) (map[string]struct{}, map[string]struct{}) {
	types := make(map[string]struct{}, len(materials)+1)
	essences := make(map[string]struct{}, len(materials)+1)
	for _, m := range materials {
		types[m.MaterialType] = struct{}{}
		essences[m.Essence] = struct{}{}
	}
	if catalyst != nil {
		types[catalyst.Material] = struct{}{}
		essences[catalyst.Essence] = struct{}{}
	}
	return types, essences
}

func subset(required []string, have map[string]struct{}) bool {
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

func averageQuality(materials []player.Material) float64 {
	total := 0
	for _, m := range materials {
		total += m.Quality
	}
	return float64(total) / float64(len(materials))
}

// matchRecipe returns the first recipe, in table order, satisfied by the tag
// sets and unlocked at rank.
func matchRecipe(recipes []content.Recipe, types, essences map[string]struct{}, rank int) (content.Recipe, bool) {
	for _, r := range recipes {
		if subset(r.Materials, types) && subset(r.Essences, essences) && r.Rank <= rank {
			return r, true
		}
	}
	return content.Recipe{}, false
}

func (e *Engine) craftNormal(s *player.State, used []player.Material, catalyst *player.Catalyst, now time.Time) (craftOutcome, error) {
	types, essences := tagSets(used, catalyst)
	created := now.In(rules.JST)

	if recipe, found := matchRecipe(e.content.Recipes(), types, essences, s.Rank); found {
		itemID, err := e.newID("item_", inventoryIDHexLength)
		if err != nil {
			return craftOutcome{}, err
		}
		stats := make(map[string]int, len(recipe.Stats))
		for k, v := range recipe.Stats {
			stats[k] = v
		}
		item := player.Item{
			ID:        itemID,
			RecipeID:  recipe.ID,
			Name:      e.text(recipe.Name),
			Category:  recipe.Category,
			Quality:   int(math.RoundToEven(averageQuality(used))),
			Stats:     stats,
			CreatedAt: created,
		}
		s.Items = append(s.Items, item)
		s.TotalStats += recipe.StatTotal()

		msg := e.printer.Sprintf(i18n.KeyCrafted, item.Name)
		var rankUp Fields
		if next, up := rules.NextRank(s.Rank, s.TotalStats, e.content.RankRequirements()); up {
			s.Rank = next
			name := e.content.RankName(next, e.locale)
			rankUp = Fields{"new_rank": next, "rank_name": name}
			msg += " " + e.printer.Sprintf(i18n.KeyRankUp, name, next)
		}
		return craftOutcome{code: CodeOK, item: itemFields(item), rankUp: rankUp, message: msg}, nil
	}

	junkID, junkName := unknownJunkID, e.printer.Sprintf(i18n.KeyUnknownJunk)
	if junk, found := random.Pick(e.rng, e.content.JunkItems()); found {
		junkID, junkName = junk.ID, e.text(junk.Name)
	}
	itemID, err := e.newID("junk_", inventoryIDHexLength)
	if err != nil {
		return craftOutcome{}, err
	}
	item := player.Item{
		ID:        itemID,
		RecipeID:  junkID,
		Name:      junkName,
		Category:  player.CategoryJunk,
		Quality:   1,
		Stats:     map[string]int{},
		CreatedAt: created,
	}
	s.Items = append(s.Items, item)
	return craftOutcome{code: CodeSoftFail, item: itemFields(item), message: e.printer.Sprintf(i18n.KeyCraftFailed, item.Name)}, nil
}

func itemFields(item player.Item) Fields {
	return Fields{
		"item_id":   item.ID,
		"recipe_id": item.RecipeID,
		"name":      item.Name,
		"category":  item.Category,
		"quality":   item.Quality,
		"stats":     item.Stats,
	}
}

// giftAffection computes the affection gained from a gift.
func giftAffection(base float64, essences map[string]struct{}, likes, dislikes []string, avgQuality float64) (delta, bonus float64) {
	liked := make(map[string]struct{}, len(likes))
	for _, l := range likes {
		liked[l] = struct{}{}
	}
	disliked := make(map[string]struct{}, len(dislikes))
	for _, d := range dislikes {
		disliked[d] = struct{}{}
	}
	for essence := range essences {
		if _, ok := liked[essence]; ok {
			bonus += likedEssenceBonus
		} else if _, ok := disliked[essence]; ok {
			bonus -= dislikedEssencePenalty
		}
	}
	delta = base + bonus + (avgQuality-neutralQuality)*qualityBonusPerStep
	return math.Max(minGiftAffection, delta), bonus
}

func (e *Engine) craftGift(s *player.State, used []player.Material) craftOutcome {
	// Gifts draw essences from the materials alone.
	_, essences := tagSets(used, nil)

	giftID, giftName, base := genericGiftID, e.printer.Sprintf(i18n.KeyGenericGift), genericGiftAffection
	for _, g := range e.content.GiftRecipes() {
		if subset(g.Essences, essences) {
			giftID, giftName, base = g.ID, e.text(g.Name), g.BaseAffection
			break
		}
	}

	race, _ := e.content.Race(s.RaceID)
	delta, bonus := giftAffection(base, essences, race.LikeEssences, race.DislikeEssences, averageQuality(used))
	phaseUp := rules.ApplyAffection(s, delta)

	pool, fallbackKey := race.DislikeReactions, i18n.KeyReactionDislike
	if bonus > 0 {
		pool, fallbackKey = race.LikeReactions, i18n.KeyReactionLike
	}
	reaction := e.printer.Sprintf(fallbackKey)
	if picked, found := random.Pick(e.rng, pool); found {
		reaction = e.text(picked)
	}

	return craftOutcome{
		code: CodeOK,
		item: Fields{
			"gift_id":        giftID,
			"name":           giftName,
			"affection_gain": delta,
		},
		reaction: reaction,
		phaseUp:  phaseUp,
		message:  e.printer.Sprintf(i18n.KeyGiftGiven, giftName, s.PartnerName, reaction),
	}
}
