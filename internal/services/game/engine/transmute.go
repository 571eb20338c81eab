package engine

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
)

const (
	minQuality = 1
	maxQuality = 5
)

// TransmuteInput is a classified photo.
type TransmuteInput struct {
	Material string
	Essence  string
	Quality  int
	Hint     string
}

// TransmutePhoto turns a classified photo into a material.
func (e *Engine) TransmutePhoto(ctx context.Context, playerID string, in TransmuteInput) (Response, error) {
	return e.run(ctx, ToolTransmutePhoto, playerID, func(s *player.State, now time.Time) (Response, error) {
		check := e.prelude(s, now)

		if s.DailyTransmuteCount >= e.limits.DailyTransmute {
			return Response{}, e.errorf(apperrors.CodeLimitReached, i18n.KeyTransmuteLimit, e.limits.DailyTransmute)
		}

		materialID := strings.TrimSpace(in.Material)
		essenceID := strings.TrimSpace(in.Essence)
		material, found := e.content.Material(materialID)
		if !found {
			return Response{}, e.unknown(apperrors.CodeInvalidInput, i18n.KeyUnknownMaterial, materialID, e.content.MaterialIDs())
		}
		essence, found := e.content.Essence(essenceID)
		if !found {
			return Response{}, e.unknown(apperrors.CodeInvalidInput, i18n.KeyUnknownEssence, essenceID, e.content.EssenceIDs())
		}
		if len(s.Materials) >= e.limits.MaxMaterials {
			return Response{}, e.errorf(apperrors.CodeInventoryFull, i18n.KeyMaterialsFull, e.limits.MaxMaterials)
		}

		quality := clampQuality(in.Quality)
		qualityName := ""
		if q, found := e.content.Quality(quality); found {
			qualityName = e.text(q.Name)
		}
		newID, err := e.newID("mat_", inventoryIDHexLength)
		if err != nil {
			return Response{}, err
		}
		created := player.Material{
			ID:           newID,
			MaterialType: material.ID,
			MaterialName: e.text(material.Name),
			Essence:      essence.ID,
			EssenceName:  e.text(essence.Name),
			Quality:      quality,
			QualityName:  qualityName,
			Hint:         strings.TrimSpace(in.Hint),
			CreatedAt:    now.In(rules.JST),
		}
		s.Materials = append(s.Materials, created)
		s.DailyTransmuteCount++
		rules.Touch(s, now)
		revival := e.revive(s, now)

		patch := Fields{
			"materials":             append([]player.Material{}, s.Materials...),
			"daily_transmute_count": s.DailyTransmuteCount,
			"is_vanished":           s.IsVanished,
			"has_revival_item":      s.HasRevivalItem,
		}
		hints := e.withVanish(Fields{"new_material": created, "revival": revival}, s, check)
		log := Fields{
			"action":   ToolTransmutePhoto,
			"material": material.ID,
			"essence":  essence.ID,
			"quality":  quality,
		}
		return ok(patch, hints, log, e.printer.Sprintf(i18n.KeyTransmuted, created.MaterialName, qualityName)), nil
	})
}

func clampQuality(q int) int {
	if q < minQuality {
		return minQuality
	}
	if q > maxQuality {
		return maxQuality
	}
	return q
}
