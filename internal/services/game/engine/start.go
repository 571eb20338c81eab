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

// StartRunInput starts a new game or resumes the current one.
type StartRunInput struct {
	RaceID      string
	PartnerName string
	ForceNew    bool
}

// StartRun resumes the bound companion, or binds a new one when the player
// has none or ForceNew is set.
func (e *Engine) StartRun(ctx context.Context, playerID string, in StartRunInput) (Response, error) {
	return e.run(ctx, ToolStartRun, playerID, func(s *player.State, now time.Time) (Response, error) {
		rules.ResetIfNewDay(s, now)

		if s.HasCompanion() && !in.ForceNew {
			check := rules.CheckVanish(s, now, e.limits.VanishDays)
			rules.Touch(s, now)
			msg := e.printer.Sprintf(i18n.KeyWelcomeBack, s.PartnerName)
			if s.IsVanished {
				msg = e.printer.Sprintf(i18n.KeyVanished, s.PartnerName, check.DaysInactive)
			}
			hints := Fields{
				"is_new_game":   false,
				"vanish_status": e.vanishHint(s, check),
			}
			return ok(fullPatch(s), hints, Fields{"action": ToolStartRun, "resumed": true}, msg), nil
		}

		raceID := strings.TrimSpace(in.RaceID)
		if raceID == "" {
			return Response{}, e.errorf(apperrors.CodeInvalidInput, i18n.KeyRaceRequired, strings.Join(e.content.RaceIDs(), "/"))
		}
		race, found := e.content.Race(raceID)
		if !found {
			return Response{}, e.unknown(apperrors.CodeInvalidInput, i18n.KeyUnknownRace, raceID, e.content.RaceIDs())
		}

		name := strings.TrimSpace(in.PartnerName)
		if name == "" {
			name = e.text(race.DefaultPartnerName)
		}
		if name == "" {
			name = e.printer.Sprintf(i18n.KeyDefaultPartner)
		}

		s.ResetCompanion(race.ID, name, race.BaseStatsTotal)
		s.LastActiveDate = rules.Today(now)

		hints := Fields{
			"is_new_game": true,
			"race_info": Fields{
				"id":          race.ID,
				"name":        e.text(race.Name),
				"description": e.text(race.Description),
			},
		}
		log := Fields{"action": ToolStartRun, "race_id": race.ID, "force_new": in.ForceNew}
		return ok(fullPatch(s), hints, log, e.printer.Sprintf(i18n.KeySummoned, name)), nil
	})
}
