// Package engine implements the game rules behind each tool: transmutation,
// crafting, exploration, status queries and the debug maintenance operations.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/platform/id"
	"github.com/louisbranch/zenithfall/internal/platform/otel"
	"github.com/louisbranch/zenithfall/internal/random"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
	"github.com/louisbranch/zenithfall/internal/services/game/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tool names, shared with the protocol layer.
const (
	ToolStartRun              = "start_run"
	ToolTransmutePhoto        = "transmute_photo"
	ToolCraftItem             = "craft_item"
	ToolExplore               = "explore"
	ToolGetStatus             = "get_status"
	ToolGetAvailableDungeons  = "get_available_dungeons"
	ToolGetRecipes            = "get_recipes"
	ToolDebugResetDaily       = "debug_reset_daily"
	ToolDebugSetState         = "debug_set_state"
	ToolDebugForceVanish      = "debug_force_vanish"
	tracerName                = "zenithfall.engine"
	inventoryIDHexLength      = 8
	catalystInstanceHexLength = 6
)

// IDFunc generates inventory ids from a prefix and a hex length.
type IDFunc func(prefix string, n int) (string, error)

// Config configures an Engine.
type Config struct {
	Limits rules.Limits
	// Debug relaxes every limit and enables the maintenance operations.
	Debug  bool
	Locale language.Tag
	Now    func() time.Time
	Random random.Source
	NewID  IDFunc
}

// Engine runs tool calls against the player store.
type Engine struct {
	content *content.Store
	store   storage.PlayerStore
	limits  rules.Limits
	debug   bool
	locale  language.Tag
	printer *message.Printer
	now     func() time.Time
	rng     random.Source
	newID   IDFunc
	tracer  trace.Tracer
}

// New builds an Engine. Zero-valued config fields fall back to the standard
// limits, English text, the wall clock, a crypto-seeded generator and
// random hex ids.
func New(contentStore *content.Store, store storage.PlayerStore, cfg Config) (*Engine, error) {
	if contentStore == nil {
		return nil, errors.New("content store is required")
	}
	if store == nil {
		return nil, errors.New("player store is required")
	}
	limits := cfg.Limits
	if limits == (rules.Limits{}) {
		limits = rules.DefaultLimits()
	}
	if cfg.Debug {
		limits = limits.Relaxed()
	}
	locale := cfg.Locale
	if locale == language.Und {
		locale = i18n.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	rng := cfg.Random
	if rng == nil {
		seeded, err := random.NewSeeded(0)
		if err != nil {
			return nil, err
		}
		rng = seeded
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewShort
	}
	return &Engine{
		content: contentStore,
		store:   store,
		limits:  limits,
		debug:   cfg.Debug,
		locale:  locale,
		printer: i18n.Printer(locale),
		now:     now,
		rng:     rng,
		newID:   newID,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Debug reports whether maintenance operations are enabled.
func (e *Engine) Debug() bool { return e.debug }

// Limits returns the effective limits.
func (e *Engine) Limits() rules.Limits { return e.limits }

// Locale returns the narrative locale.
func (e *Engine) Locale() language.Tag { return e.locale }

// Printer returns the narrative message printer.
func (e *Engine) Printer() *message.Printer { return e.printer }

// run executes fn under the player's lock inside a tool span. Domain errors
// become failed envelopes; anything else is returned as an internal fault.
func (e *Engine) run(ctx context.Context, tool, playerID string, fn func(*player.State, time.Time) (Response, error)) (Response, error) {
	ctx, span := e.tracer.Start(ctx, tracerName+"/"+tool, trace.WithAttributes(
		attribute.String("zenithfall.tool", tool),
		attribute.String("zenithfall.player_id", playerID),
	))
	defer span.End()

	var resp Response
	err := e.store.Update(ctx, playerID, func(s *player.State) error {
		r, err := fn(s, e.now())
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		domainErr, isDomain := apperrors.As(err)
		if !isDomain || domainErr.Code.Kind() == apperrors.KindInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Response{}, err
		}
		resp = fail(domainErr)
	}
	span.SetAttributes(attribute.String("zenithfall.result_code", string(resp.Code)))
	return resp, nil
}

func (e *Engine) errorf(code apperrors.Code, key string, args ...any) *apperrors.Error {
	return apperrors.New(code, e.printer.Sprintf(key, args...))
}

// unknown builds an error for an id that is not in candidates, adding the
// closest candidate when one is near.
func (e *Engine) unknown(code apperrors.Code, key, input string, candidates []string) *apperrors.Error {
	msg := e.printer.Sprintf(key, input)
	meta := map[string]string{"input": input}
	if suggestion, found := content.Suggest(input, candidates); found {
		msg = e.printer.Sprintf(i18n.KeyDidYouMean, msg, suggestion)
		meta["suggestion"] = suggestion
	}
	return apperrors.WithMetadata(code, msg, meta)
}

func (e *Engine) text(t content.Text) string { return t.In(e.locale) }

func (e *Engine) joinNames(names []string) string {
	return strings.Join(names, i18n.ListSeparator(e.locale))
}

// prelude runs the daily reset and the vanish check that precede every
// player-facing tool.
func (e *Engine) prelude(s *player.State, now time.Time) rules.VanishCheck {
	rules.ResetIfNewDay(s, now)
	return rules.CheckVanish(s, now, e.limits.VanishDays)
}

func (e *Engine) vanishHint(s *player.State, check rules.VanishCheck) Fields {
	hint := Fields{
		"changed":     check.Changed,
		"is_vanished": check.Vanished,
		"status":      rules.Status(s),
	}
	if check.DaysInactive > 0 {
		hint["days_inactive"] = check.DaysInactive
	}
	if check.Changed {
		hint["message"] = e.printer.Sprintf(i18n.KeyVanished, s.PartnerName, check.DaysInactive)
	}
	return hint
}

// revive grants the revival item to a vanished companion and revives it.
// It returns nil when the companion was not vanished.
func (e *Engine) revive(s *player.State, now time.Time) Fields {
	result := rules.GrantAndRevive(s, now)
	if !result.Revived {
		return nil
	}
	return Fields{
		"granted": result.Granted,
		"revived": result.Revived,
		"message": e.printer.Sprintf(i18n.KeyRevived, s.PartnerName),
	}
}

// withVanish adds the vanish hint when the check changed state.
func (e *Engine) withVanish(hints Fields, s *player.State, check rules.VanishCheck) Fields {
	if check.Changed {
		hints["vanish_status"] = e.vanishHint(s, check)
	}
	return hints
}

func fullPatch(s *player.State) Fields {
	c := s.Clone()
	return Fields{
		"user_id":               c.ID,
		"race_id":               c.RaceID,
		"partner_name":          c.PartnerName,
		"phase":                 c.Phase,
		"affection":             c.Affection,
		"rank":                  c.Rank,
		"total_stats":           c.TotalStats,
		"materials":             c.Materials,
		"items":                 c.Items,
		"catalysts":             c.Catalysts,
		"daily_transmute_count": c.DailyTransmuteCount,
		"daily_explore_count":   c.DailyExploreCount,
		"daily_craft_count":     c.DailyCraftCount,
		"last_daily_reset":      c.LastDailyReset,
		"last_active_date":      c.LastActiveDate,
		"is_vanished":           c.IsVanished,
		"has_revival_item":      c.HasRevivalItem,
	}
}
