package rules

import (
	"time"

	"github.com/louisbranch/zenithfall/internal/services/game/player"
)

// DateLayout is the calendar date format stored on player state.
const DateLayout = "2006-01-02"

// JST is the fixed UTC+9 zone of the game calendar.
var JST = time.FixedZone("JST", 9*60*60)

// Today returns the game calendar date for now.
func Today(now time.Time) string {
	return now.In(JST).Format(DateLayout)
}

// ResetIfNewDay zeroes the daily counters the first time it sees a new game
// calendar day. It reports whether a reset happened.
func ResetIfNewDay(s *player.State, now time.Time) bool {
	today := Today(now)
	if s.LastDailyReset == today {
		return false
	}
	ResetDaily(s)
	s.LastDailyReset = today
	return true
}

// ResetDaily zeroes the daily counters without touching the reset date.
func ResetDaily(s *player.State) {
	s.DailyTransmuteCount = 0
	s.DailyExploreCount = 0
	s.DailyCraftCount = 0
}
