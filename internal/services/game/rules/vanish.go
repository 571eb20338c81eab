package rules

import (
	"time"

	"github.com/louisbranch/zenithfall/internal/services/game/player"
)

// CompanionStatus is a state of the vanish/revival machine.
type CompanionStatus string

const (
	StatusBonded           CompanionStatus = "BONDED"
	StatusActive           CompanionStatus = "ACTIVE"
	StatusVanished         CompanionStatus = "VANISHED"
	StatusVanishedWithItem CompanionStatus = "VANISHED_WITH_ITEM"
)

// DefaultVanishDays is the inactivity window before a companion vanishes.
const DefaultVanishDays = 30

// Status returns the machine state for s.
func Status(s *player.State) CompanionStatus {
	switch {
	case !s.HasCompanion():
		return StatusBonded
	case s.IsVanished && s.HasRevivalItem:
		return StatusVanishedWithItem
	case s.IsVanished:
		return StatusVanished
	default:
		return StatusActive
	}
}

// VanishCheck is the outcome of CheckVanish.
type VanishCheck struct {
	Changed      bool `json:"changed"`
	Vanished     bool `json:"is_vanished"`
	DaysInactive int  `json:"days_inactive,omitempty"`
}

// CheckVanish moves an active companion to VANISHED once the last active
// date is at least days calendar days behind now. A bonded player with no
// recorded activity starts counting from today.
func CheckVanish(s *player.State, now time.Time, days int) VanishCheck {
	if !s.HasCompanion() {
		return VanishCheck{}
	}
	if s.LastActiveDate == "" {
		s.LastActiveDate = Today(now)
		return VanishCheck{Vanished: s.IsVanished}
	}
	inactive, ok := DaysBetween(s.LastActiveDate, now)
	if !ok {
		s.LastActiveDate = Today(now)
		return VanishCheck{Vanished: s.IsVanished}
	}
	if days <= 0 {
		days = DefaultVanishDays
	}
	if inactive >= days && !s.IsVanished {
		s.IsVanished = true
		s.HasRevivalItem = false
		return VanishCheck{Changed: true, Vanished: true, DaysInactive: inactive}
	}
	return VanishCheck{Vanished: s.IsVanished, DaysInactive: inactive}
}

// DaysBetween returns the whole calendar days from date to now's game date.
func DaysBetween(date string, now time.Time) (int, bool) {
	last, err := time.ParseInLocation(DateLayout, date, JST)
	if err != nil {
		return 0, false
	}
	today, _ := time.ParseInLocation(DateLayout, Today(now), JST)
	return int(today.Sub(last).Hours() / 24), true
}

// Touch records activity for an active companion. Vanished companions keep
// their stale date until revived.
func Touch(s *player.State, now time.Time) {
	if !s.HasCompanion() || s.IsVanished {
		return
	}
	s.LastActiveDate = Today(now)
}

// RevivalResult is the outcome of GrantAndRevive.
type RevivalResult struct {
	Granted bool `json:"granted"`
	Revived bool `json:"revived"`
}

// GrantAndRevive grants the revival item to a vanished companion and
// immediately consumes it, returning the companion to ACTIVE.
func GrantAndRevive(s *player.State, now time.Time) RevivalResult {
	if !s.IsVanished {
		return RevivalResult{}
	}
	// The item is granted and used within the same call.
	s.HasRevivalItem = true
	s.IsVanished = false
	s.HasRevivalItem = false
	s.LastActiveDate = Today(now)
	return RevivalResult{Granted: true, Revived: true}
}
