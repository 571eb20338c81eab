// Package rules holds the pure game rules: progression, the daily cycle and
// the vanish/revival state machine.
package rules

import (
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
)

// MaxAffection caps affection.
const MaxAffection = 100.0

// PhaseThresholds are the affection floors of phases 1 through 5.
var PhaseThresholds = [...]float64{0, 20, 40, 60, 80}

// Phase maps affection to a companion phase in [1,5].
func Phase(affection float64) int {
	for i, threshold := range PhaseThresholds {
		if affection < threshold {
			if i < 1 {
				return 1
			}
			return i
		}
	}
	return len(PhaseThresholds)
}

// ClampAffection bounds affection to [0, MaxAffection].
func ClampAffection(affection float64) float64 {
	switch {
	case affection < 0:
		return 0
	case affection > MaxAffection:
		return MaxAffection
	default:
		return affection
	}
}

// ApplyAffection adds delta to the player's affection and raises the phase
// when the new affection crosses a threshold. It reports whether the phase
// went up.
func ApplyAffection(s *player.State, delta float64) bool {
	s.Affection = ClampAffection(s.Affection + delta)
	next := Phase(s.Affection)
	if next > s.Phase {
		s.Phase = next
		return true
	}
	return false
}

// unmetRequirement stands in for ranks missing from content.
const unmetRequirement = 999

// NextRank walks ranks 2 through content.MaxRank and returns the first rank
// above current whose stat requirement totalStats meets. It advances at most
// one step per call.
func NextRank(current, totalStats int, requirements []content.RankRequirement) (int, bool) {
	mins := make(map[int]int, len(requirements))
	for _, r := range requirements {
		mins[r.Rank] = r.MinTotalStats
	}
	for rank := 2; rank <= content.MaxRank; rank++ {
		if rank <= current {
			continue
		}
		minStats, ok := mins[rank]
		if !ok {
			minStats = unmetRequirement
		}
		if totalStats >= minStats {
			return rank, true
		}
		return current, false
	}
	return current, false
}
