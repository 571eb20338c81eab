package content

import (
	"fmt"
	"sort"
)

// MaxRank is the highest player rank.
const MaxRank = 5

// Problem is a referential inconsistency found in loaded content.
type Problem struct {
	Subject string
	Detail  string
}

func (p Problem) String() string { return p.Subject + ": " + p.Detail }

// Validate reports referential problems between content tables. A store with
// problems still loads; missing drop-table catalysts surface as missed drops.
func (s *Store) Validate() []Problem {
	var problems []Problem
	add := func(subject, format string, args ...any) {
		problems = append(problems, Problem{Subject: subject, Detail: fmt.Sprintf(format, args...)})
	}

	for level := 1; level <= MaxRank; level++ {
		if _, ok := s.qualities[level]; !ok {
			add("quality", "level %d is missing", level)
		}
	}
	for rank := 2; rank <= MaxRank; rank++ {
		if _, ok := s.ranks[rank]; !ok {
			add("rank_requirements", "rank %d is missing", rank)
		}
	}
	for _, id := range s.raceOrder {
		race := s.races[id]
		subject := "race " + id
		for _, e := range race.LikeEssences {
			if _, ok := s.essences[e]; !ok {
				add(subject, "unknown liked essence %q", e)
			}
		}
		for _, e := range race.DislikeEssences {
			if _, ok := s.essences[e]; !ok {
				add(subject, "unknown disliked essence %q", e)
			}
		}
	}
	for _, d := range s.dungeons {
		subject := "dungeon " + d.ID
		if d.Rank > MaxRank {
			add(subject, "rank %d above %d", d.Rank, MaxRank)
		}
		if d.BaseSuccessRate < 0 || d.BaseSuccessRate > 1 {
			add(subject, "base success rate %.2f outside [0,1]", d.BaseSuccessRate)
		}
		total := 0
		for _, entry := range d.DropTable {
			total += entry.Weight
			if _, ok := s.catalysts[entry.CatalystID]; !ok {
				add(subject, "drop table catalyst %q not in catalyst list", entry.CatalystID)
			}
		}
		if total == 0 {
			add(subject, "drop table has no weight")
		}
	}
	for _, r := range s.recipes {
		subject := "recipe " + r.ID
		if r.Rank > MaxRank {
			add(subject, "rank %d above %d", r.Rank, MaxRank)
		}
		for _, m := range r.Materials {
			if _, ok := s.materials[m]; !ok {
				add(subject, "unknown material %q", m)
			}
		}
		for _, e := range r.Essences {
			if _, ok := s.essences[e]; !ok {
				add(subject, "unknown essence %q", e)
			}
		}
	}
	for _, g := range s.gifts {
		for _, e := range g.Essences {
			if _, ok := s.essences[e]; !ok {
				add("gift recipe "+g.ID, "unknown essence %q", e)
			}
		}
	}
	for _, id := range s.catOrder {
		c := s.catalysts[id]
		if _, ok := s.materials[c.Material]; !ok {
			add("catalyst "+id, "unknown material %q", c.Material)
		}
		if _, ok := s.essences[c.Essence]; !ok {
			add("catalyst "+id, "unknown essence %q", c.Essence)
		}
	}
	sort.SliceStable(problems, func(i, j int) bool { return problems[i].Subject < problems[j].Subject })
	return problems
}
