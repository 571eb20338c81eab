// Package player defines the per-player save state.
package player

import "time"

// Material is a transmuted photo.
type Material struct {
	ID           string    `json:"material_id"`
	MaterialType string    `json:"material_type"`
	MaterialName string    `json:"material_name"`
	Essence      string    `json:"essence"`
	EssenceName  string    `json:"essence_name"`
	Quality      int       `json:"quality"`
	QualityName  string    `json:"quality_name"`
	Hint         string    `json:"hint,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Item is a crafted item or a junk item.
type Item struct {
	ID        string         `json:"item_id"`
	RecipeID  string         `json:"recipe_id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Quality   int            `json:"quality"`
	Stats     map[string]int `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
}

// CategoryJunk marks failed-craft items.
const CategoryJunk = "junk"

// Catalyst is a dungeon drop held in inventory.
type Catalyst struct {
	ID             string    `json:"catalyst_id"`
	BaseCatalystID string    `json:"base_catalyst_id"`
	Name           string    `json:"name"`
	Material       string    `json:"material"`
	Essence        string    `json:"essence"`
	IsPrimary      bool      `json:"is_primary"`
	ObtainedAt     time.Time `json:"obtained_at"`
}

// DefaultTotalStats is the stat total of a player without a companion.
const DefaultTotalStats = 40

// State is one player's save data.
type State struct {
	ID string `json:"user_id"`

	RaceID      string  `json:"race_id"`
	PartnerName string  `json:"partner_name"`
	Phase       int     `json:"phase"`
	Affection   float64 `json:"affection"`

	Rank       int `json:"rank"`
	TotalStats int `json:"total_stats"`

	Materials []Material `json:"materials"`
	Items     []Item     `json:"items"`
	Catalysts []Catalyst `json:"catalysts"`

	DailyTransmuteCount int    `json:"daily_transmute_count"`
	DailyExploreCount   int    `json:"daily_explore_count"`
	DailyCraftCount     int    `json:"daily_craft_count"`
	LastDailyReset      string `json:"last_daily_reset"`

	LastActiveDate string `json:"last_active_date"`
	IsVanished     bool   `json:"is_vanished"`
	HasRevivalItem bool   `json:"has_revival_item"`
}

// New returns the default state for a player that has never played.
func New(id string) *State {
	return &State{
		ID:         id,
		Phase:      1,
		Rank:       1,
		TotalStats: DefaultTotalStats,
		Materials:  []Material{},
		Items:      []Item{},
		Catalysts:  []Catalyst{},
	}
}

// HasCompanion reports whether a companion is bound.
func (s *State) HasCompanion() bool { return s.RaceID != "" }

// ResetCompanion binds a new companion and clears progression and
// inventories. Daily counters and reset bookkeeping are kept.
func (s *State) ResetCompanion(raceID, partnerName string, baseStats int) {
	s.RaceID = raceID
	s.PartnerName = partnerName
	s.Phase = 1
	s.Affection = 0
	s.Rank = 1
	s.TotalStats = baseStats
	s.Materials = []Material{}
	s.Items = []Item{}
	s.Catalysts = []Catalyst{}
	s.IsVanished = false
	s.HasRevivalItem = false
}

// FindMaterial returns the index of the material with id, or -1.
func (s *State) FindMaterial(id string) int {
	for i, m := range s.Materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// FindCatalyst returns the index of the catalyst with id, or -1.
func (s *State) FindCatalyst(id string) int {
	for i, c := range s.Catalysts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// RemoveMaterials drops every material whose id is in ids, keeping order.
func (s *State) RemoveMaterials(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.Materials[:0]
	for _, m := range s.Materials {
		if _, ok := drop[m.ID]; !ok {
			kept = append(kept, m)
		}
	}
	s.Materials = kept
}

// RemoveCatalyst drops the catalyst with id.
func (s *State) RemoveCatalyst(id string) {
	if i := s.FindCatalyst(id); i >= 0 {
		s.Catalysts = append(s.Catalysts[:i], s.Catalysts[i+1:]...)
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Materials = append([]Material{}, s.Materials...)
	out.Catalysts = append([]Catalyst{}, s.Catalysts...)
	out.Items = make([]Item, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item
		if item.Stats != nil {
			stats := make(map[string]int, len(item.Stats))
			for k, v := range item.Stats {
				stats[k] = v
			}
			out.Items[i].Stats = stats
		}
	}
	return &out
}
