// Package content holds the immutable master data for the game: races,
// dungeons, recipes, catalysts and the photo classification vocabulary.
package content

import (
	"sort"
	"strconv"

	"golang.org/x/text/language"
)

// Text is a display string carried in every supported locale.
type Text struct {
	EN string `json:"en"`
	JA string `json:"ja"`
}

// In returns the string for tag, falling back to whichever locale is set.
func (t Text) In(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "ja" && t.JA != "" {
		return t.JA
	}
	if t.EN != "" {
		return t.EN
	}
	return t.JA
}

// Term is one entry of the material or essence vocabulary.
type Term struct {
	ID   string
	Name Text
}

// Quality is a named quality level.
type Quality struct {
	Level int
	Name  Text
}

// Race is a companion race.
type Race struct {
	ID                 string
	Name               Text
	DefaultPartnerName Text
	Description        Text
	BaseStatsTotal     int
	LikeEssences       []string
	DislikeEssences    []string
	LikeReactions      []Text
	DislikeReactions   []Text
}

// DropEntry is one weighted row of a dungeon drop table.
type DropEntry struct {
	CatalystID string
	Weight     int
}

// Dungeon is an explorable location.
type Dungeon struct {
	ID              string
	Name            Text
	Rank            int
	Difficulty      string
	BaseSuccessRate float64
	Description     Text
	DropTable       []DropEntry
}

// Recipe is a normal crafting recipe.
type Recipe struct {
	ID          string
	Name        Text
	Category    string
	Rank        int
	Materials   []string
	Essences    []string
	Stats       map[string]int
	Description Text
}

// StatTotal sums the recipe's output stats.
func (r Recipe) StatTotal() int {
	total := 0
	for _, v := range r.Stats {
		total += v
	}
	return total
}

// GiftRecipe is a gift crafting recipe.
type GiftRecipe struct {
	ID            string
	Name          Text
	Essences      []string
	BaseAffection float64
}

// JunkItem is a failed-craft outcome.
type JunkItem struct {
	ID   string
	Name Text
}

// Catalyst is a catalyst master record.
type Catalyst struct {
	ID       string
	Name     Text
	Material string
	Essence  string
	Rank     int
}

// RankRequirement is the stat threshold for a rank.
type RankRequirement struct {
	Rank          int
	Name          Text
	MinTotalStats int
}

// ExplorationRules are the success-rate modifiers used by exploration.
type ExplorationRules struct {
	HealBonus    float64
	GuardBonus   float64
	PerStatPoint float64
	EquipmentCap float64
}

// Store is the read-only content lookup service.
type Store struct {
	races       map[string]Race
	raceOrder   []string
	dungeons    []Dungeon
	recipes     []Recipe
	gifts       []GiftRecipe
	junk        []JunkItem
	catalysts   map[string]Catalyst
	catOrder    []string
	materials   map[string]Term
	matOrder    []string
	essences    map[string]Term
	essOrder    []string
	qualities   map[int]Quality
	ranks       map[int]RankRequirement
	exploration ExplorationRules
}

// Race returns the race with id.
func (s *Store) Race(id string) (Race, bool) {
	r, ok := s.races[id]
	return r, ok
}

// RaceIDs returns race ids in content order.
func (s *Store) RaceIDs() []string { return append([]string(nil), s.raceOrder...) }

// Dungeon returns the dungeon with id.
func (s *Store) Dungeon(id string) (Dungeon, bool) {
	for _, d := range s.dungeons {
		if d.ID == id {
			return d, true
		}
	}
	return Dungeon{}, false
}

// Dungeons returns every dungeon ordered by rank, then content order.
func (s *Store) Dungeons() []Dungeon { return append([]Dungeon(nil), s.dungeons...) }

// DungeonIDs returns dungeon ids in the order of Dungeons.
func (s *Store) DungeonIDs() []string {
	ids := make([]string, 0, len(s.dungeons))
	for _, d := range s.dungeons {
		ids = append(ids, d.ID)
	}
	return ids
}

// Recipes returns normal recipes in matching order.
func (s *Store) Recipes() []Recipe { return append([]Recipe(nil), s.recipes...) }

// GiftRecipes returns gift recipes in matching order.
func (s *Store) GiftRecipes() []GiftRecipe { return append([]GiftRecipe(nil), s.gifts...) }

// JunkItems returns the junk table.
func (s *Store) JunkItems() []JunkItem { return append([]JunkItem(nil), s.junk...) }

// Catalyst returns the catalyst master record with id.
func (s *Store) Catalyst(id string) (Catalyst, bool) {
	c, ok := s.catalysts[id]
	return c, ok
}

// Catalysts returns the catalyst master list in content order.
func (s *Store) Catalysts() []Catalyst {
	out := make([]Catalyst, 0, len(s.catOrder))
	for _, id := range s.catOrder {
		out = append(out, s.catalysts[id])
	}
	return out
}

// Material returns the material vocabulary entry with id.
func (s *Store) Material(id string) (Term, bool) {
	t, ok := s.materials[id]
	return t, ok
}

// MaterialIDs returns material ids in content order.
func (s *Store) MaterialIDs() []string { return append([]string(nil), s.matOrder...) }

// Essence returns the essence vocabulary entry with id.
func (s *Store) Essence(id string) (Term, bool) {
	t, ok := s.essences[id]
	return t, ok
}

// EssenceIDs returns essence ids in content order.
func (s *Store) EssenceIDs() []string { return append([]string(nil), s.essOrder...) }

// Quality returns the quality level n.
func (s *Store) Quality(n int) (Quality, bool) {
	q, ok := s.qualities[n]
	return q, ok
}

// RankRequirement returns the requirement for rank.
func (s *Store) RankRequirement(rank int) (RankRequirement, bool) {
	r, ok := s.ranks[rank]
	return r, ok
}

// RankRequirements returns every rank requirement ordered by rank.
func (s *Store) RankRequirements() []RankRequirement {
	out := make([]RankRequirement, 0, len(s.ranks))
	for _, r := range s.ranks {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// RankName returns the display name for rank.
func (s *Store) RankName(rank int, tag language.Tag) string {
	if r, ok := s.ranks[rank]; ok {
		if name := r.Name.In(tag); name != "" {
			return name
		}
	}
	return "Rank" + strconv.Itoa(rank)
}

// Exploration returns the exploration modifiers.
func (s *Store) Exploration() ExplorationRules { return s.exploration }
