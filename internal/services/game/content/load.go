package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
)

// File names read from a content directory.
const (
	RacesFile     = "races.json"
	DungeonsFile  = "dungeons.json"
	RecipesFile   = "recipes.json"
	MaterialsFile = "materials.json"
)

const (
	defaultHealBonus    = 0.05
	defaultGuardBonus   = 0.10
	defaultPerStatPoint = 0.005
	defaultEquipmentCap = 0.20
)

//go:embed data/*.json
var embeddedData embed.FS

var (
	loadEmbeddedOnce sync.Once
	embeddedStore    *Store
	embeddedErr      error
)

// Embedded returns the store decoded from the bundled content files. The
// bundle is decoded once per process.
func Embedded() (*Store, error) {
	loadEmbeddedOnce.Do(func() {
		sub, err := fs.Sub(embeddedData, "data")
		if err != nil {
			embeddedErr = err
			return
		}
		embeddedStore, embeddedErr = Load(sub)
	})
	return embeddedStore, embeddedErr
}

// Open loads content from dir, or the embedded bundle when dir is empty.
func Open(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Embedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %q is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

type termJSON struct {
	ID   string `json:"id"`
	Name Text   `json:"name"`
}

type qualityJSON struct {
	Level int  `json:"level"`
	Name  Text `json:"name"`
}

type materialsDocument struct {
	Materials []termJSON    `json:"materials"`
	Essences  []termJSON    `json:"essences"`
	Quality   []qualityJSON `json:"quality"`
}

type raceJSON struct {
	ID                 string   `json:"id"`
	Name               Text     `json:"name"`
	DefaultPartnerName Text     `json:"default_partner_name"`
	Description        Text     `json:"description"`
	BaseStatsTotal     *int     `json:"base_stats_total"`
	LikeEssences       []string `json:"like_essences"`
	DislikeEssences    []string `json:"dislike_essences"`
	GiftReactions      struct {
		Like    []Text `json:"like"`
		Dislike []Text `json:"dislike"`
	} `json:"gift_reactions"`
}

type racesDocument struct {
	Races []raceJSON `json:"races"`
}

type dropJSON struct {
	CatalystID string `json:"catalyst_id"`
	Weight     *int   `json:"weight"`
}

type dungeonJSON struct {
	ID              string     `json:"id"`
	Name            Text       `json:"name"`
	Rank            int        `json:"rank"`
	Difficulty      string     `json:"difficulty"`
	BaseSuccessRate *float64   `json:"base_success_rate"`
	Description     Text       `json:"description"`
	DropTable       []dropJSON `json:"catalyst_drop_table"`
}

type rankJSON struct {
	Rank          int  `json:"rank"`
	Name          Text `json:"name"`
	MinTotalStats int  `json:"min_total_stats"`
}

type explorationJSON struct {
	SupportHeal    *float64 `json:"support_heal"`
	SupportGuard   *float64 `json:"support_guard"`
	EquipmentBonus struct {
		PerStatPoint *float64 `json:"per_stat_point"`
		Cap          *float64 `json:"cap"`
	} `json:"equipment_bonus"`
}

type dungeonsDocument struct {
	RankRequirements []rankJSON      `json:"rank_requirements"`
	Exploration      explorationJSON `json:"exploration_rules"`
	Dungeons         []dungeonJSON   `json:"dungeons"`
}

type attributesJSON struct {
	Materials []string `json:"materials"`
	Essences  []string `json:"essences"`
}

type recipeJSON struct {
	ID          string         `json:"id"`
	Name        Text           `json:"name"`
	Category    string         `json:"category"`
	Rank        int            `json:"rank"`
	Required    attributesJSON `json:"required_attributes"`
	Stats       map[string]int `json:"stats"`
	Description Text           `json:"description"`
}

type giftRecipeJSON struct {
	ID            string         `json:"id"`
	Name          Text           `json:"name"`
	Required      attributesJSON `json:"required_attributes"`
	BaseAffection *float64       `json:"base_affection"`
}

type junkJSON struct {
	ID   string `json:"id"`
	Name Text   `json:"name"`
}

type catalystJSON struct {
	CatalystID string `json:"catalyst_id"`
	Name       Text   `json:"name"`
	Material   string `json:"material"`
	Essence    string `json:"essence"`
	Rank       int    `json:"rank"`
}

type recipesDocument struct {
	Recipes     []recipeJSON     `json:"recipes"`
	GiftRecipes []giftRecipeJSON `json:"gift_recipes"`
	JunkItems   []junkJSON       `json:"junk_items"`
	Catalysts   []catalystJSON   `json:"catalysts"`
}

// Load decodes the four content files from fsys.
func Load(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("content filesystem is required")
	}
	var (
		materials materialsDocument
		races     racesDocument
		dungeons  dungeonsDocument
		recipes   recipesDocument
	)
	for _, f := range []struct {
		name   string
		target any
	}{
		{MaterialsFile, &materials},
		{RacesFile, &races},
		{DungeonsFile, &dungeons},
		{RecipesFile, &recipes},
	} {
		if err := decodeFile(fsys, f.name, f.target); err != nil {
			return nil, err
		}
	}

	store := &Store{
		races:     map[string]Race{},
		catalysts: map[string]Catalyst{},
		materials: map[string]Term{},
		essences:  map[string]Term{},
		qualities: map[int]Quality{},
		ranks:     map[int]RankRequirement{},
	}
	if err := store.addVocabulary(materials); err != nil {
		return nil, fmt.Errorf("decode %s: %w", MaterialsFile, err)
	}
	if err := store.addRaces(races); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RacesFile, err)
	}
	if err := store.addDungeons(dungeons); err != nil {
		return nil, fmt.Errorf("decode %s: %w", DungeonsFile, err)
	}
	if err := store.addRecipes(recipes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RecipesFile, err)
	}
	return store, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) addVocabulary(doc materialsDocument) error {
	for _, raw := range doc.Materials {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		if _, exists := s.materials[id]; exists {
			return fmt.Errorf("duplicate material id %q", id)
		}
		s.materials[id] = Term{ID: id, Name: fallbackText(raw.Name, id)}
		s.matOrder = append(s.matOrder, id)
	}
	for _, raw := range doc.Essences {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		if _, exists := s.essences[id]; exists {
			return fmt.Errorf("duplicate essence id %q", id)
		}
		s.essences[id] = Term{ID: id, Name: fallbackText(raw.Name, id)}
		s.essOrder = append(s.essOrder, id)
	}
	for _, raw := range doc.Quality {
		if raw.Level <= 0 {
			continue
		}
		s.qualities[raw.Level] = Quality{Level: raw.Level, Name: raw.Name}
	}
	if len(s.materials) == 0 || len(s.essences) == 0 {
		return errors.New("material and essence vocabularies are required")
	}
	return nil
}

func (s *Store) addRaces(doc racesDocument) error {
	for _, raw := range doc.Races {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		if _, exists := s.races[id]; exists {
			return fmt.Errorf("duplicate race id %q", id)
		}
		base := 40
		if raw.BaseStatsTotal != nil {
			base = *raw.BaseStatsTotal
		}
		s.races[id] = Race{
			ID:                 id,
			Name:               fallbackText(raw.Name, id),
			DefaultPartnerName: raw.DefaultPartnerName,
			Description:        raw.Description,
			BaseStatsTotal:     base,
			LikeEssences:       normalizeStringList(raw.LikeEssences),
			DislikeEssences:    normalizeStringList(raw.DislikeEssences),
			LikeReactions:      append([]Text(nil), raw.GiftReactions.Like...),
			DislikeReactions:   append([]Text(nil), raw.GiftReactions.Dislike...),
		}
		s.raceOrder = append(s.raceOrder, id)
	}
	return nil
}

func (s *Store) addDungeons(doc dungeonsDocument) error {
	for _, raw := range doc.RankRequirements {
		if raw.Rank <= 0 {
			continue
		}
		s.ranks[raw.Rank] = RankRequirement{Rank: raw.Rank, Name: raw.Name, MinTotalStats: raw.MinTotalStats}
	}
	s.exploration = ExplorationRules{
		HealBonus:    floatOr(doc.Exploration.SupportHeal, defaultHealBonus),
		GuardBonus:   floatOr(doc.Exploration.SupportGuard, defaultGuardBonus),
		PerStatPoint: floatOr(doc.Exploration.EquipmentBonus.PerStatPoint, defaultPerStatPoint),
		EquipmentCap: floatOr(doc.Exploration.EquipmentBonus.Cap, defaultEquipmentCap),
	}
	seen := map[string]struct{}{}
	for _, raw := range doc.Dungeons {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("duplicate dungeon id %q", id)
		}
		seen[id] = struct{}{}
		rank := raw.Rank
		if rank <= 0 {
			rank = 1
		}
		table := make([]DropEntry, 0, len(raw.DropTable))
		for _, entry := range raw.DropTable {
			weight := 1
			if entry.Weight != nil {
				weight = *entry.Weight
			}
			if weight < 0 {
				return fmt.Errorf("dungeon %q: negative weight for %q", id, entry.CatalystID)
			}
			table = append(table, DropEntry{CatalystID: strings.TrimSpace(entry.CatalystID), Weight: weight})
		}
		s.dungeons = append(s.dungeons, Dungeon{
			ID:              id,
			Name:            fallbackText(raw.Name, id),
			Rank:            rank,
			Difficulty:      strings.TrimSpace(raw.Difficulty),
			BaseSuccessRate: floatOr(raw.BaseSuccessRate, 0.7),
			Description:     raw.Description,
			DropTable:       table,
		})
	}
	sort.SliceStable(s.dungeons, func(i, j int) bool { return s.dungeons[i].Rank < s.dungeons[j].Rank })
	return nil
}

func (s *Store) addRecipes(doc recipesDocument) error {
	seen := map[string]struct{}{}
	for _, raw := range doc.Recipes {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("duplicate recipe id %q", id)
		}
		seen[id] = struct{}{}
		rank := raw.Rank
		if rank <= 0 {
			rank = 1
		}
		category := strings.TrimSpace(raw.Category)
		if category == "" {
			category = "equipment"
		}
		stats := make(map[string]int, len(raw.Stats))
		for k, v := range raw.Stats {
			stats[k] = v
		}
		s.recipes = append(s.recipes, Recipe{
			ID:          id,
			Name:        fallbackText(raw.Name, id),
			Category:    category,
			Rank:        rank,
			Materials:   normalizeStringList(raw.Required.Materials),
			Essences:    normalizeStringList(raw.Required.Essences),
			Stats:       stats,
			Description: raw.Description,
		})
	}
	for _, raw := range doc.GiftRecipes {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		s.gifts = append(s.gifts, GiftRecipe{
			ID:            id,
			Name:          fallbackText(raw.Name, id),
			Essences:      normalizeStringList(raw.Required.Essences),
			BaseAffection: floatOr(raw.BaseAffection, 3.0),
		})
	}
	for _, raw := range doc.JunkItems {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			continue
		}
		s.junk = append(s.junk, JunkItem{ID: id, Name: fallbackText(raw.Name, id)})
	}
	for _, raw := range doc.Catalysts {
		id := strings.TrimSpace(raw.CatalystID)
		if id == "" {
			continue
		}
		if _, exists := s.catalysts[id]; exists {
			return fmt.Errorf("duplicate catalyst id %q", id)
		}
		s.catalysts[id] = Catalyst{
			ID:       id,
			Name:     fallbackText(raw.Name, id),
			Material: strings.TrimSpace(raw.Material),
			Essence:  strings.TrimSpace(raw.Essence),
			Rank:     raw.Rank,
		}
		s.catOrder = append(s.catOrder, id)
	}
	return nil
}

func fallbackText(t Text, id string) Text {
	if t.EN == "" && t.JA == "" {
		return Text{EN: id, JA: id}
	}
	return t
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func normalizeStringList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
