// Package maintenance validates game content tables offline.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/louisbranch/zenithfall/internal/platform/cmd"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
)

// ErrInvalidContent reports that validation found problems.
var ErrInvalidContent = errors.New("content has problems")

// Config holds maintenance command configuration.
type Config struct {
	DataDir    string        `env:"ZENITHFALL_DATA_DIR"`
	Timeout    time.Duration `env:"ZENITHFALL_MAINTENANCE_TIMEOUT" envDefault:"1m"`
	JSONOutput bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory with content JSON files (default: ZENITHFALL_DATA_DIR or embedded)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output a JSON report")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// report summarizes one validation run.
type report struct {
	Source    string   `json:"source"`
	Races     int      `json:"races"`
	Dungeons  int      `json:"dungeons"`
	Recipes   int      `json:"recipes"`
	Gifts     int      `json:"gift_recipes"`
	Catalysts int      `json:"catalysts"`
	Problems  []string `json:"problems"`
}

// Run loads the content tables, writes a report to out and returns
// ErrInvalidContent when any problem was found.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	store, err := content.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	result := report{
		Source:    cfg.DataDir,
		Races:     len(store.RaceIDs()),
		Dungeons:  len(store.Dungeons()),
		Recipes:   len(store.Recipes()),
		Gifts:     len(store.GiftRecipes()),
		Catalysts: len(store.Catalysts()),
		Problems:  []string{},
	}
	if result.Source == "" {
		result.Source = "embedded"
	}
	for _, problem := range store.Validate() {
		result.Problems = append(result.Problems, problem.String())
	}

	if cfg.JSONOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		fmt.Fprintf(out, "Content source: %s\n", result.Source)
		fmt.Fprintf(out, "Races: %d, dungeons: %d, recipes: %d, gift recipes: %d, catalysts: %d\n",
			result.Races, result.Dungeons, result.Recipes, result.Gifts, result.Catalysts)
		for _, problem := range result.Problems {
			fmt.Fprintf(errOut, "Problem: %s\n", problem)
		}
		if len(result.Problems) == 0 {
			fmt.Fprintln(out, "No problems found")
		}
	}

	if len(result.Problems) > 0 {
		return fmt.Errorf("%w: %d found", ErrInvalidContent, len(result.Problems))
	}
	return nil
}
