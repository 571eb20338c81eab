// Package mcp parses MCP command flags and runs the game engine behind the
// selected transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/zenithfall/internal/platform/cmd"
	"github.com/louisbranch/zenithfall/internal/platform/logging"
	"github.com/louisbranch/zenithfall/internal/platform/otel"
	"github.com/louisbranch/zenithfall/internal/random"
	"github.com/louisbranch/zenithfall/internal/services/game/content"
	"github.com/louisbranch/zenithfall/internal/services/game/engine"
	"github.com/louisbranch/zenithfall/internal/services/game/i18n"
	"github.com/louisbranch/zenithfall/internal/services/game/rules"
	"github.com/louisbranch/zenithfall/internal/services/game/storage/memory"
	"github.com/louisbranch/zenithfall/internal/services/mcp/domain"
	"github.com/louisbranch/zenithfall/internal/services/mcp/service"
	"go.uber.org/zap"
)

// Config holds MCP command configuration.
type Config struct {
	Transport string `env:"ZENITHFALL_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"ZENITHFALL_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Debug     bool   `env:"ZENITHFALL_DEBUG_MODE"    envDefault:"false"`
	// DataDir overrides the embedded content tables when set.
	DataDir string `env:"ZENITHFALL_DATA_DIR"`
	Locale  string `env:"ZENITHFALL_LOCALE"   envDefault:"en"`
	// Seed pins the random source; 0 draws a crypto seed.
	Seed            int64  `env:"ZENITHFALL_RNG_SEED"          envDefault:"0"`
	DefaultPlayerID string `env:"ZENITHFALL_DEFAULT_PLAYER_ID" envDefault:"default-user"`
	PlayerHeader    string `env:"ZENITHFALL_PLAYER_HEADER"     envDefault:"X-User-ID"`

	DailyTransmuteLimit int `env:"ZENITHFALL_DAILY_TRANSMUTE_LIMIT" envDefault:"3"`
	DailyExploreLimit   int `env:"ZENITHFALL_DAILY_EXPLORE_LIMIT"   envDefault:"1"`
	DailyCraftLimit     int `env:"ZENITHFALL_DAILY_CRAFT_LIMIT"     envDefault:"3"`
	MaxMaterials        int `env:"ZENITHFALL_MAX_MATERIALS"         envDefault:"50"`
	MaxItems            int `env:"ZENITHFALL_MAX_ITEMS"             envDefault:"30"`
	MaxCatalysts        int `env:"ZENITHFALL_MAX_CATALYSTS"         envDefault:"20"`
	VanishDays          int `env:"ZENITHFALL_VANISH_DAYS"           envDefault:"30"`

	Logging   logging.Config
	Telemetry otel.Config
}

// Limits returns the daily quotas and inventory caps from cfg.
func (c Config) Limits() rules.Limits {
	return rules.Limits{
		DailyTransmute: c.DailyTransmuteLimit,
		DailyExplore:   c.DailyExploreLimit,
		DailyCraft:     c.DailyCraftLimit,
		MaxMaterials:   c.MaxMaterials,
		MaxItems:       c.MaxItems,
		MaxCatalysts:   c.MaxCatalysts,
		VanishDays:     c.VanishDays,
	}
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Relax limits and register the debug tools")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory with content JSON files (default: embedded)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Narrative language: en or ja")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 for a random seed)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	game, vocabulary, err := newEngine(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting MCP server",
		zap.String("transport", cfg.Transport),
		zap.Bool("debug", cfg.Debug),
		zap.String("locale", game.Locale().String()),
	)

	options := entrypoint.RunOptions{Telemetry: cfg.Telemetry, Logger: logger}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, options, func(ctx context.Context) error {
		return service.Run(ctx, game, service.Config{
			Transport:       service.TransportKind(cfg.Transport),
			HTTPAddr:        cfg.HTTPAddr,
			PlayerHeader:    cfg.PlayerHeader,
			DefaultPlayerID: cfg.DefaultPlayerID,
			Debug:           cfg.Debug,
			Vocabulary:      vocabulary,
			Logger:          logger,
		})
	})
}

// newEngine loads content and wires the engine with an in-memory player store.
func newEngine(cfg Config) (*engine.Engine, domain.Vocabulary, error) {
	contentStore, err := content.Open(cfg.DataDir)
	if err != nil {
		return nil, domain.Vocabulary{}, fmt.Errorf("load content: %w", err)
	}

	locale, err := i18n.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, domain.Vocabulary{}, err
	}
	source, err := random.NewSeeded(cfg.Seed)
	if err != nil {
		return nil, domain.Vocabulary{}, fmt.Errorf("seed random source: %w", err)
	}
	game, err := engine.New(contentStore, memory.NewStore(), engine.Config{
		Limits: cfg.Limits(),
		Debug:  cfg.Debug,
		Locale: locale,
		Random: source,
	})
	if err != nil {
		return nil, domain.Vocabulary{}, err
	}
	vocabulary := domain.Vocabulary{
		Races:     contentStore.RaceIDs(),
		Materials: contentStore.MaterialIDs(),
		Essences:  contentStore.EssenceIDs(),
	}
	return game, vocabulary, nil
}
