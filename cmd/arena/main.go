package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/StrategoEngine/internal/arena"
	"github.com/mitchelldurbincs/StrategoEngine/internal/config"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
	"github.com/mitchelldurbincs/StrategoEngine/internal/storage"
)

// flagKeys binds command-line flags to the config keys they override
var flagKeys = map[string]string{
	"games":     "arena.games",
	"workers":   "arena.workers",
	"seed":      "arena.seed",
	"policies":  "arena.policies",
	"max-turns": "game.max_turns",
	"validate":  "game.validate_actions",
	"log-level": "logging.level",
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay (loads config.<env>.yaml)")
	flag.Int("games", 0, "Number of games (overrides arena.games)")
	flag.Int("workers", 0, "Concurrent games, 0 for one per CPU (overrides arena.workers)")
	flag.Uint64("seed", 0, "Arena seed (overrides arena.seed)")
	flag.String("policies", "", "Comma separated pair of policies (overrides arena.policies)")
	flag.Int("max-turns", 0, "Turn limit per game (overrides game.max_turns)")
	flag.Bool("validate", false, "Validate every policy action (overrides game.validate_actions)")
	flag.String("log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
	dbPath := flag.String("db", "", "Store results in this SQLite file (overrides storage config)")
	showStats := flag.Bool("stats", false, "Print stored per-policy stats and exit")
	replay := flag.Uint64("replay", 0, "Replay the game with this seed and exit")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	if err := config.ApplyFlags(flag.CommandLine, flagKeys); err != nil {
		log.Fatal().Err(err).Msg("Invalid flag")
	}
	cfg := config.Get()

	setupLogging(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if path := config.ConfigFilePath(); path != "" {
		log.Info().Str("path", path).Msg("Loaded config file")
		config.WatchConfig(func(next *config.Config) {
			setLogLevel(next.Logging.Level)
			log.Info().Str("level", next.Logging.Level).Msg("Config reloaded")
		})
	}

	pair := cfg.Arena.Policies
	if *dbPath == "" && cfg.Storage.Enabled {
		*dbPath = cfg.Storage.Path
	}

	ranks, err := cfg.Game.Ranks()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid starting ranks")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *storage.DB
	if *dbPath != "" {
		store, err = storage.Open(*dbPath, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open result store")
		}
		defer store.Close()
	}

	if *showStats {
		if store == nil {
			log.Fatal().Msg("-stats needs a result store (-db or storage.enabled)")
		}
		printStats(ctx, store)
		return
	}

	arenaCfg := arena.Config{
		Policies:         [2]string{strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])},
		Games:            cfg.Arena.Games,
		Workers:          cfg.Arena.Workers,
		Seed:             cfg.Arena.Seed,
		MaxTurns:         cfg.Game.MaxTurns,
		ValidateActions:  cfg.Game.ValidateActions,
		StartingRanks:    ranks,
		Placement:        mapgen.PlacementConfig{Rows: cfg.Placement.Rows, ProtectFlag: cfg.Placement.ProtectFlag},
		ProgressInterval: cfg.Arena.ProgressInterval,
		LogGameEvents:    cfg.Arena.LogGameEvents,
		Logger:           log.Logger,
	}
	if store != nil {
		arenaCfg.Store = store
	}

	a, err := arena.New(arenaCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create arena")
	}

	if isSet("replay") {
		result, board, err := a.Replay(ctx, *replay)
		if err != nil {
			log.Fatal().Err(err).Msg("Replay failed")
		}
		fmt.Print(board)
		fmt.Printf("%s vs %s: winner %d (%s) after %d turns\n",
			result.Policies[0], result.Policies[1], result.Winner, result.Reason, result.Turns)
		return
	}

	summary, err := a.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Arena run failed")
	}

	fmt.Println(summary)
	fmt.Printf("%.3f seconds\n", summary.Duration.Seconds())
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printStats(ctx context.Context, store *storage.DB) {
	stats, err := store.Stats(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read stats")
	}
	for _, s := range stats {
		fmt.Printf("%-12s games %6d  wins %6d (%5.1f%%)  timeouts %6d  avg turns %8.1f\n",
			s.Policy, s.Games, s.Wins, 100*s.WinRate(), s.Timeouts, s.AverageTurns)
	}
}

func setupLogging(level, format string, out io.Writer) {
	setLogLevel(level)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	}
}

func setLogLevel(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
}
