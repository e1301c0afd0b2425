package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/StrategoEngine/internal/config"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
	"github.com/mitchelldurbincs/StrategoEngine/internal/policy"
	"github.com/mitchelldurbincs/StrategoEngine/internal/protocol"
)

// flagKeys binds command-line flags to the config keys they override
var flagKeys = map[string]string{
	"policy":    "bot.policy",
	"seed":      "bot.seed",
	"validate":  "game.validate_actions",
	"log-level": "logging.level",
}

// The judge talks to the bot over stdin/stdout, so every log line goes to stderr.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.String("policy", "", "Policy to play (overrides bot.policy)")
	flag.Uint64("seed", 0, "Policy seed (overrides bot.seed)")
	flag.Bool("validate", false, "Validate every action before sending it (overrides game.validate_actions)")
	flag.String("log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.ApplyFlags(flag.CommandLine, flagKeys); err != nil {
		log.Fatal().Err(err).Msg("Invalid flag")
	}
	cfg := config.Get()

	setupLogging(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if path := config.ConfigFilePath(); path != "" {
		log.Info().Str("path", path).Msg("Loaded config file")
	}

	ranks, err := cfg.Game.Ranks()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid starting ranks")
	}

	p, err := policy.New(cfg.Bot.Policy, policy.Config{
		Seed:      cfg.Bot.Seed,
		Placement: mapgen.PlacementConfig{Rows: cfg.Placement.Rows, ProtectFlag: cfg.Placement.ProtectFlag},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create policy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("policy", p.Name()).Uint64("seed", cfg.Bot.Seed).Msg("Starting bot")

	runner := protocol.NewRunner(protocol.RunnerConfig{
		Policy:          p,
		Ranks:           ranks,
		In:              os.Stdin,
		Out:             os.Stdout,
		ValidateActions: cfg.Game.ValidateActions,
		Logger:          log.Logger,
	})
	if err := runner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped")
	}
}

func setupLogging(level, format string, out io.Writer) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	}
}
