package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Placement PlacementConfig `mapstructure:"placement"`
	Arena     ArenaConfig     `mapstructure:"arena"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Bot       BotConfig       `mapstructure:"bot"`
}

// GameConfig holds game rules configuration
type GameConfig struct {
	MaxTurns        int      `mapstructure:"max_turns"`
	ValidateActions bool     `mapstructure:"validate_actions"`
	StartingRanks   []string `mapstructure:"starting_ranks"`
}

// PlacementConfig holds settings for generated initial placements
type PlacementConfig struct {
	Rows        int  `mapstructure:"rows"`
	ProtectFlag bool `mapstructure:"protect_flag"`
}

// ArenaConfig holds batch evaluation settings
type ArenaConfig struct {
	Games            int           `mapstructure:"games"`
	Workers          int           `mapstructure:"workers"`
	Seed             uint64        `mapstructure:"seed"`
	Policies         []string      `mapstructure:"policies"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
	LogGameEvents    bool          `mapstructure:"log_game_events"`
}

// StorageConfig holds result persistence settings
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BotConfig holds settings for the protocol bot
type BotConfig struct {
	Policy string `mapstructure:"policy"`
	Seed   uint64 `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// Files actually read, empty when running on defaults
	configFile string
	envFile    string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.max_turns", 5000)
	v.SetDefault("game.validate_actions", false)
	v.SetDefault("game.starting_ranks", rankNames(core.StartingRanks))

	// Placement defaults
	v.SetDefault("placement.rows", 4)
	v.SetDefault("placement.protect_flag", false)

	// Arena defaults
	v.SetDefault("arena.games", 10000)
	v.SetDefault("arena.workers", 0)
	v.SetDefault("arena.seed", uint64(54989864))
	v.SetDefault("arena.policies", []string{"random", "aggressive"})
	v.SetDefault("arena.progress_interval", "10s")
	v.SetDefault("arena.log_game_events", false)

	// Storage defaults
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.path", "data/results.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Bot defaults
	v.SetDefault("bot.policy", "aggressive")
	v.SetDefault("bot.seed", uint64(154989864))
}

func rankNames(ranks []core.Rank) []string {
	names := make([]string, len(ranks))
	for i, r := range ranks {
		names[i] = r.String()
	}
	return names
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/stratego")
	}

	v.SetEnvPrefix("STRATEGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile, envFile = "", ""
	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults, anything else is an error
		if !isNotFound(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		configFile = v.ConfigFileUsed()
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	file := fmt.Sprintf("config.%s.yaml", env)
	found, err := mergeFile(file)
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", file, err)
	}
	if found {
		envFile = file
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// mergeFile merges file over the current values. The watched file stays the base config.
func mergeFile(file string) (bool, error) {
	v.SetConfigFile(file)
	defer v.SetConfigFile(configFile)

	if err := v.MergeInConfig(); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Set overrides key at runtime. The value survives config reloads.
func Set(key string, value interface{}) error {
	v.Set(key, value)

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode %s: %w", key, err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// ApplyFlags sets the config key bound to every flag given on the command line.
// Flags left at their default never override the config.
func ApplyFlags(fs *flag.FlagSet, keys map[string]string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		if setErr := Set(key, f.Value.String()); setErr != nil {
			err = fmt.Errorf("-%s: %w", f.Name, setErr)
		}
	})
	return err
}

// ConfigFilePath returns the config file that was read, empty when running on defaults
func ConfigFilePath() string {
	return configFile
}

// WatchConfig enables hot-reloading of the base config file. The environment
// overlay is merged again on every reload. Changes that fail validation are ignored.
func WatchConfig(onChange func(*Config)) {
	if configFile == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if envFile != "" {
			if _, err := mergeFile(envFile); err != nil {
				return
			}
		}
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		cfg = next
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// Ranks parses the configured starting ranks
func (g GameConfig) Ranks() ([]core.Rank, error) {
	ranks := make([]core.Rank, len(g.StartingRanks))
	for i, name := range g.StartingRanks {
		r, err := core.ParseRank(name)
		if err != nil {
			return nil, fmt.Errorf("game.starting_ranks[%d]: %w", i, err)
		}
		ranks[i] = r
	}
	return ranks, nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Game rules
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive")
	}
	ranks, err := c.Game.Ranks()
	if err != nil {
		return err
	}
	flags := 0
	for _, r := range ranks {
		switch r {
		case core.Flag:
			flags++
		case core.Unknown:
			return fmt.Errorf("game.starting_ranks cannot contain %s", r)
		}
	}
	if flags != 1 {
		return fmt.Errorf("game.starting_ranks must contain exactly one Flag, has %d", flags)
	}

	// Placement
	if c.Placement.Rows < 1 || c.Placement.Rows > core.HomeRows {
		return fmt.Errorf("placement.rows must be between 1 and %d", core.HomeRows)
	}
	if len(ranks) > c.Placement.Rows*core.BoardSize {
		return fmt.Errorf("game.starting_ranks has %d pieces but placement.rows only fits %d",
			len(ranks), c.Placement.Rows*core.BoardSize)
	}

	// Arena
	if c.Arena.Games <= 0 {
		return fmt.Errorf("arena.games must be positive")
	}
	if c.Arena.Workers < 0 {
		return fmt.Errorf("arena.workers must be non-negative")
	}
	if len(c.Arena.Policies) != 2 {
		return fmt.Errorf("arena.policies must name exactly 2 policies, has %d", len(c.Arena.Policies))
	}
	if c.Arena.ProgressInterval < 0 {
		return fmt.Errorf("arena.progress_interval must be non-negative")
	}

	// Storage
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required when storage is enabled")
	}

	// Logging
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	// Bot
	if c.Bot.Policy == "" {
		return fmt.Errorf("bot.policy is required")
	}

	return nil
}
