package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

func resetGlobals() {
	cfg = nil
	v = nil
	configFile = ""
	envFile = ""
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  max_turns: 1000
  validate_actions: true
  starting_ranks: [Flag, Bomb, Marshal, Scout]
placement:
  rows: 2
  protect_flag: true
arena:
  games: 50
  workers: 3
  seed: 7
  policies: [aggressive, aggressive]
  progress_interval: 250ms
storage:
  enabled: true
  path: /tmp/results.db
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 1000, c.Game.MaxTurns)
	assert.True(t, c.Game.ValidateActions)
	assert.Equal(t, 2, c.Placement.Rows)
	assert.True(t, c.Placement.ProtectFlag)
	assert.Equal(t, 50, c.Arena.Games)
	assert.Equal(t, 3, c.Arena.Workers)
	assert.Equal(t, uint64(7), c.Arena.Seed)
	assert.Equal(t, []string{"aggressive", "aggressive"}, c.Arena.Policies)
	assert.Equal(t, 250*time.Millisecond, c.Arena.ProgressInterval)
	assert.True(t, c.Storage.Enabled)
	assert.Equal(t, "/tmp/results.db", c.Storage.Path)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, configFile, ConfigFilePath())

	ranks, err := c.Game.Ranks()
	require.NoError(t, err)
	assert.Equal(t, []core.Rank{core.Flag, core.Bomb, core.Marshal, core.Scout}, ranks)
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()

	// A missing explicit file falls back to the defaults
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 5000, c.Game.MaxTurns)
	assert.False(t, c.Game.ValidateActions)
	assert.Equal(t, 4, c.Placement.Rows)
	assert.Equal(t, 10000, c.Arena.Games)
	assert.Equal(t, uint64(54989864), c.Arena.Seed)
	assert.Equal(t, []string{"random", "aggressive"}, c.Arena.Policies)
	assert.Equal(t, 10*time.Second, c.Arena.ProgressInterval)
	assert.Equal(t, "aggressive", c.Bot.Policy)
	assert.Equal(t, "console", c.Logging.Format)

	ranks, err := c.Game.Ranks()
	require.NoError(t, err)
	assert.Equal(t, core.StartingRanks, ranks)
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()

	t.Setenv("STRATEGO_GAME_MAX_TURNS", "300")
	t.Setenv("STRATEGO_ARENA_SEED", "99")
	t.Setenv("STRATEGO_BOT_POLICY", "random")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 300, c.Game.MaxTurns)
	assert.Equal(t, uint64(99), c.Arena.Seed)
	assert.Equal(t, "random", c.Bot.Policy)
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	require.NoError(t, Set("game.max_turns", 42))
	require.NoError(t, Set("arena.workers", 8))

	c := Get()
	assert.Equal(t, 42, c.Game.MaxTurns)
	assert.Equal(t, 8, c.Arena.Workers)
}

func TestSetRejectsInvalidValue(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	err := Set("arena.games", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena.games")

	// The last valid config stays in place
	assert.Equal(t, 10000, Get().Arena.Games)
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Int("games", -1, "")
	fs.Uint64("seed", 0, "")
	fs.Bool("validate", false, "")
	fs.String("policies", "", "")
	fs.String("unbound", "", "")
	return fs
}

var testFlagKeys = map[string]string{
	"games":    "arena.games",
	"seed":     "arena.seed",
	"validate": "game.validate_actions",
	"policies": "arena.policies",
}

func TestApplyFlags(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "game:\n  validate_actions: true\narena:\n  games: 25\n  seed: 7\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	t.Run("explicit zero values override the config", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, Init(configFile))

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"-seed", "0", "-validate=false", "-policies", "random,random"}))
		require.NoError(t, ApplyFlags(fs, testFlagKeys))

		c := Get()
		assert.Equal(t, uint64(0), c.Arena.Seed)
		assert.False(t, c.Game.ValidateActions)
		assert.Equal(t, []string{"random", "random"}, c.Arena.Policies)
		assert.Equal(t, 25, c.Arena.Games)
	})

	t.Run("unset flags keep the config", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, Init(configFile))

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"-unbound", "x"}))
		require.NoError(t, ApplyFlags(fs, testFlagKeys))

		c := Get()
		assert.Equal(t, uint64(7), c.Arena.Seed)
		assert.True(t, c.Game.ValidateActions)
		assert.Equal(t, 25, c.Arena.Games)
	})

	t.Run("invalid flag value", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, Init(configFile))

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"-games", "-5"}))
		err := ApplyFlags(fs, testFlagKeys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "-games")
	})
}

func TestConfigFilePath(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init("/non/existent/path/config.yaml"))
	assert.Empty(t, ConfigFilePath())

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  max_turns: 10\n"), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestWatchConfigReloads(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: info\n"), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	levels := make(chan string, 16)
	WatchConfig(func(c *Config) { levels <- c.Logging.Level })

	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: debug\n"), 0644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case level := <-levels:
			if level == "debug" {
				return
			}
		case <-timeout:
			t.Fatal("config change was not picked up")
		}
	}
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  max_turns: 2000
arena:
  games: 10
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
game:
  max_turns: 3000
logging:
  format: json
`
	require.NoError(t, os.WriteFile(envConfig, []byte(envContent), 0644))

	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))
	require.NoError(t, LoadEnvironmentConfig(""))
	require.NoError(t, LoadEnvironmentConfig("staging")) // no config.staging.yaml
	assert.Equal(t, baseConfig, ConfigFilePath())

	c := Get()
	assert.Equal(t, 3000, c.Game.MaxTurns)    // Overridden
	assert.Equal(t, 10, c.Arena.Games)        // Kept from base
	assert.Equal(t, "json", c.Logging.Format) // New value
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		resetGlobals()
		require.NoError(t, Init(""))
		c := *Get()
		return &c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"MaxTurns", func(c *Config) { c.Game.MaxTurns = 0 }, "game.max_turns"},
		{"UnknownRank", func(c *Config) { c.Game.StartingRanks = []string{"Flag", "Dragon"} }, "starting_ranks[1]"},
		{"NoFlag", func(c *Config) { c.Game.StartingRanks = []string{"Scout"} }, "exactly one Flag"},
		{"TwoFlags", func(c *Config) { c.Game.StartingRanks = []string{"Flag", "Flag"} }, "exactly one Flag"},
		{"PlacementRows", func(c *Config) { c.Placement.Rows = 5 }, "placement.rows"},
		{"TooManyPieces", func(c *Config) {
			c.Placement.Rows = 1
			c.Game.StartingRanks = append([]string{"Flag"}, make11Scouts()...)
		}, "only fits 10"},
		{"Games", func(c *Config) { c.Arena.Games = 0 }, "arena.games"},
		{"Workers", func(c *Config) { c.Arena.Workers = -1 }, "arena.workers"},
		{"Policies", func(c *Config) { c.Arena.Policies = []string{"random"} }, "exactly 2 policies"},
		{"Progress", func(c *Config) { c.Arena.ProgressInterval = -time.Second }, "progress_interval"},
		{"StoragePath", func(c *Config) { c.Storage.Enabled = true; c.Storage.Path = "" }, "storage.path"},
		{"LogLevel", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"LogFormat", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"BotPolicy", func(c *Config) { c.Bot.Policy = "" }, "bot.policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			require.NoError(t, Validate(c))
			tt.mutate(c)
			err := Validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func make11Scouts() []string {
	scouts := make([]string, 11)
	for i := range scouts {
		scouts[i] = "Scout"
	}
	return scouts
}

func TestInitRejectsInvalidFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  max_turns: -1\n"), 0644))

	resetGlobals()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestInitRejectsMalformedFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("game:\n  max_turns: [unterminated\n arena: :\n"), 0644))

	resetGlobals()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
