package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server tuning file. Zero-valued fields fall back to the
// defaults below, so a partial file is fine.
type Config struct {
	Addr string `yaml:"addr"`

	MatchID           string       `yaml:"match_id"`
	Seed              uint32       `yaml:"seed"`
	Mode              string       `yaml:"mode"`
	Players           []string     `yaml:"players"`
	RoundsToWin       int          `yaml:"rounds_to_win"`
	TickRateHz        int          `yaml:"tick_rate_hz"`
	RoundSeconds      int          `yaml:"round_seconds"`
	ScoreboardSeconds int          `yaml:"scoreboard_seconds"`
	SpawnPoints       [][2]float64 `yaml:"spawn_points"`
	LootSpawns        [][2]float64 `yaml:"loot_spawns"`
}

// Default returns the built-in configuration: a best-of-3 1v1 arena match
// at 20Hz.
func Default() Config {
	return Config{
		Addr:              ":8080",
		MatchID:           "local",
		Seed:              12345,
		Mode:              "arena",
		Players:           []string{"p1", "p2"},
		RoundsToWin:       2,
		TickRateHz:        20,
		RoundSeconds:      120,
		ScoreboardSeconds: 5,
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.MatchID == "" {
		c.MatchID = def.MatchID
	}
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if len(c.Players) == 0 {
		c.Players = def.Players
	}
	if c.RoundsToWin <= 0 {
		c.RoundsToWin = def.RoundsToWin
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = def.TickRateHz
	}
	if c.RoundSeconds <= 0 {
		c.RoundSeconds = def.RoundSeconds
	}
	if c.ScoreboardSeconds <= 0 {
		c.ScoreboardSeconds = def.ScoreboardSeconds
	}
	return c
}

// RoundTicks converts the round time limit to ticks.
func (c Config) RoundTicks() int {
	return c.RoundSeconds * c.TickRateHz
}

// ScoreboardDelay converts the inter-round pause to a duration.
func (c Config) ScoreboardDelay() time.Duration {
	return time.Duration(c.ScoreboardSeconds) * time.Second
}
