package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
seed: 99
tick_rate_hz: 30
players: [alice, bob]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" || cfg.Seed != 99 || cfg.TickRateHz != 30 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if len(cfg.Players) != 2 || cfg.Players[0] != "alice" {
		t.Errorf("players = %v", cfg.Players)
	}
	// Unspecified fields keep their defaults.
	if cfg.Mode != "arena" || cfg.RoundsToWin != 2 || cfg.RoundSeconds != 120 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
	if cfg.RoundTicks() != 3600 {
		t.Errorf("round ticks = %d, want 3600 at 30Hz", cfg.RoundTicks())
	}
}

func TestLoadSpawnPoints(t *testing.T) {
	path := writeFile(t, `
mode: boxfight
spawn_points:
  - [-24, 0]
  - [24, 0]
loot_spawns:
  - [0, 0]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "boxfight" {
		t.Errorf("mode = %s", cfg.Mode)
	}
	if len(cfg.SpawnPoints) != 2 || cfg.SpawnPoints[0] != [2]float64{-24, 0} {
		t.Errorf("spawn points = %v", cfg.SpawnPoints)
	}
	if len(cfg.LootSpawns) != 1 {
		t.Errorf("loot spawns = %v", cfg.LootSpawns)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("missing file did not error")
	}
	if cfg.Addr != ":8080" {
		t.Errorf("missing file should return defaults, got %+v", cfg)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "addr: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestScoreboardDelay(t *testing.T) {
	if got := Default().ScoreboardDelay(); got != 5*time.Second {
		t.Errorf("scoreboard delay = %v, want 5s", got)
	}
}
