package match

import (
	"fmt"

	"buildbrawl/internal/game"
)

// ModeKind names a game mode. The set is closed: modes are statically
// registered and resolved once at match construction, so an unknown mode is
// a construction-time error rather than a runtime lookup failure.
type ModeKind string

const (
	ModeArena    ModeKind = "arena"
	ModeBoxfight ModeKind = "boxfight"
)

// Mode is the pluggable per-game-mode ruleset: spawn selection, round-end
// condition and respawn policy, driving the shared World/Match core.
// Elimination is detected by polling entity hp each tick, not by damage
// events; kill attribution runs separately off the tick's damage events.
type Mode interface {
	Kind() ModeKind
	Initialize(m *Match)
	OnRoundStart(m *Match, round int)
	OnTick(m *Match, res *game.TickResult)
	ShouldEndRound(m *Match) bool
	OnRoundEnd(m *Match) []string
	OnMatchEnd(m *Match)
	SpawnPoint(m *Match, clientID string, idx int) (float64, float64)
	HandleRespawn(m *Match, clientID string, tick int)
}

// NewMode resolves a mode kind to its implementation.
func NewMode(kind ModeKind) (Mode, error) {
	switch kind {
	case ModeArena:
		return &arenaMode{}, nil
	case ModeBoxfight:
		return &boxfightMode{}, nil
	default:
		return nil, fmt.Errorf("match: unknown mode %q", kind)
	}
}

// alivePlayers returns the ids of living player entities, in configured
// player order.
func alivePlayers(m *Match) []string {
	var alive []string
	for _, id := range m.cfg.Players {
		p := m.world.State().Player(id)
		if p != nil && p.Alive() {
			alive = append(alive, id)
		}
	}
	return alive
}
