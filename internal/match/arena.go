package match

import "buildbrawl/internal/game"

// arenaMode is the 1v1 ruleset: team-opposite spawns, no mid-round respawn,
// the round ends when at most one player is left alive, and the match ends
// when someone reaches the configured round wins.
type arenaMode struct{}

// arenaSpawns are the default team-opposite spawn points.
var arenaSpawns = [][2]float64{{-20, 0}, {20, 0}}

func (a *arenaMode) Kind() ModeKind { return ModeArena }

func (a *arenaMode) Initialize(m *Match) {}

func (a *arenaMode) OnRoundStart(m *Match, round int) {}

func (a *arenaMode) OnTick(m *Match, res *game.TickResult) {}

// ShouldEndRound polls for elimination: missing entity or hp at zero.
func (a *arenaMode) ShouldEndRound(m *Match) bool {
	return len(alivePlayers(m)) <= 1
}

// OnRoundEnd declares the survivors winners. A simultaneous last-tick death
// leaves the slice empty: a drawn round with no win increment.
func (a *arenaMode) OnRoundEnd(m *Match) []string {
	return alivePlayers(m)
}

func (a *arenaMode) OnMatchEnd(m *Match) {}

func (a *arenaMode) SpawnPoint(m *Match, clientID string, idx int) (float64, float64) {
	spawns := arenaSpawns
	if len(m.cfg.SpawnPoints) > 0 {
		spawns = m.cfg.SpawnPoints
	}
	p := spawns[idx%len(spawns)]
	return p[0], p[1]
}

// HandleRespawn is a no-op: eliminated arena players stay out until the
// round ends.
func (a *arenaMode) HandleRespawn(m *Match, clientID string, tick int) {}
