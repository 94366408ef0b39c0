package match

import "buildbrawl/internal/game"

// Boxfight timing constants, in ticks.
const (
	boxfightRespawnDelay    = 60 // 3s at 20Hz
	boxfightSpawnProtection = 20 // 1s of post-spawn invulnerability
)

// boxfightMode is the respawn ruleset: four fixed spawn points, a fixed
// respawn delay with brief post-spawn protection, a preset loadout on every
// spawn, and rounds decided by kills when the hard time limit lands.
type boxfightMode struct {
	respawnAt      map[string]int
	protectedUntil map[string]int
	roundKills     map[string]int
}

// boxfightSpawns are the default four-corner spawn points.
var boxfightSpawns = [][2]float64{{-24, 0}, {24, 0}, {-8, 0}, {8, 0}}

func (b *boxfightMode) Kind() ModeKind { return ModeBoxfight }

func (b *boxfightMode) Initialize(m *Match) {
	b.respawnAt = make(map[string]int)
	b.protectedUntil = make(map[string]int)
	b.roundKills = make(map[string]int)
}

func (b *boxfightMode) OnRoundStart(m *Match, round int) {
	for k := range b.respawnAt {
		delete(b.respawnAt, k)
	}
	for k := range b.protectedUntil {
		delete(b.protectedUntil, k)
	}
	for k := range b.roundKills {
		delete(b.roundKills, k)
	}
}

// OnTick schedules respawns for players found dead this tick, performs due
// respawns, tallies round kills, and keeps protected players at full
// health.
func (b *boxfightMode) OnTick(m *Match, res *game.TickResult) {
	tick := res.State.Tick

	for _, ev := range res.Damage {
		if ev.Lethal && ev.Attacker != ev.Target {
			b.roundKills[ev.Attacker]++
		}
	}

	for i, id := range m.cfg.Players {
		p := res.State.Player(id)
		dead := p == nil || !p.Alive()

		if until, ok := b.protectedUntil[id]; ok {
			if tick >= until {
				delete(b.protectedUntil, id)
			} else if !dead {
				m.world.HealPlayer(id)
			}
		}

		if dead {
			if _, scheduled := b.respawnAt[id]; !scheduled {
				b.respawnAt[id] = tick + boxfightRespawnDelay
				m.setRespawnTick(id, b.respawnAt[id])
			}
			if tick >= b.respawnAt[id] {
				x, y := b.SpawnPoint(m, id, i)
				m.world.RespawnPlayer(id, x, y)
				b.protectedUntil[id] = tick + boxfightSpawnProtection
				delete(b.respawnAt, id)
				b.HandleRespawn(m, id, tick)
			}
		}
	}
}

// ShouldEndRound never triggers early: with respawns active only the hard
// time limit ends a boxfight round.
func (b *boxfightMode) ShouldEndRound(m *Match) bool {
	return false
}

// OnRoundEnd declares every player tied for the most round kills a winner.
func (b *boxfightMode) OnRoundEnd(m *Match) []string {
	best := 0
	for _, kills := range b.roundKills {
		if kills > best {
			best = kills
		}
	}
	if best == 0 {
		return nil
	}
	var winners []string
	for _, id := range m.cfg.Players {
		if b.roundKills[id] == best {
			winners = append(winners, id)
		}
	}
	return winners
}

func (b *boxfightMode) OnMatchEnd(m *Match) {}

func (b *boxfightMode) SpawnPoint(m *Match, clientID string, idx int) (float64, float64) {
	spawns := boxfightSpawns
	if len(m.cfg.SpawnPoints) > 0 {
		spawns = m.cfg.SpawnPoints
	}
	p := spawns[idx%len(spawns)]
	return p[0], p[1]
}

func (b *boxfightMode) HandleRespawn(m *Match, clientID string, tick int) {
	m.setRespawnTick(clientID, 0)
}
