package match

import (
	"testing"

	"buildbrawl/internal/game"
)

func newTestMatch(t *testing.T, kind ModeKind) *Match {
	t.Helper()
	m, err := New(Config{
		Mode:    kind,
		Players: []string{"p1", "p2"},
		Seed:    7,
	}, &staticSource{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.world.ResetRound(m.cfg.Players, func(id string, idx int) (float64, float64) {
		return m.mode.SpawnPoint(m, id, idx)
	}, nil)
	return m
}

func TestNewModeUnknown(t *testing.T) {
	if _, err := NewMode("deathmatch"); err == nil {
		t.Error("unknown mode kind accepted")
	}
}

func TestArenaSpawnPoints(t *testing.T) {
	m := newTestMatch(t, ModeArena)
	x0, _ := m.mode.SpawnPoint(m, "p1", 0)
	x1, _ := m.mode.SpawnPoint(m, "p2", 1)
	if x0 != -20 || x1 != 20 {
		t.Errorf("spawns = %v, %v, want -20 and 20", x0, x1)
	}

	m.cfg.SpawnPoints = [][2]float64{{1, 2}}
	x, y := m.mode.SpawnPoint(m, "p1", 0)
	if x != 1 || y != 2 {
		t.Errorf("configured spawn ignored: (%v, %v)", x, y)
	}
	// Index wraps around the configured list.
	x, y = m.mode.SpawnPoint(m, "p2", 1)
	if x != 1 || y != 2 {
		t.Errorf("wrapped spawn = (%v, %v)", x, y)
	}
}

func TestArenaRoundLifecycle(t *testing.T) {
	m := newTestMatch(t, ModeArena)

	if m.mode.ShouldEndRound(m) {
		t.Error("round ended with both players alive")
	}

	m.world.State().Player("p2").HP = 0
	if !m.mode.ShouldEndRound(m) {
		t.Error("round did not end after elimination")
	}
	winners := m.mode.OnRoundEnd(m)
	if len(winners) != 1 || winners[0] != "p1" {
		t.Errorf("winners = %v, want [p1]", winners)
	}
}

func TestArenaDrawnRound(t *testing.T) {
	m := newTestMatch(t, ModeArena)
	m.world.State().Player("p1").HP = 0
	m.world.State().Player("p2").HP = 0

	if !m.mode.ShouldEndRound(m) {
		t.Error("round did not end with everyone dead")
	}
	if winners := m.mode.OnRoundEnd(m); len(winners) != 0 {
		t.Errorf("simultaneous death should draw the round, got winners %v", winners)
	}
}

func TestArenaDrawAwardsNoWins(t *testing.T) {
	m := newTestMatch(t, ModeArena)
	m.world.State().Player("p1").HP = 0
	m.world.State().Player("p2").HP = 0

	rs := &RoundState{Number: 1, Status: RoundActive}
	m.rounds = append(m.rounds, rs)
	m.finishRound(rs)

	if rs.Status != RoundEnded {
		t.Errorf("round status = %s", rs.Status)
	}
	for _, id := range m.cfg.Players {
		if ps := m.PlayerStats(id); ps.RoundWins != 0 {
			t.Errorf("%s got a round win from a draw", id)
		}
	}
}

func TestBoxfightRespawnCycle(t *testing.T) {
	m := newTestMatch(t, ModeBoxfight)
	b := m.mode.(*boxfightMode)
	state := m.world.State()

	// Kill p2; the first tick that sees it schedules the respawn.
	state.Player("p2").HP = 0
	state.Tick = 10
	b.OnTick(m, &game.TickResult{State: state})
	if got := m.PlayerStats("p2").RespawnTick; got != 10+boxfightRespawnDelay {
		t.Fatalf("respawn tick = %d, want %d", got, 10+boxfightRespawnDelay)
	}
	if state.Player("p2").Alive() {
		t.Fatal("p2 revived before the delay")
	}

	// Still waiting halfway through.
	state.Tick = 10 + boxfightRespawnDelay/2
	b.OnTick(m, &game.TickResult{State: state})
	if state.Player("p2").Alive() {
		t.Fatal("p2 revived mid-delay")
	}

	// Due: the player comes back at a spawn point with protection.
	state.Tick = 10 + boxfightRespawnDelay
	b.OnTick(m, &game.TickResult{State: state})
	p2 := state.Player("p2")
	if !p2.Alive() {
		t.Fatal("p2 not revived when due")
	}
	if p2.X != boxfightSpawns[1][0] {
		t.Errorf("respawn x = %v, want %v", p2.X, boxfightSpawns[1][0])
	}
	if got := m.PlayerStats("p2").RespawnTick; got != 0 {
		t.Errorf("respawn tick not cleared: %d", got)
	}

	// Spawn protection heals chip damage...
	p2.HP = 50
	state.Tick += boxfightSpawnProtection / 2
	b.OnTick(m, &game.TickResult{State: state})
	if p2.HP != game.PlayerMaxHealth {
		t.Errorf("protected player not healed: hp = %v", p2.HP)
	}

	// ...until it expires.
	state.Tick += boxfightSpawnProtection
	b.OnTick(m, &game.TickResult{State: state})
	p2.HP = 50
	b.OnTick(m, &game.TickResult{State: state})
	if p2.HP != 50 {
		t.Errorf("protection outlived its window: hp = %v", p2.HP)
	}
}

func TestBoxfightKillTally(t *testing.T) {
	m := newTestMatch(t, ModeBoxfight)
	b := m.mode.(*boxfightMode)
	state := m.world.State()

	b.OnTick(m, &game.TickResult{State: state, Damage: []game.DamageEvent{
		{Attacker: "p1", Target: "p2", Amount: 40, Lethal: false},
		{Attacker: "p1", Target: "p2", Amount: 60, Lethal: true},
		{Attacker: "p2", Target: "p2", Amount: 99, Lethal: true}, // self kill, no credit
	}})
	if b.roundKills["p1"] != 1 {
		t.Errorf("p1 round kills = %d, want 1", b.roundKills["p1"])
	}
	if b.roundKills["p2"] != 0 {
		t.Errorf("p2 round kills = %d, want 0", b.roundKills["p2"])
	}
}

func TestBoxfightRoundWinners(t *testing.T) {
	m := newTestMatch(t, ModeBoxfight)
	b := m.mode.(*boxfightMode)

	if winners := b.OnRoundEnd(m); winners != nil {
		t.Errorf("kill-less round has winners: %v", winners)
	}

	b.roundKills["p1"] = 3
	b.roundKills["p2"] = 1
	if winners := b.OnRoundEnd(m); len(winners) != 1 || winners[0] != "p1" {
		t.Errorf("winners = %v, want [p1]", winners)
	}

	b.roundKills["p2"] = 3
	winners := b.OnRoundEnd(m)
	if len(winners) != 2 {
		t.Errorf("tied round winners = %v, want both", winners)
	}
}

func TestBoxfightRoundStartResets(t *testing.T) {
	m := newTestMatch(t, ModeBoxfight)
	b := m.mode.(*boxfightMode)
	b.roundKills["p1"] = 5
	b.respawnAt["p2"] = 99
	b.protectedUntil["p1"] = 42

	b.OnRoundStart(m, 2)
	if len(b.roundKills) != 0 || len(b.respawnAt) != 0 || len(b.protectedUntil) != 0 {
		t.Error("round start did not clear per-round mode state")
	}

	if b.ShouldEndRound(m) {
		t.Error("boxfight rounds end only on the time limit")
	}
}
