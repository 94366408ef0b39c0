package game

import (
	"fmt"
	"math"
)

// World owns one State and the PRNG driving it. Tick is a pure synchronous
// transition: no I/O, no goroutines, no clock reads. Everything
// tick-order-sensitive iterates in sorted id order so two Worlds fed the
// same seed and inputs stay bit-identical forever.
type World struct {
	state       *State
	prng        *PRNG
	projectiles []*Projectile
	tickRate    int
}

// TickResult carries everything one tick produced: the committed state, its
// checksum, the damage events for kill attribution, and per-client build
// results.
type TickResult struct {
	State    *State
	Checksum string
	Damage   []DamageEvent
	Builds   map[string][]BuildResult
}

// NewWorld creates a world with an empty state at tick 0.
func NewWorld(seed uint32, tickRate int) *World {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	prng := NewPRNG(seed)
	return &World{
		state:    NewState(0, prng.State()),
		prng:     prng,
		tickRate: tickRate,
	}
}

// NewWorldFromState resumes a world from an existing state. The PRNG seeds
// from state.RNG when present, which is what makes snapshot replay land on
// the live server's exact trajectory.
func NewWorldFromState(s *State, tickRate int) *World {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &World{
		state:    s,
		prng:     NewPRNG(s.RNG),
		tickRate: tickRate,
	}
}

// State returns the current committed state. Callers must treat it as
// immutable; the next tick replaces it wholesale.
func (w *World) State() *State {
	return w.state
}

// Checksum returns the checksum attached to the current state.
func (w *World) Checksum() string {
	return w.state.LastChecksum
}

// Snapshot serializes the current state for transport.
func (w *World) Snapshot() ([]byte, error) {
	return SerializeSnapshot(w.state)
}

// Tick advances the simulation one fixed timestep. The pipeline order is
// load-bearing: merge inputs, shallow apply, movement, building, combat,
// projectiles, item pickups, player separation, PRNG advance, checksum,
// commit. Reordering any step changes outcomes and breaks checksum
// compatibility.
func (w *World) Tick(frames []map[string]Input) *TickResult {
	dt := 1.0 / float64(w.tickRate)

	inputs := MergeInputs(frames)
	next := ApplyInputsShallow(w.state, inputs, dt)

	ProcessMovement(next, w.state, inputs, dt)
	builds := ProcessBuildingInputs(next, inputs, w.prng)

	w.processCombat(next, inputs)
	var events []DamageEvent
	w.projectiles, events = SimulateProjectiles(next, w.projectiles, dt, w.prng)
	removeBrokenPieces(next)

	processItems(next)
	separatePlayers(next)

	w.prng.Next()
	next.RNG = w.prng.State()
	next.LastChecksum = ComputeStateChecksum(next)

	w.state = next
	return &TickResult{
		State:    next,
		Checksum: next.LastChecksum,
		Damage:   events,
		Builds:   builds,
	}
}

// processCombat runs reload timers for every player, then fires for every
// client whose input requested it, in sorted client order. Aim direction
// comes from the input movement vector, with a fixed default when the
// shooter is stationary.
func (w *World) processCombat(s *State, inputs map[string]Input) {
	for _, p := range sortedPlayers(s) {
		if p.Inventory != nil {
			p.Inventory.UpdateReload()
		}
	}
	for _, id := range sortedClientIDs(inputs) {
		in := inputs[id]
		shooter := s.Player(id)
		if shooter == nil || !shooter.Alive() || shooter.Inventory == nil {
			continue
		}
		if in.Slot != nil {
			shooter.Inventory.SwitchWeapon(*in.Slot)
		}
		if !in.Shoot {
			continue
		}
		shots := FireWeapon(shooter, in.DX, in.DY, s.Tick, w.tickRate, w.prng)
		w.projectiles = append(w.projectiles, shots...)
	}
}

// removeBrokenPieces drops build pieces whose hp reached zero. Dead players
// stay in the entity list with hp 0; elimination policy belongs to the
// match layer.
func removeBrokenPieces(s *State) {
	kept := s.Entities[:0]
	for _, e := range s.Entities {
		if e.Type == EntityBuildPiece && e.HP <= 0 {
			continue
		}
		kept = append(kept, e)
	}
	s.Entities = kept
}

// processItems handles pickups and respawn countdowns. An overlapping
// living player consumes an active item; consumed items count down
// RespawnTime ticks before reactivating.
func processItems(s *State) {
	players := sortedPlayers(s)
	for _, e := range s.Entities {
		if e.Type != EntityItem {
			continue
		}
		if e.RespawnTime > 0 {
			e.RespawnTime--
			continue
		}
		for _, p := range players {
			if !p.Alive() || !Intersects(p.Bounds(), e.Bounds()) {
				continue
			}
			applyItemEffect(p, e)
			e.RespawnTime = itemRespawnTicks
			break
		}
	}
}

const itemRespawnTicks = 200 // 10s at 20Hz

// applyItemEffect grants the pickup's benefit to the player.
func applyItemEffect(p *Entity, item *Entity) {
	switch item.ItemType {
	case "ammo":
		if p.Inventory != nil {
			p.Inventory.Reserve["ar"] += 30
		}
	case "health":
		p.HP = math.Min(PlayerMaxHealth, p.HP+25)
	}
}

// separatePlayers resolves pairwise overlap between living players,
// splitting the minimal translation vector evenly between the two. Pairs
// are visited in sorted id order.
func separatePlayers(s *State) {
	players := sortedPlayers(s)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			a, b := players[i], players[j]
			if !a.Alive() || !b.Alive() {
				continue
			}
			mx, my := Resolve(a.Bounds(), b.Bounds())
			if mx == 0 && my == 0 {
				continue
			}
			a.X += mx / 2
			a.Y += my / 2
			b.X -= mx / 2
			b.Y -= my / 2
		}
	}
}

// ResetRound rebuilds the entity list for a new round: fresh players at
// mode-chosen spawn points and items at the configured loot spawns. The
// World and its PRNG are reused across rounds, never recreated.
func (w *World) ResetRound(players []string, spawn func(id string, idx int) (float64, float64), loot [][2]float64) {
	next := CloneState(w.state)
	next.Entities = next.Entities[:0]
	for i, id := range players {
		x, y := spawn(id, i)
		next.Entities = append(next.Entities, NewPlayer(id, x, y))
	}
	for i, pos := range loot {
		item := NewItem(fmt.Sprintf("item-%d", i), "ammo", pos[0], pos[1])
		next.Entities = append(next.Entities, item)
	}
	w.projectiles = w.projectiles[:0]
	next.RNG = w.prng.State()
	next.LastChecksum = ComputeStateChecksum(next)
	w.state = next
}

// RespawnPlayer resets a player entity in place at a new spawn point.
// Called by mode modules between ticks.
func (w *World) RespawnPlayer(id string, x, y float64) {
	p := w.state.Player(id)
	if p == nil {
		return
	}
	ResetPlayer(p, x, y)
}

// HealPlayer restores a player to full health; spawn protection uses it.
func (w *World) HealPlayer(id string) {
	p := w.state.Player(id)
	if p != nil && p.Alive() {
		p.HP = PlayerMaxHealth
	}
}
