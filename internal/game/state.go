package game

import "sort"

// NewState creates an empty state at the given tick with the given RNG seed.
func NewState(startTick int, seed uint32) *State {
	return &State{
		Tick:     startTick,
		Entities: []*Entity{},
		RNG:      seed,
	}
}

// CloneState is the copy-on-write basis for each tick: a new State with each
// entity copied individually. Inventories are copied one level deep so the
// committed state is never mutated by the next tick.
func CloneState(s *State) *State {
	out := &State{
		Tick:         s.Tick,
		Entities:     make([]*Entity, 0, len(s.Entities)),
		RNG:          s.RNG,
		LastChecksum: s.LastChecksum,
	}
	for _, e := range s.Entities {
		c := *e
		if e.Inventory != nil {
			c.Inventory = e.Inventory.clone()
		}
		out.Entities = append(out.Entities, &c)
	}
	return out
}

// MergeInputs folds a tick's sequence of per-client input maps into one map.
// Later maps override earlier ones for the same client id.
func MergeInputs(frames []map[string]Input) map[string]Input {
	merged := make(map[string]Input)
	for _, frame := range frames {
		for id, in := range frame {
			merged[id] = in
		}
	}
	return merged
}

// sortedClientIDs returns the input map's keys in lexicographic order. Every
// tick-sensitive pass iterates in this order, never map order, so two runs
// process clients identically.
func sortedClientIDs(inputs map[string]Input) []string {
	ids := make([]string, 0, len(inputs))
	for id := range inputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortedPlayers returns the state's player entities ordered by id.
func sortedPlayers(s *State) []*Entity {
	players := make([]*Entity, 0, len(s.Entities))
	for _, e := range s.Entities {
		if e.Type == EntityPlayer {
			players = append(players, e)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// sortEntitiesByID orders a slice of entities lexicographically in place.
func sortEntitiesByID(entities []*Entity) {
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
}

// ApplyInputsShallow produces the next State (tick+1) from raw inputs: each
// matching player's velocity is set directly from (dx, dy) and integrated,
// and bullet entities advance and expire. The full movement model runs after
// this pass and overrides it for players; reconciliation replays through it.
func ApplyInputsShallow(s *State, inputs map[string]Input, dt float64) *State {
	next := CloneState(s)
	next.Tick = s.Tick + 1

	for _, id := range sortedClientIDs(inputs) {
		in := inputs[id]
		p := next.Player(id)
		if p == nil {
			continue
		}
		p.VX = in.DX
		p.VY = in.DY
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}

	alive := next.Entities[:0]
	for _, e := range next.Entities {
		if e.Type == EntityBullet {
			e.X += e.VX * dt
			e.Y += e.VY * dt
			e.Lifetime--
			if e.Lifetime <= 0 {
				continue
			}
		}
		alive = append(alive, e)
	}
	next.Entities = alive

	return next
}
