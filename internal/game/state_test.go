package game

import (
	"math"
	"testing"
)

func TestCloneStateIsolation(t *testing.T) {
	orig := &State{Tick: 2, Entities: []*Entity{NewPlayer("a", 1, 0)}, RNG: 5}
	clone := CloneState(orig)

	clone.Entities[0].HP = 10
	clone.Entities[0].Inventory.Reserve["ar"] = 0
	clone.Entities[0].Inventory.Weapons[1].Ammo = 0

	p := orig.Entities[0]
	if p.HP != PlayerMaxHealth {
		t.Errorf("original hp mutated through clone: %v", p.HP)
	}
	if p.Inventory.Reserve["ar"] != 90 {
		t.Errorf("original reserve mutated through clone: %d", p.Inventory.Reserve["ar"])
	}
	if p.Inventory.Weapons[1].Ammo != 30 {
		t.Errorf("original magazine mutated through clone: %d", p.Inventory.Weapons[1].Ammo)
	}
}

func TestMergeInputsLastWriterWins(t *testing.T) {
	frames := []map[string]Input{
		{"a": {ClientID: "a", DX: 1}, "b": {ClientID: "b", DX: -1}},
		{"a": {ClientID: "a", DX: 0, Jump: true}},
	}
	merged := MergeInputs(frames)
	if len(merged) != 2 {
		t.Fatalf("merged %d clients, want 2", len(merged))
	}
	if merged["a"].DX != 0 || !merged["a"].Jump {
		t.Errorf("later frame did not override for client a: %+v", merged["a"])
	}
	if merged["b"].DX != -1 {
		t.Errorf("client b input lost in merge: %+v", merged["b"])
	}
}

func TestApplyInputsShallow(t *testing.T) {
	s := &State{Tick: 4, Entities: []*Entity{NewPlayer("a", 0, 0)}, RNG: 1}
	next := ApplyInputsShallow(s, map[string]Input{"a": {ClientID: "a", DX: 2, DY: 1}}, 0.05)

	if next.Tick != 5 {
		t.Errorf("tick = %d, want 5", next.Tick)
	}
	p := next.Player("a")
	if p.VX != 2 || p.VY != 1 {
		t.Errorf("velocity = (%v, %v), want (2, 1)", p.VX, p.VY)
	}
	if math.Abs(p.X-0.1) > 1e-9 || math.Abs(p.Y-0.05) > 1e-9 {
		t.Errorf("position = (%v, %v), want (0.1, 0.05)", p.X, p.Y)
	}
	if s.Player("a").X != 0 {
		t.Error("shallow apply mutated the committed state")
	}
}

func TestApplyInputsShallowExpiresBullets(t *testing.T) {
	s := &State{Tick: 0, Entities: []*Entity{
		{ID: "b1", Type: EntityBullet, X: 0, VX: 10, Lifetime: 1},
		{ID: "b2", Type: EntityBullet, X: 0, VX: 10, Lifetime: 3},
	}, RNG: 1}
	next := ApplyInputsShallow(s, nil, 0.05)

	if next.Entity("b1") != nil {
		t.Error("expired bullet survived")
	}
	b2 := next.Entity("b2")
	if b2 == nil {
		t.Fatal("live bullet removed")
	}
	if math.Abs(b2.X-0.5) > 1e-9 {
		t.Errorf("bullet x = %v, want 0.5", b2.X)
	}
	if b2.Lifetime != 2 {
		t.Errorf("bullet lifetime = %d, want 2", b2.Lifetime)
	}
}

func TestApplyInputsShallowIgnoresUnknownClients(t *testing.T) {
	s := &State{Tick: 0, Entities: []*Entity{NewPlayer("a", 0, 0)}, RNG: 1}
	next := ApplyInputsShallow(s, map[string]Input{"ghost": {ClientID: "ghost", DX: 5}}, 0.05)
	if next.Player("a").X != 0 {
		t.Error("unknown client input affected an existing player")
	}
	if len(next.Entities) != 1 {
		t.Errorf("entity count changed: %d", len(next.Entities))
	}
}
