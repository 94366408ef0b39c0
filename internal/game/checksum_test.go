package game

import "testing"

func TestChecksumEntityOrderInsensitive(t *testing.T) {
	a := NewPlayer("a", 1, 0)
	b := NewPlayer("b", 2, 0)
	s1 := &State{Tick: 5, Entities: []*Entity{a, b}, RNG: 42}
	s2 := &State{Tick: 5, Entities: []*Entity{b, a}, RNG: 42}
	if ComputeStateChecksum(s1) != ComputeStateChecksum(s2) {
		t.Error("checksum depends on entity array order")
	}
}

func TestChecksumQuantizesFloatNoise(t *testing.T) {
	a := NewPlayer("a", 0.3, 0)
	b := NewPlayer("a", 0.1+0.2, 0) // accumulates to 0.30000000000000004
	s1 := &State{Tick: 1, Entities: []*Entity{a}, RNG: 7}
	s2 := &State{Tick: 1, Entities: []*Entity{b}, RNG: 7}
	if ComputeStateChecksum(s1) != ComputeStateChecksum(s2) {
		t.Error("checksum sensitive to sub-millimeter float noise")
	}
}

func TestChecksumDetectsDivergence(t *testing.T) {
	base := func() *State {
		return &State{Tick: 3, Entities: []*Entity{NewPlayer("a", 1, 0)}, RNG: 9}
	}
	ref := ComputeStateChecksum(base())

	s := base()
	s.Tick = 4
	if ComputeStateChecksum(s) == ref {
		t.Error("tick change not reflected in checksum")
	}

	s = base()
	s.RNG = 10
	if ComputeStateChecksum(s) == ref {
		t.Error("RNG change not reflected in checksum")
	}

	s = base()
	s.Entities[0].HP = 50
	if ComputeStateChecksum(s) == ref {
		t.Error("hp change not reflected in checksum")
	}

	s = base()
	s.Entities[0].X += 0.01
	if ComputeStateChecksum(s) == ref {
		t.Error("position change above quantization not reflected in checksum")
	}
}

func TestChecksumCoversInventory(t *testing.T) {
	s := &State{Tick: 1, Entities: []*Entity{NewPlayer("a", 0, 0)}, RNG: 1}
	ref := ComputeStateChecksum(s)

	s.Entities[0].Inventory.Weapons[1].Ammo--
	if ComputeStateChecksum(s) == ref {
		t.Error("magazine change not reflected in checksum")
	}

	s = &State{Tick: 1, Entities: []*Entity{NewPlayer("a", 0, 0)}, RNG: 1}
	s.Entities[0].Inventory.Reserve["ar"] = 60
	if ComputeStateChecksum(s) == ref {
		t.Error("reserve change not reflected in checksum")
	}
}

func TestChecksumCoversBuildPieces(t *testing.T) {
	piece := &Entity{
		ID: "build-1", Type: EntityBuildPiece,
		X: 10, Y: 10, W: 2, H: 2, HP: 100,
		Owner: "a", BuildType: "wall", Material: MaterialWood,
	}
	s := &State{Tick: 1, Entities: []*Entity{piece}, RNG: 1}
	ref := ComputeStateChecksum(s)

	piece.EditState |= EditFlagWindow
	if ComputeStateChecksum(s) == ref {
		t.Error("edit flags not reflected in checksum")
	}
}
