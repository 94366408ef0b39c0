package game

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
)

// ComputeStateChecksum hashes a canonical rendering of the state with
// FNV-1a and returns it as a hex string. Two semantically equivalent states
// hash identically regardless of entity array order or float accumulation
// noise: every float is quantized (×1000, rounded) before hashing, entities
// are serialized in id order, and field order is fixed. The PRNG state is
// included so RNG divergence is detected too.
func ComputeStateChecksum(s *State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t:%d|r:%d", s.Tick, s.RNG)

	entities := make([]*Entity, len(s.Entities))
	copy(entities, s.Entities)
	sortEntitiesByID(entities)

	for _, e := range entities {
		writeEntityCanonical(&b, e)
	}

	h := fnv.New32a()
	h.Write([]byte(b.String()))
	return fmt.Sprintf("%08x", h.Sum32())
}

func writeEntityCanonical(b *strings.Builder, e *Entity) {
	fmt.Fprintf(b, "|e:%s;ty:%s;p:%d,%d;s:%d,%d;v:%d,%d;hp:%d",
		e.ID, e.Type,
		quantize(e.X), quantize(e.Y),
		quantize(e.W), quantize(e.H),
		quantize(e.VX), quantize(e.VY),
		quantize(e.HP))

	switch e.Type {
	case EntityPlayer:
		fmt.Fprintf(b, ";g:%s;c:%s;sp:%s;j:%s,%d;f:%s,%d;m:%d;tm:%s",
			boolToken(e.OnGround), boolToken(e.IsCrouching), boolToken(e.IsSprinting),
			boolToken(e.JumpState.Jumping), e.JumpState.LastJumpTick,
			boolToken(e.Falling), quantize(e.FallStartY),
			quantize(e.Momentum), e.Team)
		if e.Inventory != nil {
			writeInventoryCanonical(b, e.Inventory)
		}
	case EntityBullet:
		fmt.Fprintf(b, ";o:%s;lt:%d", e.Owner, e.Lifetime)
	case EntityBuildPiece:
		fmt.Fprintf(b, ";o:%s;bt:%s;mat:%s;rot:%d;ed:%d",
			e.Owner, e.BuildType, e.Material, e.Rot, e.EditState)
	case EntityItem:
		fmt.Fprintf(b, ";it:%s;rs:%d", e.ItemType, e.RespawnTime)
	}
}

func writeInventoryCanonical(b *strings.Builder, inv *Inventory) {
	fmt.Fprintf(b, ";inv:%d", inv.ActiveSlot)
	for _, ws := range inv.Weapons {
		fmt.Fprintf(b, ";w:%s,%d,%s,%d,%d",
			ws.WeaponID, ws.Ammo, boolToken(ws.Reloading), ws.ReloadTicksLeft, ws.LastFireTick)
	}
	keys := make([]string, 0, len(inv.Reserve))
	for k := range inv.Reserve {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, ";rsv:%s,%d", k, inv.Reserve[k])
	}
}

// quantize eliminates float representation noise before hashing.
func quantize(v float64) int64 {
	return int64(math.Round(v * 1000))
}

func boolToken(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
