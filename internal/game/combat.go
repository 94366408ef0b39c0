package game

import (
	"fmt"
	"math"
)

// Projectile is a transient in-flight shot. Projectiles live in a
// World-private list, never in State.Entities, and are dropped silently
// when lifetime or traveled distance runs out.
type Projectile struct {
	ID           string
	Owner        string
	WeaponID     string
	X            float64
	Y            float64
	DirX         float64
	DirY         float64
	Speed        float64
	Damage       float64
	Range        float64
	HeadshotMult float64
	Hitscan      bool
	Lifetime     int
	Traveled     float64
}

// FireWeapon fires the shooter's active weapon toward (dirX, dirY),
// returning the spawned projectiles. Shotgun-class weapons emit one
// projectile per pellet, each independently perturbed within ±spread/2 by
// the shared PRNG. Projectile ids come from the PRNG as well, so two runs
// with the same seed name their shots identically.
func FireWeapon(shooter *Entity, dirX, dirY float64, tick, tickRate int, prng *PRNG) []*Projectile {
	inv := shooter.Inventory
	if inv == nil || !inv.Active().readyAt(tick, tickRate) || !inv.FireWeapon() {
		return nil
	}
	ws := inv.Active()
	ws.LastFireTick = tick
	cfg := WeaponConfigByID(ws.WeaponID)

	mag := math.Hypot(dirX, dirY)
	if mag == 0 {
		dirX, dirY = DefaultAimX, DefaultAimY
		mag = 1
	}
	baseAngle := math.Atan2(dirY/mag, dirX/mag)

	count := 1
	if cfg.Class == WeaponClassShotgun {
		count = cfg.Pellets
	}

	muzzleX := shooter.X + shooter.W/2
	muzzleY := shooter.Y + shooter.H*0.75

	projectiles := make([]*Projectile, 0, count)
	for i := 0; i < count; i++ {
		angle := baseAngle + (prng.NextFloat()-0.5)*cfg.Spread
		lifetime := ProjectileLifetimeTicks
		if cfg.Hitscan() {
			lifetime = HitscanLifetimeTicks
		}
		projectiles = append(projectiles, &Projectile{
			ID:           fmt.Sprintf("proj-%08x", prng.Next()),
			Owner:        shooter.ID,
			WeaponID:     cfg.ID,
			X:            muzzleX,
			Y:            muzzleY,
			DirX:         math.Cos(angle),
			DirY:         math.Sin(angle),
			Speed:        cfg.ProjectileSpeed,
			Damage:       cfg.Damage,
			Range:        cfg.Range,
			HeadshotMult: cfg.HeadshotMultiplier,
			Hitscan:      cfg.Hitscan(),
			Lifetime:     lifetime,
		})
	}
	return projectiles
}

// readyAt checks the weapon's fire-rate gate: enough ticks since the last
// shot for the configured rounds per minute.
func (ws *WeaponState) readyAt(tick, tickRate int) bool {
	cfg := WeaponConfigByID(ws.WeaponID)
	if cfg.RPM <= 0 {
		return true
	}
	gap := int(math.Ceil(float64(tickRate) * 60.0 / cfg.RPM))
	return ws.LastFireTick == 0 || tick-ws.LastFireTick >= gap
}

// SimulateProjectiles advances every projectile one tick against the given
// state, applying damage to whatever is hit. It returns the projectiles
// still in flight plus the damage events produced this tick.
func SimulateProjectiles(s *State, projectiles []*Projectile, dt float64, prng *PRNG) ([]*Projectile, []DamageEvent) {
	var events []DamageEvent
	surviving := projectiles[:0]

	for _, p := range projectiles {
		if p.Hitscan {
			if ev, ok := resolveHitscan(s, p, prng); ok {
				events = append(events, ev)
			}
			continue // hitscan never survives its tick
		}

		// Clamp the step to the remaining range so the final segment can
		// never carry a hit beyond max range.
		step := p.Speed * dt
		if remaining := p.Range - p.Traveled; step > remaining {
			step = remaining
		}
		p.X += p.DirX * step
		p.Y += p.DirY * step
		p.Traveled += step
		p.Lifetime--

		hit := false
		box := AABB{X: p.X - ProjectileHitboxSize/2, Y: p.Y - ProjectileHitboxSize/2, W: ProjectileHitboxSize, H: ProjectileHitboxSize}
		for _, e := range s.Entities {
			if e.ID == p.Owner || !damageable(e) {
				continue
			}
			if Intersects(box, e.Bounds()) {
				events = append(events, applyHit(s, p, e, p.Traveled, p.Y, prng))
				hit = true
				break
			}
		}
		if hit || p.Lifetime <= 0 || p.Traveled >= p.Range {
			continue
		}
		surviving = append(surviving, p)
	}

	return surviving, events
}

// resolveHitscan raycasts the projectile against all entities except its
// owner and applies damage to the closest hit within range.
func resolveHitscan(s *State, p *Projectile, prng *PRNG) (DamageEvent, bool) {
	var closest *Entity
	closestT := math.Inf(1)

	for _, e := range s.Entities {
		if e.ID == p.Owner || !damageable(e) {
			continue
		}
		t, ok := RayAABB(p.X, p.Y, p.DirX, p.DirY, e.Bounds())
		if ok && t <= p.Range && t < closestT {
			closest = e
			closestT = t
		}
	}
	if closest == nil {
		return DamageEvent{}, false
	}
	hitY := p.Y + p.DirY*closestT
	return applyHit(s, p, closest, closestT, hitY, prng), true
}

// applyHit computes final damage for a hit and applies it to the target.
// Damage falls off linearly to zero past 50% of max range, is multiplied by
// the headshot multiplier when the hit lands in the upper third of the
// target's box, gets a ±5% PRNG jitter, and is rounded with a floor of 1.
func applyHit(s *State, p *Projectile, target *Entity, dist, hitY float64, prng *PRNG) DamageEvent {
	dmg := p.Damage
	half := p.Range / 2
	if dist > half && half > 0 {
		falloff := 1 - (dist-half)/half
		if falloff < 0 {
			falloff = 0
		}
		dmg *= falloff
	}

	headshot := false
	if target.Type == EntityPlayer && hitY >= target.Y+target.H*2.0/3.0 {
		dmg *= p.HeadshotMult
		headshot = p.HeadshotMult > 1
	}

	dmg *= 0.95 + prng.NextFloat()*0.1
	final := math.Round(dmg)
	if final < 1 {
		final = 1
	}

	target.HP -= final
	lethal := target.HP <= 0
	if target.HP < 0 {
		target.HP = 0
	}

	return DamageEvent{
		Tick:     s.Tick,
		Attacker: p.Owner,
		Target:   target.ID,
		WeaponID: p.WeaponID,
		Amount:   final,
		Headshot: headshot,
		Lethal:   lethal,
	}
}

// damageable reports whether an entity can take projectile damage.
func damageable(e *Entity) bool {
	switch e.Type {
	case EntityPlayer:
		return e.Alive()
	case EntityBuildPiece:
		return true
	default:
		return false
	}
}
