package game

import "math"

// ProcessMovement runs the full per-player movement model over a state that
// has already had the shallow input pass applied, overriding it: each player
// is rewound to prev's committed motion state, then the model computes the
// tick's velocity and integrates position from that. Input DX is pure
// horizontal intent (only its sign matters, target speed bounds the rest);
// DY participates only in aiming and never drives motion. Players are
// processed in entity-id lexicographic order.
func ProcessMovement(s, prev *State, inputs map[string]Input, dt float64) {
	for _, p := range sortedPlayers(s) {
		if prev != nil {
			if pp := prev.Player(p.ID); pp != nil {
				p.X, p.Y = pp.X, pp.Y
				p.VX, p.VY = pp.VX, pp.VY
			}
		}
		if !p.Alive() {
			continue
		}
		in, ok := inputs[p.ID]
		if !ok {
			in = Input{ClientID: p.ID}
		}
		stepCrouch(p, in)
		stepJump(p, in, s.Tick)
		if p.OnGround {
			stepGround(p, in, dt)
		} else {
			stepAir(p, in, dt)
		}
		p.X += p.VX * dt
		stepGravity(s, p, dt)
		p.Momentum = math.Abs(p.VX)
	}
}

// stepCrouch handles the crouch toggle and the one-time slide impulse.
// Sprint is forcibly off while crouching.
func stepCrouch(p *Entity, in Input) {
	if in.Crouch && !p.IsCrouching {
		if p.IsSprinting && p.OnGround && p.Momentum > SlideMomentumThreshold {
			speed := math.Hypot(p.VX, p.VY)
			if speed > 0 {
				p.VX += p.VX / speed * SlideImpulse
				p.VY += p.VY / speed * SlideImpulse
			}
		}
		p.IsCrouching = true
	} else if !in.Crouch && p.IsCrouching {
		p.IsCrouching = false
	}
	p.IsSprinting = in.Sprint && !p.IsCrouching
}

// stepJump applies the jump impulse. A jump only triggers on the ground and
// at most once per tick number, so a duplicated input on the same tick
// cannot double-jump.
func stepJump(p *Entity, in Input, tick int) {
	if !in.Jump || !p.OnGround || p.JumpState.LastJumpTick == tick {
		return
	}
	p.VY = JumpImpulse
	p.OnGround = false
	p.JumpState = JumpState{Jumping: true, LastJumpTick: tick}
	p.FallStartY = p.Y
	p.Falling = true
}

// stepGround accelerates toward the input target speed on the ground, with
// linear friction when there is no horizontal input. Crouch and sprint
// multipliers are mutually exclusive; crouch wins.
func stepGround(p *Entity, in Input, dt float64) {
	target := targetSpeed(p) * direction(in.DX)
	if in.DX != 0 {
		p.VX = approach(p.VX, target, p.Movement.WalkAccel*dt)
		return
	}
	p.VX = approach(p.VX, 0, Friction*dt)
}

// stepAir is the same acceleration-toward-target logic scaled by the air
// control factor, plus multiplicative air resistance.
func stepAir(p *Entity, in Input, dt float64) {
	if in.DX != 0 {
		target := targetSpeed(p) * direction(in.DX)
		p.VX = approach(p.VX, target, p.Movement.WalkAccel*p.Movement.AirControlFactor*dt)
	}
	p.VX *= 1.0 - AirResistance*dt
}

// stepGravity integrates vertical motion, lands the player on the floor
// plane or on top of ground-like entities, and applies fall damage exactly
// once on the landing tick.
func stepGravity(s *State, p *Entity, dt float64) {
	prevY := p.Y
	p.VY -= Gravity * dt
	p.Y += p.VY * dt

	landed := false
	if p.Y <= 0 {
		p.Y = 0
		p.VY = 0
		landed = true
	} else {
		for _, other := range groundLike(s, p) {
			top := other.Y + other.H
			if prevY >= top && Intersects(p.Bounds(), other.Bounds()) {
				p.Y = top
				p.VY = 0
				landed = true
				break
			}
		}
	}

	if landed {
		wasAirborne := !p.OnGround
		p.OnGround = true
		p.JumpState.Jumping = false
		if wasAirborne && p.Falling {
			applyFallDamage(p)
		}
		p.Falling = false
		return
	}

	if p.OnGround {
		// Walked off an edge: start tracking the fall from here.
		p.OnGround = false
		p.FallStartY = prevY
		p.Falling = true
	}
}

// applyFallDamage deals floor((fallDistance - threshold) * rate) when the
// fall distance exceeds the threshold, clamping hp at zero.
func applyFallDamage(p *Entity) {
	dist := p.FallStartY - p.Y
	if dist <= FallDamageThreshold {
		return
	}
	dmg := math.Floor((dist - FallDamageThreshold) * FallDamageRate)
	p.HP -= dmg
	if p.HP < 0 {
		p.HP = 0
	}
}

// groundLike returns the entities a player can stand on, in id order.
func groundLike(s *State, p *Entity) []*Entity {
	out := make([]*Entity, 0, len(s.Entities))
	for _, e := range s.Entities {
		if e.ID == p.ID {
			continue
		}
		if e.Type == EntityBuildPiece || (e.Type == EntityPlayer && e.Alive()) {
			out = append(out, e)
		}
	}
	sortEntitiesByID(out)
	return out
}

func targetSpeed(p *Entity) float64 {
	speed := p.Movement.MaxWalkSpeed
	if p.IsCrouching {
		return speed * p.Movement.CrouchMultiplier
	}
	if p.IsSprinting {
		return speed * p.Movement.SprintMultiplier
	}
	return speed
}

func direction(dx float64) float64 {
	if dx > 0 {
		return 1
	}
	if dx < 0 {
		return -1
	}
	return 0
}

// approach moves current toward target by at most maxDelta.
func approach(current, target, maxDelta float64) float64 {
	if current < target {
		current += maxDelta
		if current > target {
			current = target
		}
		return current
	}
	current -= maxDelta
	if current < target {
		current = target
	}
	return current
}
