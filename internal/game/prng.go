package game

// defaultSeed replaces a zero seed. Xorshift has a fixed point at zero, so a
// zero state must never be allowed into the generator.
const defaultSeed uint32 = 0x9E3779B9

// PRNG is a seeded 32-bit xorshift generator. It is the sole source of
// randomness for the simulation: two generators constructed with the same
// seed and driven with the same call sequence produce bit-identical output.
type PRNG struct {
	state uint32
}

// NewPRNG creates a generator from a 32-bit seed.
func NewPRNG(seed uint32) *PRNG {
	if seed == 0 {
		seed = defaultSeed
	}
	return &PRNG{state: seed}
}

// Next returns the next unsigned 32-bit value and advances the state.
func (p *PRNG) Next() uint32 {
	x := p.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	p.state = x
	return x
}

// NextFloat returns a float in [0, 1).
func (p *PRNG) NextFloat() float64 {
	return float64(p.Next()) / 4294967296.0
}

// NextInt returns an integer in [min, max] inclusive.
func (p *PRNG) NextInt(min, max int) int {
	if max <= min {
		return min
	}
	span := uint32(max - min + 1)
	return min + int(p.Next()%span)
}

// NextBool returns true with probability prob.
func (p *PRNG) NextBool(prob float64) bool {
	return p.NextFloat() < prob
}

// State returns the raw generator state for serialization.
func (p *PRNG) State() uint32 {
	return p.state
}

// SetState restores a previously observed state. A zero value is replaced by
// the default seed, matching NewPRNG.
func (p *PRNG) SetState(state uint32) {
	if state == 0 {
		state = defaultSeed
	}
	p.state = state
}
