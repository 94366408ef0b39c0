package game

// Simulation timing constants
const (
	TickRate = 20 // Server simulation ticks per second
)

// Player constants
const (
	PlayerWidth     = 1.0
	PlayerHeight    = 1.8
	PlayerMaxHealth = 100.0
)

// Movement constants. These are fixed simulation constants, not configuration:
// two builds that disagree on any of them produce different checksums.
const (
	Gravity                = 20.0
	JumpImpulse            = 8.0
	Friction               = 15.0
	AirResistance          = 2.0
	SlideImpulse           = 3.0
	SlideMomentumThreshold = 3.0
	FallDamageThreshold    = 10.0
	FallDamageRate         = 5.0

	DefaultMaxWalkSpeed     = 5.0
	DefaultWalkAccel        = 20.0
	DefaultAirControlFactor = 0.3
	DefaultCrouchMultiplier = 0.5
	DefaultSprintMultiplier = 1.8
)

// Projectile constants
const (
	ProjectileLifetimeTicks = 120 // ~6s at 20Hz for traveling projectiles
	HitscanLifetimeTicks    = 1
	ProjectileHitboxSize    = 0.1
)

// Default aim direction used when a shooting player is stationary.
const (
	DefaultAimX = 1.0
	DefaultAimY = 0.0
)

// Building constants
const (
	BuildGridSize = 2.0
)

// Collision resolution epsilon: separated boxes get pushed this far past
// touching so integer-boundary contacts do not immediately re-collide.
const ResolveEpsilon = 0.001
