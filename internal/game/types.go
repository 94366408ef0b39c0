package game

// EntityType tags the variant of an Entity.
type EntityType string

const (
	EntityPlayer     EntityType = "player"
	EntityBullet     EntityType = "bullet"
	EntityBuildPiece EntityType = "build_piece"
	EntityItem       EntityType = "item"
)

// JumpState tracks whether a player is mid-jump and which tick started it,
// so duplicate jump inputs on the same tick number stay idempotent.
type JumpState struct {
	Jumping      bool `json:"jumping" msgpack:"jumping"`
	LastJumpTick int  `json:"lastJumpTick" msgpack:"lastJumpTick"`
}

// MovementParams are the per-player movement tunables. Every player is
// created with the documented defaults; they travel with the entity so
// snapshots round-trip losslessly.
type MovementParams struct {
	MaxWalkSpeed     float64 `json:"maxWalkSpeed" msgpack:"maxWalkSpeed"`
	WalkAccel        float64 `json:"walkAccel" msgpack:"walkAccel"`
	AirControlFactor float64 `json:"airControlFactor" msgpack:"airControlFactor"`
	CrouchMultiplier float64 `json:"crouchMultiplier" msgpack:"crouchMultiplier"`
	SprintMultiplier float64 `json:"sprintMultiplier" msgpack:"sprintMultiplier"`
}

// Entity is the tagged union over player, bullet, build piece and item.
// Common fields are always meaningful; variant fields are meaningful only
// for the matching Type and stay at their zero values otherwise.
type Entity struct {
	ID   string     `json:"id" msgpack:"id"`
	Type EntityType `json:"type" msgpack:"type"`

	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	W  float64 `json:"w" msgpack:"w"`
	H  float64 `json:"h" msgpack:"h"`
	VX float64 `json:"vx" msgpack:"vx"`
	VY float64 `json:"vy" msgpack:"vy"`
	HP float64 `json:"hp" msgpack:"hp"`

	// Player fields
	Inventory   *Inventory     `json:"inventory,omitempty" msgpack:"inventory"`
	OnGround    bool           `json:"onGround,omitempty" msgpack:"onGround"`
	IsCrouching bool           `json:"isCrouching,omitempty" msgpack:"isCrouching"`
	IsSprinting bool           `json:"isSprinting,omitempty" msgpack:"isSprinting"`
	JumpState   JumpState      `json:"jumpState,omitempty" msgpack:"jumpState"`
	FallStartY  float64        `json:"fallStartY,omitempty" msgpack:"fallStartY"`
	Falling     bool           `json:"falling,omitempty" msgpack:"falling"`
	Momentum    float64        `json:"momentum,omitempty" msgpack:"momentum"`
	Movement    MovementParams `json:"movement,omitempty" msgpack:"movement"`
	Team        string         `json:"team,omitempty" msgpack:"team"`

	// Bullet and build piece fields
	Owner    string `json:"owner,omitempty" msgpack:"owner"`
	Lifetime int    `json:"lifetime,omitempty" msgpack:"lifetime"`

	// Build piece fields
	BuildType string    `json:"buildType,omitempty" msgpack:"buildType"`
	Material  Material  `json:"material,omitempty" msgpack:"material"`
	Rot       int       `json:"rot,omitempty" msgpack:"rot"`
	EditState EditFlags `json:"editState,omitempty" msgpack:"editState"`

	// Item fields
	ItemType    string `json:"itemType,omitempty" msgpack:"itemType"`
	RespawnTime int    `json:"respawnTime,omitempty" msgpack:"respawnTime"`
}

// Bounds returns the entity's world-space bounding box.
func (e *Entity) Bounds() AABB {
	return AABB{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Alive reports whether the entity still has hit points.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// State is one committed world snapshot. A State is replaced wholesale each
// tick and never mutated in place after being committed.
type State struct {
	Tick         int       `json:"tick" msgpack:"tick"`
	Entities     []*Entity `json:"entities" msgpack:"entities"`
	RNG          uint32    `json:"rng" msgpack:"rng"`
	LastChecksum string    `json:"lastChecksum" msgpack:"lastChecksum"`
}

// Entity returns the entity with the given id, or nil.
func (s *State) Entity(id string) *Entity {
	for _, e := range s.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Player returns the player entity for a client id, or nil.
func (s *State) Player(clientID string) *Entity {
	e := s.Entity(clientID)
	if e != nil && e.Type == EntityPlayer {
		return e
	}
	return nil
}

// Input is one client's intent for a single tick. It is consumed by the tick
// that applies it and never persisted.
type Input struct {
	Seq      int     `json:"seq" msgpack:"seq"`
	ClientID string  `json:"clientId" msgpack:"clientId"`
	DX       float64 `json:"dx" msgpack:"dx"`
	DY       float64 `json:"dy" msgpack:"dy"`
	Shoot    bool    `json:"shoot,omitempty" msgpack:"shoot"`
	Jump     bool    `json:"jump,omitempty" msgpack:"jump"`
	Crouch   bool    `json:"crouch,omitempty" msgpack:"crouch"`
	Sprint   bool    `json:"sprint,omitempty" msgpack:"sprint"`
	Slot     *int    `json:"slot,omitempty" msgpack:"slot"` // weapon slot switch request

	Build *BuildAction `json:"build,omitempty" msgpack:"build"`
}

// BuildAction is the optional build sub-record of an Input.
type BuildAction struct {
	Action    string   `json:"action" msgpack:"action"` // place|edit|remove|preview|turbo
	BuildType string   `json:"buildType,omitempty" msgpack:"buildType"`
	Material  Material `json:"material,omitempty" msgpack:"material"`
	Rot       int      `json:"rot,omitempty" msgpack:"rot"`
	X         float64  `json:"x,omitempty" msgpack:"x"`
	Y         float64  `json:"y,omitempty" msgpack:"y"`
	EndX      float64  `json:"endX,omitempty" msgpack:"endX"` // turbo only
	EndY      float64  `json:"endY,omitempty" msgpack:"endY"` // turbo only
	TargetID  string   `json:"targetId,omitempty" msgpack:"targetId"`
	Edit      EditKind `json:"edit,omitempty" msgpack:"edit"`
}

// DamageEvent records one application of damage during a tick, so the match
// layer can attribute kills without reaching into combat internals.
type DamageEvent struct {
	Tick     int     `json:"tick" msgpack:"tick"`
	Attacker string  `json:"attacker" msgpack:"attacker"`
	Target   string  `json:"target" msgpack:"target"`
	WeaponID string  `json:"weaponId" msgpack:"weaponId"`
	Amount   float64 `json:"amount" msgpack:"amount"`
	Headshot bool    `json:"headshot" msgpack:"headshot"`
	Lethal   bool    `json:"lethal" msgpack:"lethal"`
}
