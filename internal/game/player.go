package game

// NewPlayer creates a player entity with full health, the default loadout
// and the documented movement tunables.
func NewPlayer(id string, x, y float64) *Entity {
	return &Entity{
		ID:        id,
		Type:      EntityPlayer,
		X:         x,
		Y:         y,
		W:         PlayerWidth,
		H:         PlayerHeight,
		HP:        PlayerMaxHealth,
		Inventory: DefaultInventory(),
		OnGround:  true,
		Movement: MovementParams{
			MaxWalkSpeed:     DefaultMaxWalkSpeed,
			WalkAccel:        DefaultWalkAccel,
			AirControlFactor: DefaultAirControlFactor,
			CrouchMultiplier: DefaultCrouchMultiplier,
			SprintMultiplier: DefaultSprintMultiplier,
		},
	}
}

// ResetPlayer restores a player entity to a fresh spawn at (x, y), keeping
// its identity and team. Used by the match layer between rounds and for
// mid-round respawns.
func ResetPlayer(e *Entity, x, y float64) {
	e.X = x
	e.Y = y
	e.VX = 0
	e.VY = 0
	e.HP = PlayerMaxHealth
	e.Inventory = DefaultInventory()
	e.OnGround = true
	e.IsCrouching = false
	e.IsSprinting = false
	e.JumpState = JumpState{}
	e.FallStartY = 0
	e.Falling = false
	e.Momentum = 0
}

// NewItem creates a pickup entity. A nonzero RespawnTime means the item is
// consumed and counting down until it reappears.
func NewItem(id, itemType string, x, y float64) *Entity {
	return &Entity{
		ID:       id,
		Type:     EntityItem,
		X:        x,
		Y:        y,
		W:        0.8,
		H:        0.8,
		HP:       1,
		ItemType: itemType,
	}
}
