package game

import "fmt"

// WeaponClass defines the category of weapon.
type WeaponClass string

const (
	WeaponClassMelee    WeaponClass = "melee"
	WeaponClassRifle    WeaponClass = "rifle"
	WeaponClassShotgun  WeaponClass = "shotgun"
	WeaponClassSMG      WeaponClass = "smg"
	WeaponClassLauncher WeaponClass = "launcher"
)

// WeaponConfig is immutable static data for one weapon id.
type WeaponConfig struct {
	ID                 string
	Class              WeaponClass
	Damage             float64
	RPM                float64 // rounds per minute, fire-rate gate at world level
	Spread             float64 // total spread arc in radians
	ProjectileSpeed    float64 // 0 = hitscan
	Pellets            int
	Range              float64
	HeadshotMultiplier float64
	AmmoPerShot        int // 0 = unlimited ammo
	MagazineSize       int
	ReloadTicks        int
}

// Hitscan reports whether the weapon resolves instantly via raycast.
// Zero-projectile-speed weapons, the pickaxe included, are all hitscan;
// melee is simply a hitscan ray clamped to a short range.
func (c WeaponConfig) Hitscan() bool {
	return c.ProjectileSpeed == 0
}

// weaponCatalog is the closed set of configured weapons.
var weaponCatalog = map[string]WeaponConfig{
	"pickaxe": {
		ID: "pickaxe", Class: WeaponClassMelee,
		Damage: 20, RPM: 75, Spread: 0,
		ProjectileSpeed: 0, Pellets: 1, Range: 2.5,
		HeadshotMultiplier: 1.0, AmmoPerShot: 0, MagazineSize: 0, ReloadTicks: 0,
	},
	"ar": {
		ID: "ar", Class: WeaponClassRifle,
		Damage: 25, RPM: 300, Spread: 0.04,
		ProjectileSpeed: 0, Pellets: 1, Range: 60,
		HeadshotMultiplier: 1.5, AmmoPerShot: 1, MagazineSize: 30, ReloadTicks: 50,
	},
	"shotgun": {
		ID: "shotgun", Class: WeaponClassShotgun,
		Damage: 9, RPM: 70, Spread: 0.35,
		ProjectileSpeed: 0, Pellets: 8, Range: 14,
		HeadshotMultiplier: 1.25, AmmoPerShot: 1, MagazineSize: 6, ReloadTicks: 80,
	},
	"smg": {
		ID: "smg", Class: WeaponClassSMG,
		Damage: 14, RPM: 600, Spread: 0.09,
		ProjectileSpeed: 0, Pellets: 1, Range: 35,
		HeadshotMultiplier: 1.3, AmmoPerShot: 1, MagazineSize: 25, ReloadTicks: 44,
	},
	"launcher": {
		ID: "launcher", Class: WeaponClassLauncher,
		Damage: 80, RPM: 40, Spread: 0.02,
		ProjectileSpeed: 18, Pellets: 1, Range: 80,
		HeadshotMultiplier: 1.0, AmmoPerShot: 1, MagazineSize: 2, ReloadTicks: 90,
	},
}

// WeaponConfigByID returns the config for a weapon id. An unknown id is a
// programming error, not a game condition, and panics.
func WeaponConfigByID(id string) WeaponConfig {
	cfg, ok := weaponCatalog[id]
	if !ok {
		panic(fmt.Sprintf("game: unknown weapon id %q", id))
	}
	return cfg
}

// WeaponState is the per-player mutable runtime state of one carried weapon.
type WeaponState struct {
	WeaponID        string `json:"weaponId" msgpack:"weaponId"`
	Ammo            int    `json:"ammo" msgpack:"ammo"`
	Reloading       bool   `json:"reloading" msgpack:"reloading"`
	ReloadTicksLeft int    `json:"reloadTicksLeft" msgpack:"reloadTicksLeft"`
	LastFireTick    int    `json:"lastFireTick" msgpack:"lastFireTick"`
}

// Inventory holds a player's weapons, the active slot, and reserve ammo
// keyed by weapon id.
type Inventory struct {
	Weapons    []WeaponState  `json:"weapons" msgpack:"weapons"`
	ActiveSlot int            `json:"activeSlot" msgpack:"activeSlot"`
	Reserve    map[string]int `json:"reserve" msgpack:"reserve"`
}

// DefaultInventory is the loadout every player entity is created with:
// a pickaxe and an AR with a full magazine plus reserve.
func DefaultInventory() *Inventory {
	return &Inventory{
		Weapons: []WeaponState{
			{WeaponID: "pickaxe"},
			{WeaponID: "ar", Ammo: weaponCatalog["ar"].MagazineSize},
		},
		ActiveSlot: 0,
		Reserve:    map[string]int{"ar": 90},
	}
}

func (inv *Inventory) clone() *Inventory {
	out := &Inventory{
		Weapons:    make([]WeaponState, len(inv.Weapons)),
		ActiveSlot: inv.ActiveSlot,
		Reserve:    make(map[string]int, len(inv.Reserve)),
	}
	copy(out.Weapons, inv.Weapons)
	for k, v := range inv.Reserve {
		out.Reserve[k] = v
	}
	return out
}

// Active returns the currently selected weapon state.
func (inv *Inventory) Active() *WeaponState {
	return &inv.Weapons[inv.ActiveSlot]
}

// SwitchWeapon selects a slot. Out-of-range slots are a no-op.
func (inv *Inventory) SwitchWeapon(slot int) {
	if slot < 0 || slot >= len(inv.Weapons) {
		return
	}
	inv.ActiveSlot = slot
}

// CanFireWeapon reports whether the active weapon has ammo and is not
// reloading. Weapons with AmmoPerShot 0 have unlimited ammo.
func (inv *Inventory) CanFireWeapon() bool {
	ws := inv.Active()
	cfg := WeaponConfigByID(ws.WeaponID)
	if ws.Reloading {
		return false
	}
	if cfg.AmmoPerShot == 0 {
		return true
	}
	return ws.Ammo >= cfg.AmmoPerShot
}

// FireWeapon debits the magazine for one shot. It returns false, leaving
// state untouched, when the weapon cannot fire.
func (inv *Inventory) FireWeapon() bool {
	if !inv.CanFireWeapon() {
		return false
	}
	ws := inv.Active()
	cfg := WeaponConfigByID(ws.WeaponID)
	ws.Ammo -= cfg.AmmoPerShot
	return true
}

// StartReload begins a reload on the active weapon. No-op when already
// reloading, the magazine is full, or there is no reserve ammo.
func (inv *Inventory) StartReload() {
	ws := inv.Active()
	cfg := WeaponConfigByID(ws.WeaponID)
	if ws.Reloading || cfg.MagazineSize == 0 || ws.Ammo >= cfg.MagazineSize {
		return
	}
	if inv.Reserve[ws.WeaponID] <= 0 {
		return
	}
	ws.Reloading = true
	ws.ReloadTicksLeft = cfg.ReloadTicks
}

// UpdateReload advances reload countdowns by one tick for every carried
// weapon. On completion it transfers min(needed, reserve) rounds from
// reserve into the magazine. Reload always runs to completion; there is no
// cancel path in the core.
func (inv *Inventory) UpdateReload() {
	for i := range inv.Weapons {
		ws := &inv.Weapons[i]
		if !ws.Reloading {
			continue
		}
		ws.ReloadTicksLeft--
		if ws.ReloadTicksLeft > 0 {
			continue
		}
		cfg := WeaponConfigByID(ws.WeaponID)
		needed := cfg.MagazineSize - ws.Ammo
		take := needed
		if reserve := inv.Reserve[ws.WeaponID]; take > reserve {
			take = reserve
		}
		ws.Ammo += take
		inv.Reserve[ws.WeaponID] -= take
		ws.Reloading = false
		ws.ReloadTicksLeft = 0
	}
}
