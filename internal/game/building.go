package game

import (
	"fmt"
	"math"
	"sort"
)

// Material is the substance of a build piece.
type Material string

const (
	MaterialWood  Material = "wood"
	MaterialBrick Material = "brick"
	MaterialMetal Material = "metal"
)

// MaterialConfig holds per-material durability and build timing.
type MaterialConfig struct {
	HP        float64
	BuildTime int // ticks until fully built
}

// MaterialConfigs orders materials by durability: wood < brick < metal.
var MaterialConfigs = map[Material]MaterialConfig{
	MaterialWood:  {HP: 100, BuildTime: 20},
	MaterialBrick: {HP: 200, BuildTime: 40},
	MaterialMetal: {HP: 400, BuildTime: 60},
}

// EditKind names one structural edit.
type EditKind string

const (
	EditWindow   EditKind = "window"
	EditDoor     EditKind = "door"
	EditTriangle EditKind = "triangle"
)

// EditFlags is the bitmask of edits applied to a piece. The set is closed
// over {window, door, triangle}.
type EditFlags uint8

const (
	EditFlagWindow EditFlags = 1 << iota
	EditFlagDoor
	EditFlagTriangle
)

func (k EditKind) flag() (EditFlags, bool) {
	switch k {
	case EditWindow:
		return EditFlagWindow, true
	case EditDoor:
		return EditFlagDoor, true
	case EditTriangle:
		return EditFlagTriangle, true
	}
	return 0, false
}

// editHPCost is the durability price of cutting into a piece. A door costs
// more than a window.
var editHPCost = map[EditKind]float64{
	EditWindow:   10,
	EditDoor:     25,
	EditTriangle: 15,
}

// buildDimensions gives each build type's footprint in grid units
// (width, height). Rotations of 90 and 270 swap the two.
var buildDimensions = map[string][2]float64{
	"wall":  {1, 1},
	"floor": {1, 0.25},
	"ramp":  {1, 1},
}

// Build placement error reasons.
const (
	buildErrInvalidRotation = "invalid rotation"
	buildErrUnknownType     = "unknown build type"
	buildErrOccupied        = "occupied"
	buildErrNotFound        = "not found"
	buildErrNotAuthorized   = "not authorized"
	buildErrAlreadyApplied  = "already applied"
)

// BuildResult is the typed outcome of one build action. Failures never
// mutate state.
type BuildResult struct {
	Success bool    `json:"success" msgpack:"success"`
	Error   string  `json:"error,omitempty" msgpack:"error"`
	Entity  *Entity `json:"-" msgpack:"-"`
	GridX   int     `json:"gridX" msgpack:"gridX"`
	GridY   int     `json:"gridY" msgpack:"gridY"`
	WorldX  float64 `json:"worldX" msgpack:"worldX"`
	WorldY  float64 `json:"worldY" msgpack:"worldY"`
}

// SnapToGrid floors world coordinates to integer grid coordinates.
func SnapToGrid(worldX, worldY float64) (int, int) {
	return int(math.Floor(worldX / BuildGridSize)), int(math.Floor(worldY / BuildGridSize))
}

// GridToWorld is the exact inverse scaling of SnapToGrid:
// SnapToGrid(GridToWorld(g)) == g for all integer g.
func GridToWorld(gridX, gridY int) (float64, float64) {
	return float64(gridX) * BuildGridSize, float64(gridY) * BuildGridSize
}

// buildAABB derives the world-space box for a piece at a grid cell, scaled
// by the grid size and oriented by rotation.
func buildAABB(buildType string, gridX, gridY, rot int) (AABB, bool) {
	dims, ok := buildDimensions[buildType]
	if !ok {
		return AABB{}, false
	}
	w, h := dims[0]*BuildGridSize, dims[1]*BuildGridSize
	if rot == 90 || rot == 270 {
		w, h = h, w
	}
	wx, wy := GridToWorld(gridX, gridY)
	return AABB{X: wx, Y: wy, W: w, H: h}, true
}

func validRotation(rot int) bool {
	return rot == 0 || rot == 90 || rot == 180 || rot == 270
}

// ValidateBuildPlacement checks rotation and overlap against existing build
// pieces. It returns the would-be box and an empty reason on success.
func ValidateBuildPlacement(s *State, buildType string, gridX, gridY, rot int) (AABB, string) {
	if !validRotation(rot) {
		return AABB{}, buildErrInvalidRotation
	}
	box, ok := buildAABB(buildType, gridX, gridY, rot)
	if !ok {
		return AABB{}, buildErrUnknownType
	}
	for _, e := range s.Entities {
		if e.Type == EntityBuildPiece && Intersects(box, e.Bounds()) {
			return AABB{}, buildErrOccupied
		}
	}
	return box, ""
}

// PlaceBuild validates a placement and constructs the build piece entity.
// The entity is returned without being inserted into state; insertion is the
// caller's responsibility, which keeps the function observable only through
// its result.
func PlaceBuild(s *State, owner, buildType string, material Material, gridX, gridY, rot int, prng *PRNG) BuildResult {
	wx, wy := GridToWorld(gridX, gridY)
	result := BuildResult{GridX: gridX, GridY: gridY, WorldX: wx, WorldY: wy}

	box, reason := ValidateBuildPlacement(s, buildType, gridX, gridY, rot)
	if reason != "" {
		result.Error = reason
		return result
	}
	mat, ok := MaterialConfigs[material]
	if !ok {
		result.Error = fmt.Sprintf("unknown material %q", material)
		return result
	}

	result.Success = true
	result.Entity = &Entity{
		ID:        fmt.Sprintf("build-%08x", prng.Next()),
		Type:      EntityBuildPiece,
		X:         box.X,
		Y:         box.Y,
		W:         box.W,
		H:         box.H,
		HP:        mat.HP,
		Owner:     owner,
		BuildType: buildType,
		Material:  material,
		Rot:       rot,
	}
	return result
}

// PreviewBuild is the pure read-only variant of placement: same grid/world
// position and same success or error as PlaceBuild would determine, with no
// entity constructed and no state touched.
func PreviewBuild(s *State, buildType string, gridX, gridY, rot int) BuildResult {
	wx, wy := GridToWorld(gridX, gridY)
	result := BuildResult{GridX: gridX, GridY: gridY, WorldX: wx, WorldY: wy}
	if _, reason := ValidateBuildPlacement(s, buildType, gridX, gridY, rot); reason != "" {
		result.Error = reason
		return result
	}
	result.Success = true
	return result
}

// EditBuild applies one edit to a piece via bitflag OR. It rejects repeats
// of an already-applied edit and callers who do not own the piece, and
// debits the piece's hp by the edit's fixed cost.
func EditBuild(s *State, owner, targetID string, kind EditKind) BuildResult {
	flag, ok := kind.flag()
	if !ok {
		return BuildResult{Error: fmt.Sprintf("unknown edit %q", kind)}
	}
	piece := s.Entity(targetID)
	if piece == nil || piece.Type != EntityBuildPiece {
		return BuildResult{Error: buildErrNotFound}
	}
	if piece.Owner != owner {
		return BuildResult{Error: buildErrNotAuthorized}
	}
	if piece.EditState&flag != 0 {
		return BuildResult{Error: buildErrAlreadyApplied}
	}
	piece.EditState |= flag
	piece.HP -= editHPCost[kind]
	if piece.HP < 0 {
		piece.HP = 0
	}
	return BuildResult{Success: true, WorldX: piece.X, WorldY: piece.Y}
}

// RemoveBuild deletes a piece, gated on ownership.
func RemoveBuild(s *State, owner, targetID string) BuildResult {
	for i, e := range s.Entities {
		if e.ID != targetID || e.Type != EntityBuildPiece {
			continue
		}
		if e.Owner != owner {
			return BuildResult{Error: buildErrNotAuthorized}
		}
		s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
		return BuildResult{Success: true, WorldX: e.X, WorldY: e.Y}
	}
	return BuildResult{Error: buildErrNotFound}
}

// ProcessTurboBuild walks the line of grid cells from start to end,
// attempting a placement at every cell. Individual failures (an occupied
// cell, say) do not abort the run; the caller observes one result per cell.
// Successes are committed into state immediately so later cells in the same
// run see them.
func ProcessTurboBuild(s *State, owner, buildType string, material Material, startGX, startGY, endGX, endGY, rot int, prng *PRNG) []BuildResult {
	dx := endGX - startGX
	dy := endGY - startGY
	steps := maxAbs(dx, dy)
	stepX := sign(dx)
	stepY := sign(dy)

	results := make([]BuildResult, 0, steps+1)
	for i := 0; i <= steps; i++ {
		gx := startGX + stepX*minInt(i, abs(dx))
		gy := startGY + stepY*minInt(i, abs(dy))
		res := PlaceBuild(s, owner, buildType, material, gx, gy, rot, prng)
		if res.Success {
			s.Entities = append(s.Entities, res.Entity)
		}
		results = append(results, res)
	}
	return results
}

// ProcessBuildingInputs applies each client's single build action for the
// tick, in lexicographic client-id order. Placements commit immediately, so
// later clients in the same tick contend against earlier clients' pieces:
// contention resolves by id order, never arrival time.
func ProcessBuildingInputs(s *State, inputs map[string]Input, prng *PRNG) map[string][]BuildResult {
	ids := make([]string, 0, len(inputs))
	for id, in := range inputs {
		if in.Build != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	results := make(map[string][]BuildResult, len(ids))
	for _, id := range ids {
		act := inputs[id].Build
		switch act.Action {
		case "place":
			gx, gy := SnapToGrid(act.X, act.Y)
			res := PlaceBuild(s, id, act.BuildType, act.Material, gx, gy, act.Rot, prng)
			if res.Success {
				s.Entities = append(s.Entities, res.Entity)
			}
			results[id] = []BuildResult{res}
		case "turbo":
			sgx, sgy := SnapToGrid(act.X, act.Y)
			egx, egy := SnapToGrid(act.EndX, act.EndY)
			results[id] = ProcessTurboBuild(s, id, act.BuildType, act.Material, sgx, sgy, egx, egy, act.Rot, prng)
		case "edit":
			results[id] = []BuildResult{EditBuild(s, id, act.TargetID, act.Edit)}
		case "remove":
			results[id] = []BuildResult{RemoveBuild(s, id, act.TargetID)}
		case "preview":
			gx, gy := SnapToGrid(act.X, act.Y)
			results[id] = []BuildResult{PreviewBuild(s, act.BuildType, gx, gy, act.Rot)}
		default:
			results[id] = []BuildResult{{Error: fmt.Sprintf("unknown build action %q", act.Action)}}
		}
	}
	return results
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxAbs(a, b int) int {
	if abs(a) > abs(b) {
		return abs(a)
	}
	return abs(b)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
