package game

import "math"

// AABB is an axis-aligned box whose (X, Y) is the minimum corner.
type AABB struct {
	X float64
	Y float64
	W float64
	H float64
}

// Intersects reports whether two boxes overlap (separating-axis test).
func Intersects(a, b AABB) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// Resolve returns the minimal translation vector that moves a out of b,
// along whichever axis has the smaller penetration depth. Exactly one
// component of the result is nonzero; both are zero when the boxes do not
// overlap. Resolve never touches velocity.
func Resolve(a, b AABB) (float64, float64) {
	if !Intersects(a, b) {
		return 0, 0
	}

	overlapX := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
	overlapY := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)

	if overlapX < overlapY {
		if a.X+a.W/2 < b.X+b.W/2 {
			return -(overlapX + ResolveEpsilon), 0
		}
		return overlapX + ResolveEpsilon, 0
	}
	if a.Y+a.H/2 < b.Y+b.H/2 {
		return 0, -(overlapY + ResolveEpsilon)
	}
	return 0, overlapY + ResolveEpsilon
}

// RayAABB intersects a ray starting at (ox, oy) with direction (dx, dy)
// against box b using the slab method. It returns the smallest non-negative
// ray parameter t and whether the ray hits at all.
func RayAABB(ox, oy, dx, dy float64, b AABB) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	if dx == 0 {
		if ox < b.X || ox > b.X+b.W {
			return 0, false
		}
	} else {
		t1 := (b.X - ox) / dx
		t2 := (b.X + b.W - ox) / dx
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if dy == 0 {
		if oy < b.Y || oy > b.Y+b.H {
			return 0, false
		}
	} else {
		t1 := (b.Y - oy) / dy
		t2 := (b.Y + b.H - oy) / dy
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMax < tMin || tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		return 0, true // ray starts inside the box
	}
	return tMin, true
}
