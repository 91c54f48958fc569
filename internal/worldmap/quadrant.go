// Package worldmap implements the 3x3 quadrant partitioning of the
// 1024x1024 world and the static per-map wall/checkpoint/spawn data the
// race tick consults every physics step.
package worldmap

import "github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"

const (
	// WorldSize is the side length of the square world in world units.
	WorldSize = 1024
	// QuadrantCols/QuadrantRows partition the world into a 3x3 grid.
	QuadrantCols = 3
	QuadrantRows = 3
	// QuadrantSize is the side length of one quadrant cell.
	QuadrantSize = WorldSize / QuadrantCols
)

// WallSegment is a static axis-aligned wall, represented as a line
// segment with an outward normal used to cancel the velocity component
// that would carry a kart through it.
type WallSegment struct {
	A, B   fixedmath.Vec2
	Normal fixedmath.Vec2 // unit outward normal, precomputed at map load
}

// WallMap partitions static walls by quadrant so collision lookups only
// scan the handful of segments relevant to a kart's current cell.
type WallMap struct {
	cells [QuadrantRows * QuadrantCols][]WallSegment
}

// QuadrantIndex returns the quadrant index [0, 9) containing pos, clamped
// to the world bounds so off-world positions still resolve to an edge cell.
func QuadrantIndex(pos fixedmath.Vec2) int {
	x := fixedmath.FixedToInt(pos.X)
	y := fixedmath.FixedToInt(pos.Y)
	col := clampCell(x / QuadrantSize)
	row := clampCell(y / QuadrantSize)
	return row*QuadrantCols + col
}

func clampCell(c int32) int32 {
	if c < 0 {
		return 0
	}
	if c >= QuadrantCols {
		return QuadrantCols - 1
	}
	return c
}

// NewWallMap builds a WallMap from a flat list of wall segments, bucketing
// each into every quadrant its bounding box touches.
func NewWallMap(segments []WallSegment) *WallMap {
	wm := &WallMap{}
	for _, seg := range segments {
		for _, idx := range quadrantsTouched(seg) {
			wm.cells[idx] = append(wm.cells[idx], seg)
		}
	}
	return wm
}

func quadrantsTouched(seg WallSegment) []int {
	a, b := QuadrantIndex(seg.A), QuadrantIndex(seg.B)
	c0, c1 := a%QuadrantCols, b%QuadrantCols
	r0, r1 := a/QuadrantCols, b/QuadrantCols
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	var out []int
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			out = append(out, r*QuadrantCols+c)
		}
	}
	return out
}

// WallsNear returns the wall segments registered in pos's quadrant.
func (wm *WallMap) WallsNear(pos fixedmath.Vec2) []WallSegment {
	if wm == nil {
		return nil
	}
	return wm.cells[QuadrantIndex(pos)]
}

// ResolveWallCollision checks prevPos -> newPos against the walls in
// newPos's quadrant. On intersection it restores the position to prevPos
// and zeroes the component of velocity along the wall normal, per
// spec.md §4.3 step 4. It returns the (possibly corrected) position and
// velocity.
func (wm *WallMap) ResolveWallCollision(prevPos, newPos, velocity fixedmath.Vec2) (fixedmath.Vec2, fixedmath.Vec2) {
	for _, wall := range wm.WallsNear(newPos) {
		if segmentsIntersect(prevPos, newPos, wall.A, wall.B) {
			vDotN := fixedmath.FixedMul(velocity.X, wall.Normal.X) + fixedmath.FixedMul(velocity.Y, wall.Normal.Y)
			corrected := velocity.Sub(wall.Normal.Scale(vDotN))
			return prevPos, corrected
		}
	}
	return newPos, velocity
}

// SegmentsIntersect reports whether segment p1-p2 crosses segment p3-p4.
// Exported for the item package's projectile-vs-wall despawn check, which
// needs the same test this package uses internally for kart collision.
func SegmentsIntersect(p1, p2, p3, p4 fixedmath.Vec2) bool {
	return segmentsIntersect(p1, p2, p3, p4)
}

// segmentsIntersect reports whether segment p1-p2 crosses segment p3-p4,
// using the standard orientation test in 64-bit intermediate arithmetic.
func segmentsIntersect(p1, p2, p3, p4 fixedmath.Vec2) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func direction(a, b, c fixedmath.Vec2) int64 {
	abx := int64(b.X - a.X)
	aby := int64(b.Y - a.Y)
	acx := int64(c.X - a.X)
	acy := int64(c.Y - a.Y)
	return abx*acy - aby*acx
}

func onSegment(a, b, p fixedmath.Vec2) bool {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// ClampToWorld clamps pos so a kart of the given size stays within
// [0, WorldSize - size] on both axes, per spec.md §4.3 step 4.
func ClampToWorld(pos fixedmath.Vec2, size fixedmath.Q16_8) fixedmath.Vec2 {
	max := fixedmath.IntToFixed(WorldSize) - size
	return fixedmath.Vec2{
		X: fixedmath.Clamp(pos.X, 0, max),
		Y: fixedmath.Clamp(pos.Y, 0, max),
	}
}
