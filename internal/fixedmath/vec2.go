package fixedmath

import "math"

// Vec2 is a pair of Q16.8 scalars.
type Vec2 struct {
	X, Y Q16_8
}

// Zero is the additive identity vector.
var Zero = Vec2{}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a scaled by the scalar s.
func (a Vec2) Scale(s Q16_8) Vec2 {
	return Vec2{FixedMul(a.X, s), FixedMul(a.Y, s)}
}

// IsZero reports whether both components are exactly zero.
func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// Len returns the non-negative Euclidean length of a.
func (a Vec2) Len() Q16_8 {
	return Sqrt(FixedMul(a.X, a.X) + FixedMul(a.Y, a.Y))
}

// Normalize returns a unit vector in the direction of a. The zero vector
// normalizes to the zero vector.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{FixedDiv(a.X, l), FixedDiv(a.Y, l)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) Q16_8 {
	return a.Sub(b).Len()
}

// DistanceSquared returns the squared Euclidean distance between a and b,
// avoiding the sqrt in the hot path (collision-radius comparisons only
// need the squared value).
func DistanceSquared(a, b Vec2) Q16_8 {
	d := a.Sub(b)
	return FixedMul(d.X, d.X) + FixedMul(d.Y, d.Y)
}

// FromAngle returns the unit vector for angle a via table lookup.
func FromAngle(a Angle) Vec2 {
	return Vec2{CosFixed(a), SinFixed(a)}
}

// ToAngle returns the nearest integer angle index of a non-zero vector,
// ties broken toward the lower index. The zero vector returns 0.
func ToAngle(v Vec2) Angle {
	if v.IsZero() {
		return 0
	}
	// atan2 via the precomputed table would require a reverse lookup;
	// instead we scan the table for the entry whose direction vector has
	// the largest dot product with v divided by that entry's own length
	// (the rounded table entries are not all exactly 256 long), i.e. the
	// smallest angular distance, which keeps every angle computation
	// anchored to the same single source of truth as
	// FromAngle/SinFixed/CosFixed.
	best := Angle(0)
	bestScore := math.Inf(-1)
	for i := 0; i < AngleFull; i++ {
		cand := Angle(i)
		c, s := int64(CosFixed(cand)), int64(SinFixed(cand))
		dot := int64(v.X)*c + int64(v.Y)*s
		score := float64(dot) / math.Sqrt(float64(c*c+s*s))
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}
