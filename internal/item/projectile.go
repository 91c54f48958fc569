package item

import "github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"

// HomingTurnRate bounds a homing projectile's per-tick angle correction,
// per spec.md §4.4 ("clamp to +-HOMING_TURN_RATE (~5 units)").
const HomingTurnRate fixedmath.Angle = 5

// ProjectileLifetimeCap is the hard lifetime ceiling (10s at 60Hz)
// regardless of homing or wall/kart collision.
const ProjectileLifetimeCap int32 = 10 * 60

// stepMotion advances a live track item by one tick: position +=
// unit(angle)*speed, with homing projectiles rotating toward
// targetPos first.
func stepMotion(ti *TrackItem, homing bool, targetPos fixedmath.Vec2, hasTarget bool) {
	if homing && hasTarget {
		desired := fixedmath.ToAngle(targetPos.Sub(ti.Position))
		diff := fixedmath.AngleDiff(ti.Angle, desired)
		if diff > HomingTurnRate {
			diff = HomingTurnRate
		} else if diff < -HomingTurnRate {
			diff = -HomingTurnRate
		}
		ti.Angle = (ti.Angle + diff).Normalize()
	}
	ti.Position = ti.Position.Add(fixedmath.FromAngle(ti.Angle).Scale(ti.Speed))
}
