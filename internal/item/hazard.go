package item

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

// lifetimeForTag returns the tick lifetime a freshly placed item of tag
// should carry, per spec.md §4.4's "Lifetimes: banana = infinite, bomb =
// 5s, oil = 10s" and the 10s hard cap on every projectile.
func lifetimeForTag(tag kart.ItemTag) int32 {
	switch tag {
	case kart.ItemBanana:
		return BananaLifetime
	case kart.ItemBomb:
		return BombLifetime
	case kart.ItemOil:
		return OilLifetime
	default:
		return ProjectileLifetimeCap
	}
}

// hitboxForTag returns the nominal full hitbox extent used in pickup/
// collision-radius arithmetic for tag (halved together with KartSize).
func hitboxForTag(tag kart.ItemTag) fixedmath.Q16_8 {
	switch tag {
	case kart.ItemBanana:
		return BananaHitbox
	case kart.ItemOil:
		return OilHitbox
	case kart.ItemBomb:
		return BombHitbox
	case kart.ItemMissile:
		return MissileHitbox
	default:
		return ShellHitboxSize
	}
}

// isHazardTag reports whether tag is placed behind the kart rather than
// fired ahead of it.
func isHazardTag(tag kart.ItemTag) bool {
	switch tag {
	case kart.ItemBanana, kart.ItemBomb, kart.ItemOil:
		return true
	default:
		return false
	}
}

// isProjectileTag reports whether tag is fired ahead of the kart.
func isProjectileTag(tag kart.ItemTag) bool {
	switch tag {
	case kart.ItemGreenShell, kart.ItemRedShell, kart.ItemMissile:
		return true
	default:
		return false
	}
}

// IsProjectileTag reports whether tag is fired ahead of the kart rather
// than placed behind it or applied as a self-effect, so callers outside
// this package (the fireForward input gate in race.RaceState) can tell
// without re-deriving the tag classification.
func IsProjectileTag(tag kart.ItemTag) bool {
	return isProjectileTag(tag)
}

// projectileSpeedMultiplier returns the tag-specific multiple of the
// firing kart's MaxSpeed, per spec.md §4.4.
func projectileSpeedMultiplier(tag kart.ItemTag) fixedmath.Q16_8 {
	switch tag {
	case kart.ItemGreenShell:
		return GreenShellSpeedMult
	case kart.ItemRedShell:
		return RedShellSpeedMult
	case kart.ItemMissile:
		return MissileSpeedMult
	default:
		return fixedmath.IntToFixed(1)
	}
}

// hazardPlacementPosition computes kart position + 40 units along
// angle+180deg, per spec.md §4.4.
func hazardPlacementPosition(pos fixedmath.Vec2, facing fixedmath.Angle) fixedmath.Vec2 {
	behind := (facing + fixedmath.AngleHalf).Normalize()
	return pos.Add(fixedmath.FromAngle(behind).Scale(HazardPlacementOffset))
}

// projectileSpawnPosition spawns the projectile ahead of the kart so it
// does not immediately collide with its own firer.
func projectileSpawnPosition(pos fixedmath.Vec2, facing fixedmath.Angle) fixedmath.Vec2 {
	return pos.Add(fixedmath.FromAngle(facing).Scale(KartSize))
}
