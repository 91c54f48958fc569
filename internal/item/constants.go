package item

import "github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"

// Tick-based lifetimes and tunables, all expressed at RaceTickFreq (60Hz)
// per spec.md §4.4.
const (
	BananaLifetime = InfiniteLifetime
	BombLifetime   = 5 * 60
	OilLifetime    = 10 * 60

	ItemBoxRespawnTicks int32 = 5 * 60

	HazardPlacementOffset fixedmath.Q16_8 = 40 << 8 // 40 world units, Q16.8

	GreenShellSpeedMult fixedmath.Q16_8 = 0x180 // 1.5 in Q16.8 (1.5*256)
	RedShellSpeedMult   fixedmath.Q16_8 = 0x180 // 1.5
	MissileSpeedMult    fixedmath.Q16_8 = 0x1B3 // 1.7 (approx, 1.7*256=435.2 -> 435)

	KartSize         fixedmath.Q16_8 = 24 << 8 // nominal kart footprint, world units
	ShellHitboxSize  fixedmath.Q16_8 = 8 << 8
	MissileHitbox    fixedmath.Q16_8 = 10 << 8
	BananaHitbox     fixedmath.Q16_8 = 12 << 8
	OilHitbox        fixedmath.Q16_8 = 20 << 8
	BombHitbox       fixedmath.Q16_8 = 14 << 8
	ItemBoxHitbox    fixedmath.Q16_8 = 20 << 8

	BombExplosionRadius fixedmath.Q16_8 = 80 << 8
	BombExplosionImpulse fixedmath.Q16_8 = 300 << 8

	BananaKnockbackDivisor fixedmath.Q16_8 = 3 << 8 // speed / 3

	ShellKnockbackAngle fixedmath.Angle = fixedmath.AngleFull / 8 // 45 degrees
)
