package item

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

const (
	// TrackItemPoolSize is the fixed capacity of the projectile/hazard
	// pool, at least 32 per spec.md §3.
	TrackItemPoolSize = 32
	// ItemBoxPoolSize is the fixed capacity of item-box spawns per map,
	// at least 8 per spec.md §3.
	ItemBoxPoolSize = 8

	// InfiniteLifetime is the sentinel lifetime value for items (bananas)
	// that never expire on their own.
	InfiniteLifetime int32 = -1
	// NoTarget is the sentinel "no homing target" kart index.
	NoTarget int32 = -1
)

// TrackItem is one pool element: a live projectile or hazard.
type TrackItem struct {
	Tag           kart.ItemTag
	Position      fixedmath.Vec2
	StartPosition fixedmath.Vec2 // for oil's travel-distance fade
	Speed         fixedmath.Q16_8
	Angle         fixedmath.Angle
	HitboxWidth   fixedmath.Q16_8
	HitboxHeight  fixedmath.Q16_8
	LifetimeTicks int32 // -1 = infinite
	TargetKart    int32 // -1 if none
	Active        bool
}

// ItemBoxSpawn is a single item-box location and its respawn state.
type ItemBoxSpawn struct {
	Position      fixedmath.Vec2
	Active        bool
	RespawnTicks  int32
}

// allocateTrackItem scans for the first inactive slot and returns its
// index, or -1 if the pool is exhausted. Exhaustion is a silent drop per
// spec.md §4.4/§7; the caller decides whether to log it.
func allocateTrackItem(pool *[TrackItemPoolSize]TrackItem) int {
	for i := range pool {
		if !pool[i].Active {
			return i
		}
	}
	return -1
}
