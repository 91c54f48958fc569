package item

import (
	"math/rand"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/telemetry"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

// RankedKart is the minimal view System needs of a kart for target
// selection and collision resolution, independent of the kart's slot
// index in RaceState's array (TrackItem stores indices, never pointers,
// per spec.md §9's circular-reference note).
type RankedKart struct {
	Index int32
	Rank  int32
	Kart  *kart.Kart
}

// System owns the TrackItem and ItemBoxSpawn pools, the rank-indexed
// probability table, the seeded PRNG and the local player's status
// effects, per spec.md §3/§4.4.
type System struct {
	TrackItems [TrackItemPoolSize]TrackItem
	Boxes      [ItemBoxPoolSize]ItemBoxSpawn

	Table ProbabilityTable
	rng   *rand.Rand

	LocalIndex int32
	Effects    PlayerEffects
}

// NewSystem builds an ItemSystem for the given map's item-box spawns,
// seeded deterministically for reproducible local randomness (spec.md
// §4.4's determinism note: peers do not need to agree on the draw itself,
// only on the broadcast outcome).
func NewSystem(spawns []worldmap.ItemBoxSpawnPoint, seed int64, localIndex int32) *System {
	s := &System{
		Table:      DefaultProbabilityTable,
		rng:        rand.New(rand.NewSource(seed)),
		LocalIndex: localIndex,
	}
	for i := 0; i < ItemBoxPoolSize && i < len(spawns); i++ {
		s.Boxes[i] = ItemBoxSpawn{Position: spawns[i].Position, Active: true}
	}
	return s
}

// Reset reactivates every item box and clears the live item pool and
// local effects, for Race_Reset.
func (s *System) Reset(spawns []worldmap.ItemBoxSpawnPoint) {
	for i := range s.TrackItems {
		s.TrackItems[i] = TrackItem{}
	}
	for i := range s.Boxes {
		if i < len(spawns) {
			s.Boxes[i] = ItemBoxSpawn{Position: spawns[i].Position, Active: true}
		}
	}
	s.Effects = PlayerEffects{}
}

// spawnTrackItem allocates a pool slot and fills it, or silently drops
// the spawn (logging at debug level) if the pool is exhausted.
func (s *System) spawnTrackItem(ti TrackItem) {
	idx := allocateTrackItem(&s.TrackItems)
	if idx < 0 {
		telemetry.Log.Debug().Str("tag", tagName(ti.Tag)).Msg("item pool exhausted, spawn dropped")
		return
	}
	ti.Active = true
	s.TrackItems[idx] = ti
}

// TryPickupBox checks the local kart's position against every active
// item box and, on overlap, deactivates it, starts its respawn timer,
// draws an item by rank, and returns the box index and the drawn tag.
// Per spec.md §4.4, only the local player's pickup produces an
// inventory item.
func (s *System) TryPickupBox(localPos fixedmath.Vec2, localRank int32) (index int32, tag kart.ItemTag, ok bool) {
	radius := fixedmath.FixedDiv(KartSize+ItemBoxHitbox, fixedmath.IntToFixed(2))
	for i := range s.Boxes {
		box := &s.Boxes[i]
		if !box.Active {
			continue
		}
		if fixedmath.Distance(localPos, box.Position) <= radius {
			box.Active = false
			box.RespawnTicks = ItemBoxRespawnTicks
			drawn := DrawItem(s.Table, localRank, s.rng)
			return int32(i), drawn, true
		}
	}
	return 0, kart.ItemNone, false
}

// ReceiveBoxPickup applies a remote BOX_PICKUP event: deactivate the
// indicated box and start its respawn timer, without drawing an item.
func (s *System) ReceiveBoxPickup(index int32) {
	if index < 0 || int(index) >= len(s.Boxes) {
		return
	}
	box := &s.Boxes[index]
	box.Active = false
	box.RespawnTicks = ItemBoxRespawnTicks
}

// TickBoxRespawns decrements every inactive box's respawn countdown,
// flipping it active once the countdown reaches zero.
func (s *System) TickBoxRespawns() {
	for i := range s.Boxes {
		box := &s.Boxes[i]
		if box.Active {
			continue
		}
		if box.RespawnTicks > 0 {
			box.RespawnTicks--
		}
		if box.RespawnTicks <= 0 {
			box.Active = true
			box.RespawnTicks = 0
		}
	}
}

// PlacedItem describes a TrackItem that UseItem (or a received network
// placement) just created, in the shape the multiplayer broadcast needs.
type PlacedItem struct {
	Tag      kart.ItemTag
	Position fixedmath.Vec2
	Angle    fixedmath.Angle
	Speed    fixedmath.Q16_8 // zero for a hazard placement, per §4.5/§6
}

// UseItem removes the item from user's inventory and dispatches on its
// tag: places a hazard, fires a projectile, or applies a self-effect.
// others is every kart in the race (including user) with its current
// rank, used for RED_SHELL/MISSILE target selection. Returns the placed
// item descriptor (zero value, ok=false for a self-effect or an empty
// inventory) so the caller can broadcast ITEM_PLACEMENT.
func (s *System) UseItem(userIndex int32, user *kart.Kart, userRank int32, others []RankedKart) (PlacedItem, bool) {
	tag := user.Item
	if tag == kart.ItemNone {
		return PlacedItem{}, false
	}
	user.Item = kart.ItemNone

	switch {
	case isHazardTag(tag):
		pos := hazardPlacementPosition(user.Position, user.Angle)
		s.spawnTrackItem(TrackItem{
			Tag:           tag,
			Position:      pos,
			StartPosition: pos,
			Angle:         user.Angle,
			HitboxWidth:   hitboxForTag(tag),
			HitboxHeight:  hitboxForTag(tag),
			LifetimeTicks: lifetimeForTag(tag),
			TargetKart:    NoTarget,
		})
		return PlacedItem{Tag: tag, Position: pos, Angle: user.Angle, Speed: 0}, true

	case isProjectileTag(tag):
		pos := projectileSpawnPosition(user.Position, user.Angle)
		speed := fixedmath.FixedMul(user.MaxSpeed, projectileSpeedMultiplier(tag))
		target := NoTarget
		switch tag {
		case kart.ItemRedShell:
			target = findByRank(others, userRank-1)
		case kart.ItemMissile:
			target = findByRank(others, 1)
		}
		s.spawnTrackItem(TrackItem{
			Tag:           tag,
			Position:      pos,
			StartPosition: pos,
			Speed:         speed,
			Angle:         user.Angle,
			HitboxWidth:   hitboxForTag(tag),
			HitboxHeight:  hitboxForTag(tag),
			LifetimeTicks: lifetimeForTag(tag),
			TargetKart:    target,
		})
		return PlacedItem{Tag: tag, Position: pos, Angle: user.Angle, Speed: speed}, true

	case tag == kart.ItemMushroom:
		s.Effects.ApplyConfusion()
		return PlacedItem{}, false

	case tag == kart.ItemSpeedBoost:
		s.Effects.ApplySpeedBoost(user)
		return PlacedItem{}, false
	}
	return PlacedItem{}, false
}

func findByRank(karts []RankedKart, rank int32) int32 {
	for _, rk := range karts {
		if rk.Rank == rank {
			return rk.Index
		}
	}
	return NoTarget
}

// ReceivePlacement creates a TrackItem from a network ITEM_PLACEMENT
// event at the given position/angle/speed, without re-deriving or
// re-broadcasting anything, per spec.md §4.5. Lifetime, hitbox and motion
// follow the tag; speed is stored as received and does not change how the
// item is classified. A received item never has a homing target.
func (s *System) ReceivePlacement(tag kart.ItemTag, pos fixedmath.Vec2, angle fixedmath.Angle, speed fixedmath.Q16_8) {
	s.spawnTrackItem(TrackItem{
		Tag:           tag,
		Position:      pos,
		StartPosition: pos,
		Speed:         speed,
		Angle:         angle,
		HitboxWidth:   hitboxForTag(tag),
		HitboxHeight:  hitboxForTag(tag),
		LifetimeTicks: lifetimeForTag(tag),
		TargetKart:    NoTarget,
	})
}

// Tick advances every live track item by one physics tick: lifetime
// countdown, motion/homing, wall despawn, and collision resolution
// against karts. karts is indexed by kart slot; walls is the current
// map's static wall data.
func (s *System) Tick(karts []*kart.Kart, walls *worldmap.WallMap) {
	s.TickBoxRespawns()

	for i := range s.TrackItems {
		ti := &s.TrackItems[i]
		if !ti.Active {
			continue
		}

		if ti.LifetimeTicks > 0 {
			ti.LifetimeTicks--
			if ti.LifetimeTicks == 0 {
				s.resolveExpiry(ti, karts)
				continue
			}
		}

		if isProjectileTag(ti.Tag) {
			s.tickProjectile(ti, karts, walls)
		} else {
			s.tickHazardContact(ti, karts)
		}
	}

	s.Effects.Update(s.localKart(karts))
}

func (s *System) localKart(karts []*kart.Kart) *kart.Kart {
	if int(s.LocalIndex) >= 0 && int(s.LocalIndex) < len(karts) {
		return karts[s.LocalIndex]
	}
	return nil
}

func (s *System) resolveExpiry(ti *TrackItem, karts []*kart.Kart) {
	if ti.Tag == kart.ItemBomb {
		s.explodeBomb(ti, karts)
	}
	ti.Active = false
}

func (s *System) tickProjectile(ti *TrackItem, karts []*kart.Kart, walls *worldmap.WallMap) {
	prev := ti.Position
	var targetPos fixedmath.Vec2
	hasTarget := ti.TargetKart != NoTarget && int(ti.TargetKart) < len(karts)
	if hasTarget {
		targetPos = karts[ti.TargetKart].Position
	}
	homing := ti.Tag == kart.ItemRedShell || ti.Tag == kart.ItemMissile
	stepMotion(ti, homing, targetPos, hasTarget)

	if walls != nil {
		for _, wall := range walls.WallsNear(ti.Position) {
			if worldmap.SegmentsIntersect(prev, ti.Position, wall.A, wall.B) {
				ti.Active = false
				return
			}
		}
	}

	for _, k := range karts {
		if k == nil {
			continue
		}
		radius := fixedmath.FixedDiv(ti.HitboxWidth+KartSize, fixedmath.IntToFixed(2))
		if fixedmath.Distance(ti.Position, k.Position) <= radius {
			applyProjectileHit(ti.Tag, k, s.rng)
			ti.Active = false
			return
		}
	}
}

func (s *System) tickHazardContact(ti *TrackItem, karts []*kart.Kart) {
	radius := fixedmath.FixedDiv(ti.HitboxWidth+KartSize, fixedmath.IntToFixed(2))
	for idx, k := range karts {
		if k == nil {
			continue
		}
		if fixedmath.Distance(ti.Position, k.Position) > radius {
			continue
		}
		switch ti.Tag {
		case kart.ItemBanana:
			k.SetSpeed(fixedmath.FixedDiv(k.Speed, BananaKnockbackDivisor))
			k.SetAngle(k.Angle + fixedmath.AngleHalf)
			ti.Active = false
			return
		case kart.ItemOil:
			if int32(idx) == s.LocalIndex {
				s.Effects.ApplyOilSlow(ti.StartPosition)
				k.SetSpeed(k.Speed / 2)
			} else {
				k.SetSpeed(k.Speed / 2)
			}
			// oil persists on contact.
		case kart.ItemBomb:
			s.explodeBomb(ti, karts)
			ti.Active = false
			return
		}
	}
}

func (s *System) explodeBomb(bomb *TrackItem, karts []*kart.Kart) {
	for _, k := range karts {
		if k == nil {
			continue
		}
		d := fixedmath.Distance(bomb.Position, k.Position)
		if d > BombExplosionRadius {
			continue
		}
		dir := k.Position.Sub(bomb.Position).Normalize()
		if dir.IsZero() {
			dir = fixedmath.FromAngle(0)
		}
		k.SetSpeed(0)
		k.ApplyImpulse(dir.Scale(BombExplosionImpulse))
	}
}

func applyProjectileHit(tag kart.ItemTag, k *kart.Kart, rng *rand.Rand) {
	switch tag {
	case kart.ItemGreenShell, kart.ItemRedShell:
		k.SetSpeed(0)
		offset := ShellKnockbackAngle
		if rng.Intn(2) == 0 {
			offset = -offset
		}
		k.SetAngle(k.Angle + offset)
	case kart.ItemMissile:
		k.SetSpeed(0)
	}
}

func tagName(t kart.ItemTag) string {
	names := map[kart.ItemTag]string{
		kart.ItemNone:       "none",
		kart.ItemBox:        "box",
		kart.ItemOil:        "oil",
		kart.ItemBomb:       "bomb",
		kart.ItemBanana:     "banana",
		kart.ItemGreenShell: "green_shell",
		kart.ItemRedShell:   "red_shell",
		kart.ItemMissile:    "missile",
		kart.ItemMushroom:   "mushroom",
		kart.ItemSpeedBoost: "speedboost",
	}
	if n, ok := names[t]; ok {
		return n
	}
	return "unknown"
}
