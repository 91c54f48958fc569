// Package kart implements the per-racer entity and its pure physics
// operations. Everything here is stateless math over a value type: no
// goroutines, no I/O, no allocation beyond the struct itself.
package kart

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
)

// ItemTag is the tagged variant carried in a kart's inventory slot.
type ItemTag int

const (
	ItemNone ItemTag = iota
	ItemBox
	ItemOil
	ItemBomb
	ItemBanana
	ItemGreenShell
	ItemRedShell
	ItemMissile
	ItemMushroom
	ItemSpeedBoost
)

// MinSpeedThreshold is the speed below which a kart snaps to a full stop,
// per spec.md §4.2's tick-update rule.
const MinSpeedThreshold fixedmath.Q16_8 = 6 // ~0.023 units in Q16.8

// Handle is an opaque display handle owned by the renderer; the core
// never inspects it, only carries it.
type Handle any

// Kart is the state for one racer.
type Kart struct {
	Name string

	Position  fixedmath.Vec2
	Speed     fixedmath.Q16_8 // scalar speed, >= 0
	MaxSpeed  fixedmath.Q16_8 // > 0
	AccelRate fixedmath.Q16_8
	Friction  fixedmath.Q16_8 // multiplier in [0,1] fixed, applied per tick
	Angle     fixedmath.Angle

	Lap            int32
	Rank           int32 // 1-based; 0 before the first rank computation
	LastCheckpoint int32 // -1 if none crossed yet

	LastLapMs  int32 // duration of the most recently completed lap, 0 if none yet
	BestLapMs  int32 // best completed lap so far, 0 if none yet
	lapStartMs int64 // chronometer reading at the last lap crossing

	Item ItemTag

	Display Handle
}

// Init sets up a kart at pos with the given tuning. Friction is clamped
// to [0,1] in fixed-point; lap, rank and item start at their zero values
// and lastCheckpoint starts at -1 per spec.md §4.2.
func (k *Kart) Init(pos fixedmath.Vec2, name string, maxSpeed, accelRate, friction fixedmath.Q16_8) {
	k.Name = name
	k.Position = pos
	k.Speed = 0
	k.MaxSpeed = maxSpeed
	k.AccelRate = accelRate
	k.Friction = fixedmath.Clamp(friction, 0, fixedmath.IntToFixed(1))
	k.Angle = 0
	k.Lap = 0
	k.Rank = 0
	k.LastCheckpoint = -1
	k.LastLapMs = 0
	k.BestLapMs = 0
	k.lapStartMs = 0
	k.Item = ItemNone
}

// Reset restores race-state fields for a new attempt at spawnPos while
// preserving name and physics tuning (maxSpeed/accelRate/friction).
func (k *Kart) Reset(spawnPos fixedmath.Vec2) {
	k.Position = spawnPos
	k.Speed = 0
	k.Angle = 0
	k.Lap = 0
	k.Rank = 0
	k.LastCheckpoint = -1
	k.LastLapMs = 0
	k.BestLapMs = 0
	k.lapStartMs = 0
	k.Item = ItemNone
}

// Accelerate increases speed toward MaxSpeed by AccelRate.
func (k *Kart) Accelerate() {
	k.Speed = fixedmath.Min(k.Speed+k.AccelRate, k.MaxSpeed)
}

// Brake decreases speed toward zero by AccelRate, snapping to zero rather
// than overshooting negative.
func (k *Kart) Brake() {
	k.Speed = fixedmath.Max(k.Speed-k.AccelRate, 0)
}

// Steer rotates the facing angle by delta, modulo 512. Steering is
// permitted at any speed, including zero.
func (k *Kart) Steer(delta fixedmath.Angle) {
	k.Angle = (k.Angle + delta).Normalize()
}

// TickUpdate applies one physics step: friction, the minimum-speed snap,
// the max-speed clamp, and position integration along the facing angle.
// Called once per physics tick for every kart, local or not.
func (k *Kart) TickUpdate() {
	k.Speed = fixedmath.FixedMul(k.Speed, k.Friction)
	if k.Speed <= MinSpeedThreshold {
		k.Speed = 0
	}
	if k.Speed > k.MaxSpeed {
		k.Speed = k.MaxSpeed
	}
	k.Position = k.Position.Add(fixedmath.FromAngle(k.Angle).Scale(k.Speed))
}

// Velocity returns the kart's current velocity vector (unit(angle)*speed).
func (k *Kart) Velocity() fixedmath.Vec2 {
	return fixedmath.FromAngle(k.Angle).Scale(k.Speed)
}

// ApplyImpulse adds v to the kart's current velocity and decomposes the
// result back into speed (capped to MaxSpeed) and angle. A result with
// zero magnitude sets speed to zero while preserving the prior angle.
func (k *Kart) ApplyImpulse(v fixedmath.Vec2) {
	combined := k.Velocity().Add(v)
	k.setFromVelocity(combined)
}

// SetVelocity discards the kart's current velocity and decomposes v
// directly into speed/angle, the same way ApplyImpulse does.
func (k *Kart) SetVelocity(v fixedmath.Vec2) {
	k.setFromVelocity(v)
}

func (k *Kart) setFromVelocity(v fixedmath.Vec2) {
	if v.IsZero() {
		k.Speed = 0
		return
	}
	speed := fixedmath.Min(v.Len(), k.MaxSpeed)
	k.Angle = fixedmath.ToAngle(v)
	k.Speed = speed
}

// SetAngle is a direct write, reserved for respawn/teleport paths.
func (k *Kart) SetAngle(a fixedmath.Angle) {
	k.Angle = a.Normalize()
}

// SetPosition is a direct write, reserved for respawn/teleport paths.
func (k *Kart) SetPosition(p fixedmath.Vec2) {
	k.Position = p
}

// Teleport is a convenience wrapper combining SetPosition and SetAngle,
// used by respawn-after-hazard and multiplayer-joined-late paths.
func (k *Kart) Teleport(p fixedmath.Vec2, a fixedmath.Angle) {
	k.SetPosition(p)
	k.SetAngle(a)
}

// LapComplete increments the lap counter and records the lap's duration
// against the chronometer reading nowMs, updating BestLapMs the way the
// teacher's CarStateExtended tracks lapTimes/bestLapTime.
func (k *Kart) LapComplete(nowMs int64) {
	k.Lap++
	k.LastLapMs = int32(nowMs - k.lapStartMs)
	if k.BestLapMs == 0 || k.LastLapMs < k.BestLapMs {
		k.BestLapMs = k.LastLapMs
	}
	k.lapStartMs = nowMs
}

// SetSpeed is a direct write, used by hazard contact resolution.
func (k *Kart) SetSpeed(s fixedmath.Q16_8) { k.Speed = s }
