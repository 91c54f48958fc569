package item

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

// Tick counts for the self-effects, expressed at RaceTickFreq (60Hz) so
// they read as "ticks" the way spec.md §9 describes timers.
const (
	ConfusionTicks   = 3.5 * 60
	SpeedBoostTicks  = 2.5 * 60
	SpeedBoostFactor = 2
	OilSlowDistance  = 200 // integer world units travelled before oil-slow clears
)

// PlayerEffects is the local player's status-effect record: at most one
// instance exists, owned by ItemSystem and indexed by the local kart slot.
type PlayerEffects struct {
	ConfusionActive bool
	ConfusionTicks  int32

	SpeedBoostActive bool
	SpeedBoostTicks  int32
	OriginalMaxSpeed fixedmath.Q16_8

	OilSlowActive bool
	OilStartPos   fixedmath.Vec2
}

// ApplyConfusion starts (or restarts) the confusion effect.
func (p *PlayerEffects) ApplyConfusion() {
	p.ConfusionActive = true
	p.ConfusionTicks = ConfusionTicks
}

// ApplySpeedBoost doubles k.MaxSpeed for SpeedBoostTicks, snapshotting the
// original value for restoration on expiry.
func (p *PlayerEffects) ApplySpeedBoost(k *kart.Kart) {
	if !p.SpeedBoostActive {
		p.OriginalMaxSpeed = k.MaxSpeed
	}
	p.SpeedBoostActive = true
	p.SpeedBoostTicks = SpeedBoostTicks
	k.MaxSpeed = fixedmath.FixedMul(p.OriginalMaxSpeed, fixedmath.IntToFixed(SpeedBoostFactor))
}

// ApplyOilSlow marks the oil-slow effect active and records startPos for
// Update's distance check. It does not change speed itself: the oil
// contact in System halves the kart's speed once, and while the effect is
// active no further slowdown or gradual fade is applied.
func (p *PlayerEffects) ApplyOilSlow(startPos fixedmath.Vec2) {
	p.OilSlowActive = true
	p.OilStartPos = startPos
}

// Update decrements active timers by one tick and applies expiry
// transitions, per spec.md §4.4's status-effect update: restore maxSpeed
// and clamp current speed on boost expiry; recompute distance-from-start
// and deactivate oilSlow at OilSlowDistance; simply decrement confusion.
// k may be nil if there is no local kart yet (e.g. before Race_Init).
func (p *PlayerEffects) Update(k *kart.Kart) {
	if p.ConfusionActive {
		p.ConfusionTicks--
		if p.ConfusionTicks <= 0 {
			p.ConfusionActive = false
		}
	}

	if p.SpeedBoostActive {
		p.SpeedBoostTicks--
		if p.SpeedBoostTicks <= 0 {
			p.SpeedBoostActive = false
			if k != nil {
				k.MaxSpeed = p.OriginalMaxSpeed
				if k.Speed > p.OriginalMaxSpeed {
					k.Speed = p.OriginalMaxSpeed
				}
			}
		}
	}

	if p.OilSlowActive && k != nil {
		d := fixedmath.Distance(k.Position, p.OilStartPos)
		if fixedmath.FixedToInt(d) >= OilSlowDistance {
			p.OilSlowActive = false
		}
	}
}
