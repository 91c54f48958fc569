// Package botai drives the non-local kart slots of a SinglePlayer race;
// MultiPlayer slots are never bot-driven. It produces the same level-triggered decision shape the race
// tick consumes from local and network input, per spec.md §2.5's
// requirement that a bot "occupy the same data contracts as a remote
// kart" — it steers and uses items, nothing more.
package botai

import (
	"math/rand"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

// Decision mirrors the level-triggered half of spec.md §6's input
// contract (everything but pauseToggle, which is a human-only control).
type Decision struct {
	Accelerate  bool
	Brake       bool
	SteerLeft   bool
	SteerRight  bool
	UseItem     bool
	FireForward bool
}

// Tuning holds the mistake and rubber-band parameters spec.md §9 calls
// out as supplemental, under-specified behavior.
type Tuning struct {
	// SteerDeadZone is the angle-error magnitude below which the bot
	// holds its current heading instead of correcting.
	SteerDeadZone fixedmath.Angle
	// BrakeThreshold is the angle-error magnitude above which the bot
	// brakes into a turn rather than accelerating through it.
	BrakeThreshold fixedmath.Angle
	// MistakeChance is the per-tick probability the bot steers the
	// wrong way, simulating an imperfect driver.
	MistakeChance float64
	// ItemUseChance is the per-tick probability a held item is used,
	// once UseItem would otherwise be eligible.
	ItemUseChance float64
	// RubberBandCatchup is the distance-to-leader beyond which a
	// trailing bot's accelerate decision is forced true.
	RubberBandCatchup fixedmath.Q16_8
	// RubberBandLead is the distance-ahead-of-leader beyond which a
	// leading bot occasionally brakes to keep the race close.
	RubberBandLead fixedmath.Q16_8
	// RubberBandBrakeChance is the per-tick chance a bot that is far
	// ahead of the human leader brakes this tick.
	RubberBandBrakeChance float64
}

// DefaultTuning is a moderate difficulty: occasional mistakes, a wide
// dead zone so the bot does not oscillate, and gentle rubber-banding.
func DefaultTuning() Tuning {
	return Tuning{
		SteerDeadZone:         6,
		BrakeThreshold:        100,
		MistakeChance:         0.02,
		ItemUseChance:         0.05,
		RubberBandCatchup:     fixedmath.IntToFixed(250),
		RubberBandLead:        fixedmath.IntToFixed(250),
		RubberBandBrakeChance: 0.10,
	}
}

// Controller drives one bot-occupied kart slot across ticks. One
// Controller per slot, seeded independently so bots do not all make the
// same mistake on the same tick.
type Controller struct {
	tuning Tuning
	rng    *rand.Rand
}

// NewController builds a Controller seeded from seed.
func NewController(seed int64, tuning Tuning) *Controller {
	return &Controller{tuning: tuning, rng: rand.New(rand.NewSource(seed))}
}

// Decide computes this tick's Decision for k, given the ordered
// checkpoint list for the active map and the current world-leader's
// position (for rubber-banding). An empty checkpoint list yields the zero
// Decision.
func (c *Controller) Decide(k *kart.Kart, checkpoints []worldmap.CheckpointBox, leaderPos fixedmath.Vec2) Decision {
	var d Decision
	if len(checkpoints) == 0 {
		return d
	}

	target := checkpoints[c.targetIndex(k, checkpoints)].Center()
	desired := fixedmath.ToAngle(target.Sub(k.Position))
	errAngle := fixedmath.AngleDiff(k.Angle, desired)

	if errAngle > c.tuning.SteerDeadZone {
		d.SteerRight = true
	} else if errAngle < -c.tuning.SteerDeadZone {
		d.SteerLeft = true
	}

	if c.rng.Float64() < c.tuning.MistakeChance && (d.SteerLeft || d.SteerRight) {
		d.SteerLeft, d.SteerRight = d.SteerRight, d.SteerLeft
	}

	if fixedmath.AbsAngle(errAngle) > c.tuning.BrakeThreshold {
		d.Brake = true
	} else {
		d.Accelerate = true
	}

	c.applyRubberBand(k, leaderPos, &d)

	if k.Item != kart.ItemNone && c.rng.Float64() < c.tuning.ItemUseChance {
		d.UseItem = true
		d.FireForward = isProjectileTag(k.Item)
	}

	return d
}

func (c *Controller) targetIndex(k *kart.Kart, checkpoints []worldmap.CheckpointBox) int32 {
	next := k.LastCheckpoint + 1
	if next < 0 || int(next) >= len(checkpoints) {
		return 0
	}
	return next
}

func (c *Controller) applyRubberBand(k *kart.Kart, leaderPos fixedmath.Vec2, d *Decision) {
	dist := fixedmath.Distance(k.Position, leaderPos)
	if k.Rank > 1 && dist >= c.tuning.RubberBandCatchup {
		d.Accelerate = true
		d.Brake = false
	} else if k.Rank == 1 && dist >= c.tuning.RubberBandLead {
		if c.rng.Float64() < c.tuning.RubberBandBrakeChance {
			d.Brake = true
			d.Accelerate = false
		}
	}
}

func isProjectileTag(tag kart.ItemTag) bool {
	switch tag {
	case kart.ItemGreenShell, kart.ItemRedShell, kart.ItemMissile:
		return true
	default:
		return false
	}
}
