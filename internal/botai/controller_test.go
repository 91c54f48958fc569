package botai

import (
	"testing"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

func checkpointAt(x, y int32) worldmap.CheckpointBox {
	return worldmap.CheckpointBox{
		TopLeft:     fixedmath.Vec2{X: fixedmath.IntToFixed(x - 5), Y: fixedmath.IntToFixed(y - 5)},
		BottomRight: fixedmath.Vec2{X: fixedmath.IntToFixed(x + 5), Y: fixedmath.IntToFixed(y + 5)},
	}
}

func TestDecideSteersTowardNextCheckpoint(t *testing.T) {
	checkpoints := []worldmap.CheckpointBox{checkpointAt(0, 0), checkpointAt(100, 0)}

	var k kart.Kart
	k.Init(fixedmath.Vec2{X: 0, Y: 0}, "bot", fixedmath.IntToFixed(5), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	k.LastCheckpoint = 0 // targets checkpoint index 1, due east
	k.Angle = fixedmath.Angle(128).Normalize() // facing due "south" in the 512-step system

	c := NewController(1, Tuning{SteerDeadZone: 2, BrakeThreshold: 1000})
	d := c.Decide(&k, checkpoints, k.Position)

	if !d.SteerLeft && !d.SteerRight {
		t.Fatalf("expected a steering correction, got %+v", d)
	}
	if !d.Accelerate {
		t.Errorf("expected accelerate true when within brake threshold, got %+v", d)
	}
}

func TestDecideHoldsHeadingInsideDeadZone(t *testing.T) {
	checkpoints := []worldmap.CheckpointBox{checkpointAt(100, 0)}

	var k kart.Kart
	k.Init(fixedmath.Vec2{X: 0, Y: 0}, "bot", fixedmath.IntToFixed(5), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	k.LastCheckpoint = -1 // targets checkpoint index 0
	k.Angle = 0           // already facing due "east" per FromAngle's table

	c := NewController(1, Tuning{SteerDeadZone: 10, BrakeThreshold: 1000})
	d := c.Decide(&k, checkpoints, k.Position)

	if d.SteerLeft || d.SteerRight {
		t.Errorf("expected no steering correction inside dead zone, got %+v", d)
	}
}

func TestDecideEmptyCheckpointsIsNoop(t *testing.T) {
	var k kart.Kart
	k.Init(fixedmath.Vec2{}, "bot", fixedmath.IntToFixed(5), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))

	c := NewController(1, DefaultTuning())
	d := c.Decide(&k, nil, fixedmath.Vec2{})

	if d != (Decision{}) {
		t.Errorf("expected zero Decision for no checkpoints, got %+v", d)
	}
}

func TestDecideRubberBandForcesAccelerateWhenTrailing(t *testing.T) {
	checkpoints := []worldmap.CheckpointBox{checkpointAt(0, 0)}

	var k kart.Kart
	k.Init(fixedmath.Vec2{X: 0, Y: 0}, "bot", fixedmath.IntToFixed(5), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	k.Rank = 2
	k.Angle = 0

	leaderPos := fixedmath.Vec2{X: fixedmath.IntToFixed(1000), Y: 0}

	tuning := DefaultTuning()
	tuning.BrakeThreshold = 1 // force a brake-range heading error
	c := NewController(1, tuning)
	k.Angle = fixedmath.Angle(128) // facing away from the checkpoint, big angle error

	d := c.Decide(&k, checkpoints, leaderPos)

	if !d.Accelerate || d.Brake {
		t.Errorf("expected rubber-band to force accelerate over brake when far behind the leader, got %+v", d)
	}
}

func TestDecideUsesItemWhenCarried(t *testing.T) {
	checkpoints := []worldmap.CheckpointBox{checkpointAt(0, 0)}

	var k kart.Kart
	k.Init(fixedmath.Vec2{}, "bot", fixedmath.IntToFixed(5), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	k.Item = kart.ItemRedShell

	tuning := DefaultTuning()
	tuning.ItemUseChance = 1 // always use when carried, for a deterministic test

	c := NewController(1, tuning)
	d := c.Decide(&k, checkpoints, k.Position)

	if !d.UseItem {
		t.Errorf("expected UseItem true with ItemUseChance=1, got %+v", d)
	}
	if !d.FireForward {
		t.Errorf("expected FireForward true for a projectile tag, got %+v", d)
	}
}
