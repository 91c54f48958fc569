package item

import (
	"testing"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

func TestApplyConfusionStartsTimer(t *testing.T) {
	var p PlayerEffects
	p.ApplyConfusion()
	if !p.ConfusionActive || p.ConfusionTicks != ConfusionTicks {
		t.Errorf("expected confusion active with full timer, got %+v", p)
	}
}

func TestConfusionExpiresAfterTicks(t *testing.T) {
	var p PlayerEffects
	p.ApplyConfusion()
	for i := int32(0); i < ConfusionTicks; i++ {
		p.Update(nil)
	}
	if p.ConfusionActive {
		t.Error("expected confusion to expire after its full duration")
	}
}

func TestSpeedBoostRestoresMaxSpeedOnExpiry(t *testing.T) {
	var p PlayerEffects
	k := &kart.Kart{}
	k.Init(fixedmath.Vec2{}, "T", fixedmath.IntToFixed(10), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	original := k.MaxSpeed

	p.ApplySpeedBoost(k)
	if k.MaxSpeed != fixedmath.FixedMul(original, fixedmath.IntToFixed(SpeedBoostFactor)) {
		t.Fatalf("expected boosted MaxSpeed, got %d", k.MaxSpeed)
	}

	for i := int32(0); i < SpeedBoostTicks; i++ {
		p.Update(k)
	}
	if p.SpeedBoostActive {
		t.Error("expected speed boost to expire")
	}
	if k.MaxSpeed != original {
		t.Errorf("expected MaxSpeed restored to %d, got %d", original, k.MaxSpeed)
	}
}

func TestSpeedBoostClampsCurrentSpeedOnExpiry(t *testing.T) {
	var p PlayerEffects
	k := &kart.Kart{}
	k.Init(fixedmath.Vec2{}, "T", fixedmath.IntToFixed(10), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	p.ApplySpeedBoost(k)
	k.Speed = k.MaxSpeed // at the boosted cap

	for i := int32(0); i < SpeedBoostTicks; i++ {
		p.Update(k)
	}
	if k.Speed > k.MaxSpeed {
		t.Errorf("expected speed clamped to restored MaxSpeed %d, got %d", k.MaxSpeed, k.Speed)
	}
}

func TestOilSlowDeactivatesAfterDistance(t *testing.T) {
	var p PlayerEffects
	start := fixedmath.Vec2{}
	p.ApplyOilSlow(start)
	if !p.OilSlowActive {
		t.Fatal("expected oil slow active immediately")
	}

	k := &kart.Kart{}
	k.Init(start, "T", fixedmath.IntToFixed(10), fixedmath.IntToFixed(1), fixedmath.IntToFixed(1))
	k.Position = fixedmath.Vec2{X: fixedmath.IntToFixed(OilSlowDistance + 1)}
	p.Update(k)
	if p.OilSlowActive {
		t.Error("expected oil slow to deactivate once travel distance exceeds OilSlowDistance")
	}
}

func TestUpdateNilKartIsSafe(t *testing.T) {
	var p PlayerEffects
	p.ApplyConfusion()
	p.Update(nil)
	if !p.ConfusionActive {
		t.Error("expected confusion update to proceed even with a nil kart")
	}
}
