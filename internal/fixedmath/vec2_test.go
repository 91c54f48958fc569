package fixedmath

import "testing"

func TestVec2AddSub(t *testing.T) {
	a := Vec2{X: IntToFixed(3), Y: IntToFixed(4)}
	b := Vec2{X: IntToFixed(1), Y: IntToFixed(2)}
	if got := a.Add(b); got != (Vec2{X: IntToFixed(4), Y: IntToFixed(6)}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: IntToFixed(2), Y: IntToFixed(2)}) {
		t.Errorf("Sub = %+v", got)
	}
}

func TestVec2Len(t *testing.T) {
	v := Vec2{X: IntToFixed(3), Y: IntToFixed(4)}
	if got := FixedToInt(v.Len()); got != 5 {
		t.Errorf("Len(3,4) = %d, want 5", got)
	}
}

func TestVec2NormalizeZeroIsZero(t *testing.T) {
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(zero) = %+v, want zero", got)
	}
}

func TestVec2NormalizeUnitLength(t *testing.T) {
	v := Vec2{X: IntToFixed(3), Y: IntToFixed(4)}
	n := v.Normalize()
	lenInt := FixedToInt(n.Len())
	if lenInt != 0 && lenInt != 1 {
		t.Errorf("normalized length = %d (fixed %d), want ~1", lenInt, n.Len())
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Vec2{X: IntToFixed(0), Y: IntToFixed(0)}
	b := Vec2{X: IntToFixed(3), Y: IntToFixed(4)}
	if Distance(a, b) != Distance(b, a) {
		t.Error("Distance should be symmetric")
	}
	if FixedToInt(Distance(a, b)) != 5 {
		t.Errorf("Distance(0,0 -> 3,4) = %d, want 5", FixedToInt(Distance(a, b)))
	}
}

func TestFromAngleToAngleRoundTrip(t *testing.T) {
	for _, a := range []Angle{0, 64, 128, 256, 384, 450} {
		v := FromAngle(a)
		got := ToAngle(v)
		if got != a {
			t.Errorf("FromAngle/ToAngle round trip: %d -> %d", a, got)
		}
	}
}

func TestToAngleZeroVector(t *testing.T) {
	if got := ToAngle(Zero); got != 0 {
		t.Errorf("ToAngle(zero) = %d, want 0", got)
	}
}
