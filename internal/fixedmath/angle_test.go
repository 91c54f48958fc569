package fixedmath

import "testing"

func TestNormalizeWrapsIntoRange(t *testing.T) {
	cases := map[Angle]Angle{
		0:   0,
		511: 511,
		512: 0,
		513: 1,
		-1:  511,
		-512: 0,
	}
	for in, want := range cases {
		if got := in.Normalize(); got != want {
			t.Errorf("Normalize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSinCosFixedAtCardinalAngles(t *testing.T) {
	if got := FixedToInt(CosFixed(0)); got != 1 {
		t.Errorf("cos(0) = %d, want 1", got)
	}
	if got := FixedToInt(SinFixed(0)); got != 0 {
		t.Errorf("sin(0) = %d, want 0", got)
	}
	if got := FixedToInt(CosFixed(AngleHalf)); got != -1 {
		t.Errorf("cos(half) = %d, want -1", got)
	}
}

func TestAngleDiffShortestArc(t *testing.T) {
	if got := AngleDiff(0, 10); got != 10 {
		t.Errorf("AngleDiff(0,10) = %d, want 10", got)
	}
	if got := AngleDiff(10, 0); got != -10 {
		t.Errorf("AngleDiff(10,0) = %d, want -10", got)
	}
	// Wrapping the short way around the circle: 507 is equivalent to -5,
	// so the shortest arc from 5 is -10, not +502.
	if got := AngleDiff(5, 507); got != -10 {
		t.Errorf("AngleDiff(5,507) = %d, want -10", got)
	}
}

func TestAngleDiffRangeBounds(t *testing.T) {
	for from := Angle(0); from < AngleFull; from += 37 {
		for to := Angle(0); to < AngleFull; to += 41 {
			d := AngleDiff(from, to)
			if d <= -AngleHalf || d > AngleHalf {
				t.Fatalf("AngleDiff(%d,%d) = %d out of (-%d,%d]", from, to, d, AngleHalf, AngleHalf)
			}
		}
	}
}

func TestAbsAngle(t *testing.T) {
	if AbsAngle(-5) != 5 {
		t.Error("AbsAngle(-5) != 5")
	}
	if AbsAngle(5) != 5 {
		t.Error("AbsAngle(5) != 5")
	}
}
