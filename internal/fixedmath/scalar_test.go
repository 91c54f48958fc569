package fixedmath

import "testing"

func TestIntRoundTrip(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 100, -8388608, 8388607} {
		if got := FixedToInt(IntToFixed(n)); got != n {
			t.Errorf("IntToFixed/FixedToInt round trip: %d -> %d", n, got)
		}
	}
}

func TestFixedMulIdentity(t *testing.T) {
	one := IntToFixed(1)
	five := IntToFixed(5)
	if got := FixedMul(five, one); got != five {
		t.Errorf("5 * 1 = %d, want %d", got, five)
	}
}

func TestFixedMulAndDivAreInverses(t *testing.T) {
	a := IntToFixed(10)
	b := IntToFixed(4)
	quotient := FixedDiv(a, b)
	back := FixedMul(quotient, b)
	if Abs(back-a) > 1 {
		t.Errorf("FixedDiv then FixedMul: got %d, want ~%d", back, a)
	}
}

func TestFixedDivByZeroSaturates(t *testing.T) {
	if got := FixedDiv(IntToFixed(5), 0); got != MaxFixed {
		t.Errorf("positive/0 = %d, want MaxFixed", got)
	}
	if got := FixedDiv(IntToFixed(-5), 0); got != MinFixed {
		t.Errorf("negative/0 = %d, want MinFixed", got)
	}
}

func TestAbs(t *testing.T) {
	if Abs(IntToFixed(-3)) != IntToFixed(3) {
		t.Error("Abs(-3) != 3")
	}
	if Abs(IntToFixed(3)) != IntToFixed(3) {
		t.Error("Abs(3) != 3")
	}
}

func TestClamp(t *testing.T) {
	lo, hi := IntToFixed(0), IntToFixed(10)
	if got := Clamp(IntToFixed(-5), lo, hi); got != lo {
		t.Errorf("Clamp(-5, 0, 10) = %d, want %d", got, lo)
	}
	if got := Clamp(IntToFixed(15), lo, hi); got != hi {
		t.Errorf("Clamp(15, 0, 10) = %d, want %d", got, hi)
	}
	mid := IntToFixed(5)
	if got := Clamp(mid, lo, hi); got != mid {
		t.Errorf("Clamp(5, 0, 10) = %d, want %d", got, mid)
	}
}

func TestSqrtOfPerfectSquares(t *testing.T) {
	for _, n := range []int32{0, 1, 4, 9, 16, 100} {
		in := FixedMul(IntToFixed(n), IntToFixed(n))
		got := FixedToInt(Sqrt(in))
		if got != n {
			t.Errorf("Sqrt(%d^2) = %d, want %d", n, got, n)
		}
	}
}

func TestSqrtNegativeIsZero(t *testing.T) {
	if Sqrt(IntToFixed(-9)) != 0 {
		t.Error("Sqrt of negative input should return 0")
	}
}
