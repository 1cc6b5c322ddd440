package interp

import (
	"math"
	"testing"
)

func TestFnInt(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{3.7, 3},
		{-3.7, -4}, // floor, not truncation toward zero
		{0, 0},
	}
	for _, c := range cases {
		if got := fnInt(c.x); got != c.want {
			t.Errorf("fnInt(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestFnSgn(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{5, 1}, {-5, -1}, {0, 0},
	}
	for _, c := range cases {
		if got := fnSgn(c.x); got != c.want {
			t.Errorf("fnSgn(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestFnSqrNegativeIsIllegalFunctionCall(t *testing.T) {
	_, err := fnSqr(-1)
	assertKind(t, err, IllegalFunctionCall)
}

func TestFnLogDomain(t *testing.T) {
	if _, err := fnLog(0); err == nil {
		t.Error("fnLog(0) should error")
	}
	if _, err := fnLog(-1); err == nil {
		t.Error("fnLog(-1) should error")
	}
	v, err := fnLog(math.E)
	if err != nil || math.Abs(v-1) > 1e-9 {
		t.Errorf("fnLog(e) = (%v, %v), want (1, nil)", v, err)
	}
}

func TestFnExpOverflow(t *testing.T) {
	_, err := fnExp(1e10)
	assertKind(t, err, Overflow)
}

func TestFnRndSequence(t *testing.T) {
	in := &Instance{rndState: 12345}
	a := in.fnRnd(1)
	b := in.fnRnd(1)
	if a == b {
		t.Error("successive RND(1) calls should advance the generator")
	}

	same := in.fnRnd(0)
	if same != b {
		t.Errorf("RND(0) = %v, want unchanged state %v", same, b)
	}

	in.fnRnd(-5)
	want := uint32(int64(5 * 65536))
	if in.rndState != want {
		t.Errorf("RND(-5) seeded state = %v, want %v", in.rndState, want)
	}
}

func TestFnChrRange(t *testing.T) {
	if _, err := fnChr(-1); err == nil {
		t.Error("fnChr(-1) should error")
	}
	if _, err := fnChr(256); err == nil {
		t.Error("fnChr(256) should error")
	}
	s, err := fnChr(65)
	if err != nil || s != "A" {
		t.Errorf("fnChr(65) = (%q, %v), want (A, nil)", s, err)
	}
}

func TestFnAscEmptyIsIllegalFunctionCall(t *testing.T) {
	_, err := fnAsc("")
	assertKind(t, err, IllegalFunctionCall)
}

func TestFnLeftRight(t *testing.T) {
	if got := fnLeft("A", 10); got != "A" {
		t.Errorf(`fnLeft("A", 10) = %q, want A`, got)
	}
	if got := fnLeft("ABC", 0); got != "" {
		t.Errorf(`fnLeft("ABC", 0) = %q, want ""`, got)
	}
	if got := fnRight("ABC", 2); got != "BC" {
		t.Errorf(`fnRight("ABC", 2) = %q, want BC`, got)
	}
}

func TestFnMid(t *testing.T) {
	cases := []struct {
		s      string
		start  int
		length int
		want   string
	}{
		{"ABCDE", 3, 255, "CDE"},
		{"ABCDE", 3, 1, "C"},
		{"ABC", 5, 255, ""},
	}
	for _, c := range cases {
		got, err := fnMid(c.s, c.start, c.length)
		if err != nil || got != c.want {
			t.Errorf("fnMid(%q, %d, %d) = (%q, %v), want (%q, nil)", c.s, c.start, c.length, got, err, c.want)
		}
	}
	if _, err := fnMid("ABC", 0, 1); err == nil {
		t.Error("fnMid with start < 1 should error")
	}
}

func TestFnVal(t *testing.T) {
	cases := []struct {
		s    string
		want float64
	}{
		{"123", 123},
		{"  -4.5", -4.5},
		{"3.14XYZ", 3.14},
		{"XYZ", 0},
		{"", 0},
		{"1E2", 100},
	}
	for _, c := range cases {
		if got := fnVal(c.s); got != c.want {
			t.Errorf("fnVal(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}

func TestPower(t *testing.T) {
	v, err := power(2, 10)
	if err != nil || v != 1024 {
		t.Errorf("power(2,10) = (%v, %v), want (1024, nil)", v, err)
	}
	if _, err := power(-2, 0.5); err == nil {
		t.Error("power(-2, 0.5) should error (negative base, non-integral exponent)")
	}
	v, err = power(-2, 3)
	if err != nil || v != -8 {
		t.Errorf("power(-2,3) = (%v, %v), want (-8, nil)", v, err)
	}
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	be, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if be.Kind != want {
		t.Fatalf("Kind = %v, want %v", be.Kind, want)
	}
}
