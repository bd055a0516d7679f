package reading

import (
	"errors"
	"math"
	"testing"
)

func TestNewPressure_InRange(t *testing.T) {
	for _, v := range []int{0, 80, 120, math.MaxInt16, math.MinInt16} {
		p, err := NewPressure(v)
		if err != nil {
			t.Fatalf("NewPressure(%d): unexpected error: %v", v, err)
		}
		if int(p.MmHg()) != v {
			t.Errorf("MmHg: got %d, want %d", p.MmHg(), v)
		}
	}
}

func TestNewPressure_OutOfRange(t *testing.T) {
	for _, v := range []int{40000, math.MaxInt16 + 1, math.MinInt16 - 1, -100000} {
		_, err := NewPressure(v)
		if err == nil {
			t.Fatalf("NewPressure(%d): expected error, got nil", v)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NewPressure(%d): error %v does not wrap ErrOutOfRange", v, err)
		}
	}
}

func TestMustPressure_PanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPressure(40000): expected panic")
		}
	}()
	MustPressure(40000)
}

func TestPressure_String(t *testing.T) {
	cases := map[int]string{120: "120", 0: "0", -5: "-5", math.MaxInt16: "32767"}
	for v, want := range cases {
		if got := MustPressure(v).String(); got != want {
			t.Errorf("String(%d): got %q, want %q", v, got, want)
		}
	}
}

func TestPressure_Compare(t *testing.T) {
	lo, mid, hi := MustPressure(80), MustPressure(120), MustPressure(180)

	if lo.Compare(mid) != -1 || mid.Compare(lo) != 1 || mid.Compare(mid) != 0 {
		t.Errorf("Compare: got %d/%d/%d, want -1/1/0",
			lo.Compare(mid), mid.Compare(lo), mid.Compare(mid))
	}
	if !lo.Less(mid) || !mid.Less(hi) || !lo.Less(hi) {
		t.Error("Less: ordering is not transitive for 80 < 120 < 180")
	}
	if mid.Less(mid) {
		t.Error("Less: 120 < 120 reported true")
	}
}

func TestPressure_Compare_Extremes(t *testing.T) {
	// Subtraction would overflow int16 here.
	lo, hi := MustPressure(math.MinInt16), MustPressure(math.MaxInt16)
	if lo.Compare(hi) != -1 {
		t.Errorf("Compare(min, max): got %d, want -1", lo.Compare(hi))
	}
	if hi.Compare(lo) != 1 {
		t.Errorf("Compare(max, min): got %d, want 1", hi.Compare(lo))
	}
}

func TestPressure_TotalOrder(t *testing.T) {
	values := []int{math.MinInt16, -1, 0, 1, 60, 80, 120, 121, 250, math.MaxInt16}
	for _, a := range values {
		for _, b := range values {
			pa, pb := MustPressure(a), MustPressure(b)
			want := 0
			switch {
			case a < b:
				want = -1
			case a > b:
				want = 1
			}
			if got := pa.Compare(pb); got != want {
				t.Errorf("Compare(%d, %d): got %d, want %d", a, b, got, want)
			}
			if (pa == pb) != (a == b) {
				t.Errorf("%d == %d: got %v", a, b, pa == pb)
			}
		}
	}
}
