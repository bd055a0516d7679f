package reading

import (
	"errors"
	"math"
	"testing"
)

func TestNewPulse(t *testing.T) {
	p, err := NewPulse(72)
	if err != nil {
		t.Fatalf("NewPulse(72): unexpected error: %v", err)
	}
	if p.Bpm() != 72 {
		t.Errorf("Bpm: got %d, want 72", p.Bpm())
	}
	if p.String() != "72" {
		t.Errorf("String: got %q, want 72", p.String())
	}
	if p != MustPulse(72) {
		t.Error("equal magnitudes: pulses compare unequal")
	}
	if p == MustPulse(73) {
		t.Error("different magnitudes: pulses compare equal")
	}
}

func TestNewPulse_OutOfRange(t *testing.T) {
	for _, v := range []int{math.MaxInt16 + 1, math.MinInt16 - 1} {
		if _, err := NewPulse(v); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NewPulse(%d): got %v, want ErrOutOfRange", v, err)
		}
	}
}

func TestMustPulse_PanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPulse(70000): expected panic")
		}
	}()
	MustPulse(70000)
}
