package reading

import (
	"fmt"
	"math"
	"strconv"
)

// Pulse is a pulse rate in beats per minute (bpm).
type Pulse int16

// NewPulse returns bpm as a Pulse.
// It returns an error wrapping ErrOutOfRange if bpm does not fit in int16.
func NewPulse(bpm int) (Pulse, error) {
	if bpm < math.MinInt16 || bpm > math.MaxInt16 {
		return 0, fmt.Errorf("pulse %d bpm: %w", bpm, ErrOutOfRange)
	}
	return Pulse(bpm), nil
}

// MustPulse is like NewPulse but panics if bpm is out of range.
func MustPulse(bpm int) Pulse {
	p, err := NewPulse(bpm)
	if err != nil {
		panic(err)
	}
	return p
}

// Bpm returns the rate in beats per minute.
func (p Pulse) Bpm() int16 { return int16(p) }

// String renders the pulse as a plain decimal numeral, e.g. "72".
func (p Pulse) String() string { return strconv.Itoa(int(p)) }
