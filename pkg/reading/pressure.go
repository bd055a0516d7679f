package reading

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
)

// Pressure is a blood pressure measurement in millimeters of mercury (mmHg).
type Pressure int16

// NewPressure returns mmHg as a Pressure.
// It returns an error wrapping ErrOutOfRange if mmHg does not fit in int16.
func NewPressure(mmHg int) (Pressure, error) {
	if mmHg < math.MinInt16 || mmHg > math.MaxInt16 {
		return 0, fmt.Errorf("pressure %d mmHg: %w", mmHg, ErrOutOfRange)
	}
	return Pressure(mmHg), nil
}

// MustPressure is like NewPressure but panics if mmHg is out of range.
// Intended for constants and tests.
func MustPressure(mmHg int) Pressure {
	p, err := NewPressure(mmHg)
	if err != nil {
		panic(err)
	}
	return p
}

// MmHg returns the magnitude in millimeters of mercury.
func (p Pressure) MmHg() int16 { return int16(p) }

// String renders the pressure as a plain decimal numeral, e.g. "120".
func (p Pressure) String() string { return strconv.Itoa(int(p)) }

// Compare returns -1, 0 or +1 depending on whether p is lower than, equal to
// or higher than other.
func (p Pressure) Compare(other Pressure) int { return cmp.Compare(p, other) }

// Less reports whether p is lower than other.
func (p Pressure) Less(other Pressure) bool { return p < other }
