package reading

import "errors"

// ErrOutOfRange is returned when a measurement magnitude does not fit the
// int16 range backing Pressure and Pulse. Callers match it with errors.Is.
var ErrOutOfRange = errors.New("value out of representable range")
