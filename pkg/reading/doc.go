// Package reading defines the blood-pressure reading value model shared by
// openbp components.
//
// Top-level types:
//   - Pressure — millimeters of mercury (mmHg), int16-backed, totally ordered
//   - Pulse    — beats per minute (bpm), int16-backed
//   - Reading  — immutable aggregate: optional id, systolic and diastolic
//     pressure, recorded time, optional pulse
//   - Clock    — the single source of "now"; SystemClock in production,
//     FixedClock in tests
//
// NewPressure and NewPulse reject magnitudes outside the int16 range with an
// error wrapping ErrOutOfRange; values never wrap around.
//
// A Reading is never mutated after New. Reading.With returns a copy with
// overrides, which is how a storage collaborator attaches the id it assigned.
//
// Readings encode to JSON and YAML as five plain fields (id, systolic,
// diastolic, recorded_time, pulse); absent id and pulse encode as null.
package reading
