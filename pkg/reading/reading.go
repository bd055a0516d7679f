package reading

import (
	"fmt"
	"log/slog"
	"time"
)

// Reading is one blood pressure reading. The zero value is not meaningful;
// build readings with New.
//
// A Reading is immutable: fields are fixed by New and changed only by taking
// a copy with With. Readings may be shared between goroutines freely.
type Reading struct {
	id    int64
	hasID bool

	systolic  Pressure
	diastolic Pressure

	recordedTime time.Time

	pulse    Pulse
	hasPulse bool
}

// Option overrides one field of a Reading under construction.
type Option func(*settings)

type settings struct {
	clock        Clock
	id           *int64
	pulse        *Pulse
	recordedTime *time.Time
}

// WithID sets the identifier assigned by the storage collaborator.
func WithID(id int64) Option {
	return func(s *settings) { s.id = &id }
}

// WithPulse attaches a pulse rate.
func WithPulse(p Pulse) Option {
	return func(s *settings) { s.pulse = &p }
}

// RecordedAt sets when the reading was taken. Without it New uses the clock.
func RecordedAt(t time.Time) Option {
	return func(s *settings) { s.recordedTime = &t }
}

// WithClock sets the clock New consults when no RecordedAt option is given.
// It has no effect on With.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// New returns a reading of systolic over diastolic pressure. The id and
// pulse are absent unless set by opts; the recorded time defaults to the
// clock's now (SystemClock unless WithClock is given).
func New(systolic, diastolic Pressure, opts ...Option) Reading {
	s := settings{clock: SystemClock}
	for _, opt := range opts {
		opt(&s)
	}

	r := Reading{systolic: systolic, diastolic: diastolic}
	if s.recordedTime == nil {
		clock := s.clock
		if clock == nil {
			clock = SystemClock
		}
		now := clock()
		s.recordedTime = &now
	}
	s.apply(&r)
	return r
}

// With returns a copy of r with opts applied. r itself is unchanged.
func (r Reading) With(opts ...Option) Reading {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	s.apply(&r)
	return r
}

func (s *settings) apply(r *Reading) {
	if s.id != nil {
		r.id, r.hasID = *s.id, true
	}
	if s.pulse != nil {
		r.pulse, r.hasPulse = *s.pulse, true
	}
	if s.recordedTime != nil {
		// Round(0) drops the monotonic reading so == compares wall time only.
		r.recordedTime = s.recordedTime.Round(0)
	}
}

// ID returns the persisted identifier and true, or 0 and false if the
// reading has not been persisted yet.
func (r Reading) ID() (int64, bool) { return r.id, r.hasID }

// Persisted reports whether an id has been assigned.
func (r Reading) Persisted() bool { return r.hasID }

// Systolic is the peak arterial pressure during a heartbeat.
func (r Reading) Systolic() Pressure { return r.systolic }

// Diastolic is the arterial pressure between heartbeats.
func (r Reading) Diastolic() Pressure { return r.diastolic }

// RecordedTime is when the reading was taken.
func (r Reading) RecordedTime() time.Time { return r.recordedTime }

// Pulse returns the pulse rate and true, or 0 and false if none was recorded.
func (r Reading) Pulse() (Pulse, bool) { return r.pulse, r.hasPulse }

// Equal reports whether r and other hold the same values in every field,
// including id. Recorded times are compared with time.Time.Equal.
func (r Reading) Equal(other Reading) bool {
	return r.id == other.id &&
		r.hasID == other.hasID &&
		r.systolic == other.systolic &&
		r.diastolic == other.diastolic &&
		r.recordedTime.Equal(other.recordedTime) &&
		r.pulse == other.pulse &&
		r.hasPulse == other.hasPulse
}

// String renders the reading the way it is usually written down,
// e.g. "120/80 mmHg, 72 bpm".
func (r Reading) String() string {
	if r.hasPulse {
		return fmt.Sprintf("%s/%s mmHg, %s bpm", r.systolic, r.diastolic, r.pulse)
	}
	return fmt.Sprintf("%s/%s mmHg", r.systolic, r.diastolic)
}

// LogValue implements slog.LogValuer.
func (r Reading) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)
	if r.hasID {
		attrs = append(attrs, slog.Int64("id", r.id))
	}
	attrs = append(attrs,
		slog.Int("systolic", int(r.systolic)),
		slog.Int("diastolic", int(r.diastolic)),
	)
	if r.hasPulse {
		attrs = append(attrs, slog.Int("pulse", int(r.pulse)))
	}
	attrs = append(attrs, slog.Time("recorded_time", r.recordedTime))
	return slog.GroupValue(attrs...)
}
