package reading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// record is the plain-field form of a Reading used by the JSON and YAML
// codecs. Nil pointers are absent values.
type record struct {
	ID           *int64     `json:"id" yaml:"id"`
	Systolic     *int       `json:"systolic" yaml:"systolic"`
	Diastolic    *int       `json:"diastolic" yaml:"diastolic"`
	RecordedTime *time.Time `json:"recorded_time" yaml:"recorded_time"`
	Pulse        *int       `json:"pulse" yaml:"pulse"`
}

var recordFields = map[string]bool{
	"id":            true,
	"systolic":      true,
	"diastolic":     true,
	"recorded_time": true,
	"pulse":         true,
}

func (r Reading) record() record {
	sys, dia := int(r.systolic), int(r.diastolic)
	at := r.recordedTime
	rec := record{Systolic: &sys, Diastolic: &dia, RecordedTime: &at}
	if r.hasID {
		id := r.id
		rec.ID = &id
	}
	if r.hasPulse {
		p := int(r.pulse)
		rec.Pulse = &p
	}
	return rec
}

// reading validates rec and builds the Reading it describes. Decoded records
// must state when they were taken; only New falls back to a clock.
func (rec record) reading() (Reading, error) {
	if rec.Systolic == nil {
		return Reading{}, errors.New("reading: systolic is required")
	}
	if rec.Diastolic == nil {
		return Reading{}, errors.New("reading: diastolic is required")
	}
	if rec.RecordedTime == nil {
		return Reading{}, errors.New("reading: recorded_time is required")
	}

	sys, err := NewPressure(*rec.Systolic)
	if err != nil {
		return Reading{}, fmt.Errorf("reading: systolic: %w", err)
	}
	dia, err := NewPressure(*rec.Diastolic)
	if err != nil {
		return Reading{}, fmt.Errorf("reading: diastolic: %w", err)
	}

	opts := []Option{RecordedAt(*rec.RecordedTime)}
	if rec.ID != nil {
		opts = append(opts, WithID(*rec.ID))
	}
	if rec.Pulse != nil {
		p, err := NewPulse(*rec.Pulse)
		if err != nil {
			return Reading{}, fmt.Errorf("reading: pulse: %w", err)
		}
		opts = append(opts, WithPulse(p))
	}
	return New(sys, dia, opts...), nil
}

// MarshalJSON implements json.Marshaler.
func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.record())
}

// UnmarshalJSON implements json.Unmarshaler. Magnitudes outside the int16
// range are rejected with an error wrapping ErrOutOfRange, and so are
// unknown fields, so a misspelt key cannot silently drop a value.
func (r *Reading) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var rec record
	if err := dec.Decode(&rec); err != nil {
		return fmt.Errorf("reading: %w", err)
	}
	decoded, err := rec.reading()
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Reading) MarshalYAML() (interface{}, error) {
	return r.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler with the same rules as
// UnmarshalJSON.
func (r *Reading) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i < len(value.Content); i += 2 {
			key := value.Content[i]
			if !recordFields[key.Value] {
				return fmt.Errorf("reading: line %d: unknown field %q", key.Line, key.Value)
			}
		}
	}
	var rec record
	if err := value.Decode(&rec); err != nil {
		return fmt.Errorf("reading: %w", err)
	}
	decoded, err := rec.reading()
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}
