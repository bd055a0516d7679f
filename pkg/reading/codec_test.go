package reading

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMarshalJSON_AbsentFieldsAreNull(t *testing.T) {
	r := New(MustPressure(120), MustPressure(80), RecordedAt(t0))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":null,"systolic":120,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z","pulse":null}`
	if string(data) != want {
		t.Errorf("JSON:\n got %s\nwant %s", data, want)
	}
}

func TestMarshalJSON_AllFields(t *testing.T) {
	r := New(MustPressure(120), MustPressure(80), WithID(9), WithPulse(MustPulse(72)), RecordedAt(t0))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":9,"systolic":120,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z","pulse":72}`
	if string(data) != want {
		t.Errorf("JSON:\n got %s\nwant %s", data, want)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var r Reading
	err := json.Unmarshal([]byte(`{"id":9,"systolic":120,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z","pulse":72}`), &r)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := New(MustPressure(120), MustPressure(80), WithID(9), WithPulse(MustPulse(72)), RecordedAt(t0))
	if !r.Equal(want) {
		t.Errorf("decoded: got %v, want %v", r, want)
	}
}

func TestUnmarshalJSON_Errors(t *testing.T) {
	cases := map[string]string{
		"missing systolic":  `{"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z"}`,
		"missing diastolic": `{"systolic":120,"recorded_time":"2024-05-01T08:30:00Z"}`,
		"missing time":      `{"systolic":120,"diastolic":80}`,
		"not a number":      `{"systolic":"high","diastolic":80,"recorded_time":"2024-05-01T08:30:00Z"}`,
		"malformed":         `{"systolic":`,
	}
	for name, in := range cases {
		var r Reading
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestUnmarshalJSON_OutOfRange(t *testing.T) {
	cases := []string{
		`{"systolic":40000,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z"}`,
		`{"systolic":120,"diastolic":-40000,"recorded_time":"2024-05-01T08:30:00Z"}`,
		`{"systolic":120,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z","pulse":99999}`,
	}
	for _, in := range cases {
		var r Reading
		err := json.Unmarshal([]byte(in), &r)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: got %v, want ErrOutOfRange", in, err)
		}
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	r := New(MustPressure(131), MustPressure(87), WithID(4), WithPulse(MustPulse(66)), RecordedAt(t0))
	data, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "systolic: 131") {
		t.Errorf("YAML missing systolic: %s", data)
	}

	var got Reading
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(r) {
		t.Errorf("round trip: got %v, want %v", got, r)
	}
}

func TestUnmarshalYAML_Document(t *testing.T) {
	var got []Reading
	err := yaml.Unmarshal([]byte(`
- id: 1
  systolic: 120
  diastolic: 80
  recorded_time: 2024-05-01T08:30:00Z
  pulse: 72
- systolic: 118
  diastolic: 79
  recorded_time: 2024-05-02T08:30:00Z
`), &got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	if id, ok := got[0].ID(); !ok || id != 1 {
		t.Errorf("[0].ID: got %d/%v, want 1/true", id, ok)
	}
	if got[1].Persisted() {
		t.Error("[1]: expected no id")
	}
	if _, ok := got[1].Pulse(); ok {
		t.Error("[1]: expected no pulse")
	}
}

func TestUnmarshalYAML_OutOfRange(t *testing.T) {
	var r Reading
	err := yaml.Unmarshal([]byte("systolic: 40000\ndiastolic: 80\nrecorded_time: 2024-05-01T08:30:00Z\n"), &r)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}
}

func TestUnmarshalJSON_UnknownField(t *testing.T) {
	var r Reading
	err := json.Unmarshal([]byte(`{"systolic":120,"diastolic":80,"recorded_time":"2024-05-01T08:30:00Z","recorded_at":"2024-06-01T08:30:00Z"}`), &r)
	if err == nil || !strings.Contains(err.Error(), "recorded_at") {
		t.Errorf("got %v, want unknown field error naming recorded_at", err)
	}
}

func TestUnmarshalYAML_UnknownField(t *testing.T) {
	var r Reading
	err := yaml.Unmarshal([]byte("systolic: 120\ndiastolic: 80\nrecorded_time: 2024-05-01T08:30:00Z\npluse: 72\n"), &r)
	if err == nil || !strings.Contains(err.Error(), `"pluse"`) {
		t.Errorf("got %v, want unknown field error naming pluse", err)
	}
}
