package metrics

import (
	"net/http"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/openbp/openbp/pkg/reading"
	"github.com/openbp/openbp/server/internal/store"
)

// Metric family names.
const (
	SystolicName  = "openbp_reading_systolic_mmhg"
	DiastolicName = "openbp_reading_diastolic_mmhg"
	PulseName     = "openbp_reading_pulse_bpm"
	CountName     = "openbp_readings"
)

// contentType is the text exposition format, version 0.0.4.
const contentType = "text/plain; version=0.0.4; charset=utf-8"

// Families converts rs into metric families in a stable order: systolic,
// diastolic, pulse, count. Families without samples are omitted, except the
// count, which is always present.
func Families(rs []reading.Reading) []*dto.MetricFamily {
	sys := gaugeFamily(SystolicName, "Systolic blood pressure of a reading, in mmHg.")
	dia := gaugeFamily(DiastolicName, "Diastolic blood pressure of a reading, in mmHg.")
	pulse := gaugeFamily(PulseName, "Pulse rate recorded with a reading, in beats per minute.")

	for _, r := range rs {
		id, ok := r.ID()
		if !ok {
			continue
		}
		label := strconv.FormatInt(id, 10)
		ts := r.RecordedTime().UnixMilli()

		sys.Metric = append(sys.Metric, gauge(label, float64(r.Systolic().MmHg()), ts))
		dia.Metric = append(dia.Metric, gauge(label, float64(r.Diastolic().MmHg()), ts))
		if p, ok := r.Pulse(); ok {
			pulse.Metric = append(pulse.Metric, gauge(label, float64(p.Bpm()), ts))
		}
	}

	count := gaugeFamily(CountName, "Number of readings currently held.")
	count.Metric = []*dto.Metric{{
		Gauge: &dto.Gauge{Value: proto.Float64(float64(len(rs)))},
	}}

	out := make([]*dto.MetricFamily, 0, 4)
	for _, mf := range []*dto.MetricFamily{sys, dia, pulse} {
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	return append(out, count)
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(id string, v float64, timestampMs int64) *dto.Metric {
	return &dto.Metric{
		Label:       []*dto.LabelPair{{Name: proto.String("id"), Value: proto.String(id)}},
		Gauge:       &dto.Gauge{Value: proto.Float64(v)},
		TimestampMs: proto.Int64(timestampMs),
	}
}

// Handler serves the store's readings as GET /metrics.
func Handler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", contentType)
		for _, mf := range Families(st.List()) {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				// Headers are already sent; nothing useful left to tell the client.
				return
			}
		}
	})
}
