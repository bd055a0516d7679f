// Package metrics exposes readings in the Prometheus text exposition format.
//
// Families(readings) builds one gauge family per measurement:
//
//	openbp_reading_systolic_mmhg{id="…"}   — systolic pressure, mmHg
//	openbp_reading_diastolic_mmhg{id="…"}  — diastolic pressure, mmHg
//	openbp_reading_pulse_bpm{id="…"}       — pulse, bpm (readings with a pulse only)
//	openbp_readings                        — number of readings held
//
// Only persisted readings get per-reading series; each sample carries the
// reading's recorded time as its timestamp.
//
// Handler(store) serves GET /metrics.
package metrics
