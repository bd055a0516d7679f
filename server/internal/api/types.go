package api

import "github.com/openbp/openbp/pkg/reading"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State        string `json:"state"` // ok | empty
	ReadingCount int    `json:"reading_count"`
	LoadedAt     string `json:"loaded_at,omitempty"` // RFC3339
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the data of
// every WebSocket broadcast.
type SnapshotResponse struct {
	Readings    []reading.Reading `json:"readings"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
