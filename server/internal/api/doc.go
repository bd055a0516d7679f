// Package api implements the read-only HTTP REST API of the openbp server.
//
// New(store) returns an http.Handler that serves:
//
//	GET /api/v1/health           — state (ok|empty), reading count, last load time
//	GET /api/v1/readings         — all readings, newest first
//	GET /api/v1/readings/latest  — most recent reading; 404 if none
//	GET /api/v1/readings/{id}    — one reading; 400 if id is not an integer, 404 if unknown
//	GET /api/v1/snapshot         — all readings + generated_at
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for non-GET methods
//   - Encode readings with reading.Reading's MarshalJSON
//
// No external HTTP framework is used.
package api
