// Package ws implements the WebSocket hub of the openbp server.
//
// Hub manages a set of connected clients and pushes the current readings to
// all of them on a configurable interval, and immediately after every reload
// of the readings file (Broadcast).
//
// Message format sent to clients:
//
//	{
//	  "event": "snapshot",
//	  "data":  { /* same schema as GET /api/v1/snapshot */ }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The server mounts the hub at /ws/stream.
package ws
