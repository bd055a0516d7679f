// Package config loads the openbp server configuration from the `server:`
// section of config.yaml.
//
// Config fields:
//   - HTTPPort        — port for the REST API, /metrics and /ws/stream (default 8080)
//   - Auth.Mode       — "apikey" or "none"
//   - Auth.KeyEnv     — environment variable holding the expected API key
//   - Auth.Header     — HTTP header name (default "x-api-key")
//   - Readings.Path   — readings file exported by the storage collaborator (required)
//   - Readings.Watch  — reload the file on change (default true)
//   - Stream.Interval — WebSocket broadcast period (default 5s)
//   - Log.Level       — debug|info|warn|error (default info)
//
// Load(path) applies defaults before unmarshalling, then validates.
package config
