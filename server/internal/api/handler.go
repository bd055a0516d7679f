package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openbp/openbp/server/internal/store"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads readings from the store and returns JSON responses.
type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
func New(st *store.Store) http.Handler {
	h := &Handler{store: st, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/readings", h.listReadings)
	h.mux.HandleFunc("/api/v1/readings/", h.getReading) // subtree — extracts {id} or "latest"
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// BuildSnapshot renders every reading in st, newest first, stamped with the
// store clock.
func BuildSnapshot(st *store.Store) SnapshotResponse {
	return SnapshotResponse{
		Readings:    st.List(),
		GeneratedAt: st.Now().UTC().Format(time.RFC3339),
	}
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — reading count and last load time.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{
		State:        "ok",
		ReadingCount: h.store.Count(),
	}
	if resp.ReadingCount == 0 {
		resp.State = "empty"
	}
	if at := h.store.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = at.UTC().Format(time.RFC3339)
	}
	jsonResp(w, http.StatusOK, resp)
}

// listReadings returns GET /api/v1/readings — all readings, newest first.
func (h *Handler) listReadings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.store.List())
}

// getReading returns GET /api/v1/readings/{id} or /api/v1/readings/latest.
func (h *Handler) getReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/v1/readings/")
	switch key {
	case "":
		h.listReadings(w, r)
		return
	case "latest":
		rd, ok := h.store.Latest()
		if !ok {
			jsonErr(w, http.StatusNotFound, "no readings")
			return
		}
		jsonResp(w, http.StatusOK, rd)
		return
	}

	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "reading id must be an integer")
		return
	}
	rd, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "reading not found")
		return
	}
	jsonResp(w, http.StatusOK, rd)
}

// snapshot returns GET /api/v1/snapshot — all readings plus generated_at.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildSnapshot(h.store))
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
