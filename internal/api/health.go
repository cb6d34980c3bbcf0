package api

import (
	"net/http"
	"time"

	"stacklens/internal/extract"
	"stacklens/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
	Components map[string]bool `json:"components"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}, http.StatusOK)
}

// handleReady reports readiness of the optional components. The server
// is ready even without tree-sitter; extraction then degrades to
// parse-failed records.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	components := map[string]bool{
		"treeSitter": extract.IsAvailable(),
		"store":      s.store != nil,
		"auth":       s.keys != nil,
	}

	WriteJSON(w, ReadyResponse{
		Status:     "ready",
		Timestamp:  time.Now().UTC(),
		Components: components,
	}, http.StatusOK)
}
