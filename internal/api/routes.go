package api

import (
	"net/http"

	"stacklens/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and readiness checks
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	// Analysis endpoints
	s.router.HandleFunc("/analyze", s.handleAnalyze)
	s.router.HandleFunc("/features", s.handleFeatures)
	s.router.HandleFunc("/classify", s.handleClassify)
	s.router.HandleFunc("/architecture", s.handleArchitecture)
	s.router.HandleFunc("/violations", s.handleViolations)
	s.router.HandleFunc("/quality", s.handleQuality)

	// Persisted runs
	s.router.HandleFunc("/runs", s.handleListRuns)
	s.router.HandleFunc("/runs/", s.handleGetRun)

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"name":    "stacklens",
		"version": version.Version,
		"endpoints": []string{
			"/health", "/ready",
			"/analyze", "/features", "/classify",
			"/architecture", "/violations", "/quality",
			"/runs", "/runs/{id}",
		},
	}, http.StatusOK)
}
