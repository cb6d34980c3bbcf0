package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
	"stacklens/internal/classify"
	"stacklens/internal/errors"
	"stacklens/internal/features"
	"stacklens/internal/model"
	"stacklens/internal/trace"
)

// FileInput is one source file in a request body.
type FileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// AnalyzeRequest is the body for the analysis endpoints. StackTrace is
// only required by /analyze and /classify.
type AnalyzeRequest struct {
	StackTrace string      `json:"stackTrace"`
	Files      []FileInput `json:"files"`
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*AnalyzeRequest, bool) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w)
		return nil, false
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func sourceFiles(inputs []FileInput) []model.SourceFile {
	files := make([]model.SourceFile, 0, len(inputs))
	for _, in := range inputs {
		files = append(files, model.SourceFile{Path: in.Path, Content: in.Content})
	}
	return files
}

func (s *Server) extractRecords(r *http.Request, files []model.SourceFile) []features.FileRecord {
	return s.extractor.ExtractAll(r.Context(), files)
}

// handleAnalyze runs the full pipeline and returns the analysis
// payload. With ?persist=1 and a configured store the run is saved and
// its ID returned alongside.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	files := sourceFiles(req.Files)
	records := s.extractRecords(r, files)

	payload, err := analyzer.Analyze(req.StackTrace, files, records)
	if err != nil {
		WriteAppError(w, errors.New(errors.InputAbsent, err.Error(), nil))
		return
	}

	resp := map[string]interface{}{
		"payload": payload,
	}

	if s.store != nil && r.URL.Query().Get("persist") == "1" {
		id, err := s.store.SaveRun(r.URL.Query().Get("repoRoot"), payload)
		if err != nil {
			WriteAppError(w, errors.New(errors.InternalError, "failed to persist run", err))
			return
		}
		resp["runId"] = id
	}

	WriteJSON(w, resp, http.StatusOK)
}

// handleFeatures returns the aggregate feature model for a file set.
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	files := sourceFiles(req.Files)
	records := s.extractRecords(r, files)

	fm := features.Count(records)
	fm.ArchitecturePattern = string(arch.DetectPattern(files).Pattern)

	WriteJSON(w, fm, http.StatusOK)
}

// handleClassify tokenizes the stack trace and classifies each file.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(req.StackTrace) == "" {
		WriteAppError(w, errors.New(errors.InputAbsent, "stackTrace is required", nil))
		return
	}

	tokens := trace.Tokenize(req.StackTrace)
	classified := classify.ClassifyAll(sourceFiles(req.Files), tokens)

	WriteJSON(w, map[string]interface{}{
		"tokens":          tokens,
		"classifiedFiles": classified,
	}, http.StatusOK)
}

// handleArchitecture returns the detected pattern and per-file layers.
func (s *Server) handleArchitecture(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	files := sourceFiles(req.Files)
	detection := arch.DetectPattern(files)

	layers := make([]map[string]string, 0, len(files))
	for _, f := range files {
		layers = append(layers, map[string]string{
			"path":  f.Path,
			"layer": string(arch.DetectLayer(f.Path, f.Content)),
		})
	}

	WriteJSON(w, map[string]interface{}{
		"pattern":    detection.Pattern,
		"confidence": detection.Confidence,
		"files":      layers,
	}, http.StatusOK)
}

// handleViolations returns per-file violation insights.
func (s *Server) handleViolations(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	files := sourceFiles(req.Files)
	records := s.extractRecords(r, files)
	detection := arch.DetectPattern(files)
	insights := analyzer.Inspect(files, records, detection.Pattern)

	WriteJSON(w, map[string]interface{}{
		"pattern": detection.Pattern,
		"files":   insights,
	}, http.StatusOK)
}

// handleQuality returns per-file quality scores.
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	files := sourceFiles(req.Files)
	records := s.extractRecords(r, files)
	detection := arch.DetectPattern(files)
	insights := analyzer.Inspect(files, records, detection.Pattern)

	scores := make([]map[string]interface{}, 0, len(insights))
	for _, in := range insights {
		scores = append(scores, map[string]interface{}{
			"path":    in.Path,
			"layer":   in.Layer,
			"quality": in.Quality,
		})
	}

	WriteJSON(w, map[string]interface{}{"files": scores}, http.StatusOK)
}

// handleListRuns lists persisted runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}
	if s.store == nil {
		NotFound(w, "run persistence is not enabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		WriteAppError(w, errors.New(errors.InternalError, "failed to list runs", err))
		return
	}

	WriteJSON(w, map[string]interface{}{"runs": runs}, http.StatusOK)
}

// handleGetRun returns one persisted run with its classified files.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}
	if s.store == nil {
		NotFound(w, "run persistence is not enabled")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" || strings.Contains(id, "/") {
		BadRequest(w, "run ID is required")
		return
	}

	run, files, err := s.store.GetRun(id)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	WriteJSON(w, map[string]interface{}{
		"run":   run,
		"files": files,
	}, http.StatusOK)
}
