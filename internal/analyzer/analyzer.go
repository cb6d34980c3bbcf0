// Package analyzer orchestrates one analysis run: tokenizing the
// stack trace, classifying and scoring files, counting features and
// assembling the outbound payload.
//
// Analyze is a plain request/response function. Every run builds its
// data structures fresh and shares nothing, so independent runs can be
// processed in parallel.
package analyzer

import (
	"errors"
	"strings"

	"stacklens/internal/arch"
	"stacklens/internal/classify"
	"stacklens/internal/features"
	"stacklens/internal/model"
	"stacklens/internal/report"
	"stacklens/internal/trace"
)

// Input-absent errors are surfaced to the user before any analysis
// work starts.
var (
	ErrNoStackTrace = errors.New("analyzer: no stack trace selected")
	ErrNoFiles      = errors.New("analyzer: no file set provided")
)

// Analyze runs the full pipeline over a selected stack trace and a
// file set with its declaration records, and returns the payload for
// the external analysis backend.
func Analyze(selectedText string, files []model.SourceFile, records []features.FileRecord) (*model.AnalysisPayload, error) {
	if strings.TrimSpace(selectedText) == "" {
		return nil, ErrNoStackTrace
	}
	if files == nil {
		return nil, ErrNoFiles
	}

	tokens := trace.Tokenize(selectedText)
	classified := classify.ClassifyAll(files, tokens)

	fm := features.Count(records)
	fm.ArchitecturePattern = string(arch.DetectPattern(files).Pattern)

	return report.Assemble(fm, classified, selectedText)
}
