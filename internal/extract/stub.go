//go:build !cgo

// Package extract produces declaration records from Java source files.
// This is the stub for non-CGO builds: tree-sitter extraction is
// unavailable, SCIP extraction still works.
package extract

import (
	"context"
	"errors"

	"stacklens/internal/features"
	"stacklens/internal/model"
)

// ErrNoCGO is returned when tree-sitter extraction is unavailable.
var ErrNoCGO = errors.New("declaration extraction requires CGO (tree-sitter)")

// Extractor parses Java sources with tree-sitter.
// Stub for non-CGO builds.
type Extractor struct{}

// NewExtractor returns nil when CGO is disabled.
func NewExtractor() *Extractor {
	return nil
}

// IsAvailable reports whether tree-sitter extraction is compiled in.
func IsAvailable() bool {
	return false
}

// ExtractFile marks every file as unparsable in non-CGO builds.
func (e *Extractor) ExtractFile(ctx context.Context, file model.SourceFile) features.FileRecord {
	return features.FileRecord{Path: file.Path, ParseFailed: true}
}

// ExtractAll extracts records for every file, in input order.
func (e *Extractor) ExtractAll(ctx context.Context, files []model.SourceFile) []features.FileRecord {
	records := make([]features.FileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, e.ExtractFile(ctx, f))
	}
	return records
}
