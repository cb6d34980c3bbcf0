// Package features aggregates structural counts over pre-extracted
// declaration records.
//
// The counter never parses source itself: records come from an
// extraction collaborator (tree-sitter, a SCIP index, or a test
// fixture), which keeps the core decoupled from any host parsing API.
package features

import "stacklens/internal/model"

// ClassDecl is one class declaration extracted from a source file.
type ClassDecl struct {
	Name        string `json:"name"`
	Annotations int    `json:"annotations"`
}

// MethodDecl is one method declaration with its source text span.
// Complexity is an optional cyclomatic estimate; zero means the
// extraction source could not provide one.
type MethodDecl struct {
	Name        string `json:"name"`
	Annotations int    `json:"annotations"`
	StartLine   int    `json:"startLine"` // 1-indexed, inclusive
	EndLine     int    `json:"endLine"`   // 1-indexed, inclusive
	Complexity  int    `json:"complexity,omitempty"`
}

// Lines returns the number of text lines in the method's span.
func (m MethodDecl) Lines() int {
	if m.EndLine < m.StartLine {
		return 0
	}
	return m.EndLine - m.StartLine + 1
}

// FileRecord is the parsed representation of one source file.
// A file that failed to parse carries ParseFailed and empty
// declaration collections, so it contributes zero to every count.
type FileRecord struct {
	Path        string       `json:"path"`
	Classes     []ClassDecl  `json:"classes"`
	Methods     []MethodDecl `json:"methods"`
	Imports     int          `json:"imports"`
	ParseFailed bool         `json:"parseFailed,omitempty"`
}

// Count aggregates declaration records into a FeatureModel.
//
// Loc is the sum of per-method span lines, a deliberate approximation
// biased toward executable surface area rather than file-level LOC.
// Unparsable files are skipped, never fatal. Pure and idempotent.
func Count(records []FileRecord) *model.FeatureModel {
	fm := &model.FeatureModel{}

	for _, rec := range records {
		if rec.ParseFailed {
			continue
		}

		fm.Imports += rec.Imports
		fm.Classes += len(rec.Classes)
		fm.Methods += len(rec.Methods)

		for _, cls := range rec.Classes {
			fm.Annotations += cls.Annotations
		}
		for _, m := range rec.Methods {
			fm.Annotations += m.Annotations
			fm.Loc += m.Lines()
		}
	}

	return fm
}
