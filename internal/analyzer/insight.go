package analyzer

import (
	"strings"

	"stacklens/internal/arch"
	"stacklens/internal/classify"
	"stacklens/internal/features"
	"stacklens/internal/model"
	"stacklens/internal/quality"
	"stacklens/internal/violations"
)

// FileInsight is the full per-file inspection result: classification,
// layer, cross-layer dependencies, violations and quality score.
type FileInsight struct {
	Path            string                     `json:"path"`
	Category        model.Category             `json:"category"`
	Layer           arch.Layer                 `json:"layer"`
	Deps            violations.LayerDeps       `json:"deps"`
	Direction       violations.Direction       `json:"direction"`
	Violations      []string                   `json:"violations"`
	Severity        violations.Severity        `json:"severity"`
	ContextLabel    string                     `json:"contextLabel"`
	StaticLabel     string                     `json:"staticLabel"`
	Characteristics violations.Characteristics `json:"characteristics"`
	Quality         float64                    `json:"quality"`
	Loc             int                        `json:"loc"`
	Methods         int                        `json:"methods"`
	Annotations     int                        `json:"annotations"`
	AvgComplexity   float64                    `json:"avgComplexity"`
}

// Inspect produces a FileInsight per input file under the given
// architecture pattern. Records are matched to files by path; a file
// without a record gets zero metrics but still a classification.
func Inspect(files []model.SourceFile, records []features.FileRecord, pattern arch.Pattern) []FileInsight {
	byPath := make(map[string]features.FileRecord, len(records))
	for _, rec := range records {
		byPath[rec.Path] = rec
	}

	insights := make([]FileInsight, 0, len(files))
	for _, f := range files {
		rec := byPath[f.Path]
		layer := arch.DetectLayer(f.Path, f.Content)
		deps := violations.AnalyzeDependencies(f.Content)
		result := violations.Detect(f.Content, layer, pattern, deps)
		avgCC := averageComplexity(rec.Methods)

		score := quality.Score(quality.Inputs{
			Loc:           lineCount(f.Content),
			Methods:       len(rec.Methods),
			Annotations:   recordAnnotations(rec),
			AvgComplexity: avgCC,
			Layer:         layer,
			AntiPattern:   result.Violations[0],
		})

		insights = append(insights, FileInsight{
			Path:            f.Path,
			Category:        classify.Classify(f.Content),
			Layer:           layer,
			Deps:            deps,
			Direction:       violations.AnalyzeDirection(layer, deps, pattern),
			Violations:      result.Violations,
			Severity:        result.Severity,
			ContextLabel:    violations.ContextLabel(result, pattern, layer),
			StaticLabel:     violations.DetectStatic(f.Content),
			Characteristics: violations.AnalyzeCharacteristics(f.Content),
			Quality:         score,
			Loc:             lineCount(f.Content),
			Methods:         len(rec.Methods),
			Annotations:     recordAnnotations(rec),
			AvgComplexity:   avgCC,
		})
	}

	return insights
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func recordAnnotations(rec features.FileRecord) int {
	total := 0
	for _, c := range rec.Classes {
		total += c.Annotations
	}
	for _, m := range rec.Methods {
		total += m.Annotations
	}
	return total
}

// averageComplexity is the mean cyclomatic estimate over methods that
// carry one; zero when none do.
func averageComplexity(methods []features.MethodDecl) float64 {
	sum, n := 0, 0
	for _, m := range methods {
		if m.Complexity > 0 {
			sum += m.Complexity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
