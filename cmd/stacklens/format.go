package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"stacklens/internal/analyzer"
	"stacklens/internal/model"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *model.AnalysisPayload:
		return formatPayloadHuman(v)
	case []analyzer.FileInsight:
		return formatInsightsHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatPayloadHuman(p *model.AnalysisPayload) (string, error) {
	var b strings.Builder

	fm := p.FeatureModel
	b.WriteString("Feature model:\n")
	b.WriteString(fmt.Sprintf("  Architecture: %s\n", fm.ArchitecturePattern))
	b.WriteString(fmt.Sprintf("  LOC: %d  Methods: %d  Classes: %d  Imports: %d  Annotations: %d\n",
		fm.Loc, fm.Methods, fm.Classes, fm.Imports, fm.Annotations))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Classified files (%d):\n", len(p.ClassifiedFiles)))
	for _, cf := range p.ClassifiedFiles {
		b.WriteString(fmt.Sprintf("  [%d] %-12s %s\n", cf.Relevance, cf.Category, cf.Path))
	}

	return b.String(), nil
}

func formatInsightsHuman(insights []analyzer.FileInsight) (string, error) {
	var b strings.Builder

	for _, in := range insights {
		b.WriteString(fmt.Sprintf("%s\n", in.Path))
		b.WriteString(fmt.Sprintf("  layer=%s category=%s quality=%.2f\n",
			in.Layer, in.Category, in.Quality))
		b.WriteString(fmt.Sprintf("  violations=%s severity=%s direction=%s\n",
			strings.Join(in.Violations, ","), in.Severity, in.Direction))
	}

	return b.String(), nil
}
