// Package dataset exports per-file analysis results as CSV datasets
// suitable for training classification models.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
)

// Writer exports datasets into an output directory. When Compress is
// set, files get a .zst suffix and are zstd-encoded.
type Writer struct {
	OutputDir string
	Compress  bool
}

// WriteStatic exports the flat anti-pattern dataset: one row per file
// with structural counts and the first-match static label.
func (w *Writer) WriteStatic(insights []analyzer.FileInsight) (string, error) {
	header := []string{"file", "layer", "loc", "methods", "annotations", "label"}
	rows := make([][]string, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, []string{
			in.Path,
			string(in.Layer),
			strconv.Itoa(in.Loc),
			strconv.Itoa(in.Methods),
			strconv.Itoa(in.Annotations),
			in.StaticLabel,
		})
	}
	return w.write("static_dataset.csv", header, rows)
}

// WriteArchitecture exports the architecture-aware dataset. Violations
// are joined with ";" and the context label encodes pattern and layer.
func (w *Writer) WriteArchitecture(pattern arch.Detection, insights []analyzer.FileInsight) (string, error) {
	header := []string{
		"file", "architecture", "confidence", "layer",
		"violations", "severity", "context_label", "dependency_direction",
	}
	rows := make([][]string, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, []string{
			in.Path,
			string(pattern.Pattern),
			fmt.Sprintf("%.2f", pattern.Confidence),
			string(in.Layer),
			strings.Join(in.Violations, ";"),
			string(in.Severity),
			in.ContextLabel,
			string(in.Direction),
		})
	}
	return w.write("architecture_dataset.csv", header, rows)
}

// WriteQuality exports the quality score dataset.
func (w *Writer) WriteQuality(insights []analyzer.FileInsight) (string, error) {
	header := []string{"file", "layer", "loc", "methods", "avg_complexity", "quality_score"}
	rows := make([][]string, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, []string{
			in.Path,
			string(in.Layer),
			strconv.Itoa(in.Loc),
			strconv.Itoa(in.Methods),
			fmt.Sprintf("%.2f", in.AvgComplexity),
			fmt.Sprintf("%.2f", in.Quality),
		})
	}
	return w.write("quality_dataset.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create dataset directory: %w", err)
	}

	path := filepath.Join(w.OutputDir, name)
	if w.Compress {
		path += ".zst"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dataset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out io.Writer = f
	var enc *zstd.Encoder
	if w.Compress {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			return "", fmt.Errorf("create zstd writer: %w", err)
		}
		out = enc
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("close zstd writer: %w", err)
		}
	}
	return path, nil
}
