package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
	"stacklens/internal/violations"
)

func sampleInsights() []analyzer.FileInsight {
	return []analyzer.FileInsight{
		{
			Path:         "src/UserController.java",
			Layer:        arch.LayerController,
			Loc:          80,
			Methods:      6,
			Annotations:  4,
			Violations:   []string{"business_logic_in_controller_layered"},
			Severity:     violations.SeverityHigh,
			ContextLabel: "business_logic_in_controller_layered_layered_controller",
			StaticLabel:  "business_logic_in_controller",
			Direction:    violations.DirectionCorrect,
			Quality:      7.2,
		},
		{
			Path:         "src/UserService.java",
			Layer:        arch.LayerService,
			Loc:          120,
			Methods:      9,
			Annotations:  6,
			Violations:   []string{violations.Clean},
			Severity:     violations.SeverityLow,
			ContextLabel: "clean_layered_service",
			StaticLabel:  violations.Clean,
			Direction:    violations.DirectionCorrect,
			Quality:      10.0,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		defer dec.Close()
		decoded, err := dec.DecodeAll(data, nil)
		if err != nil {
			t.Fatalf("zstd decode: %v", err)
		}
		data = decoded
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	return rows
}

func TestWriteStatic(t *testing.T) {
	w := &Writer{OutputDir: t.TempDir()}

	path, err := w.WriteStatic(sampleInsights())
	if err != nil {
		t.Fatalf("WriteStatic failed: %v", err)
	}
	if filepath.Base(path) != "static_dataset.csv" {
		t.Errorf("unexpected file name %s", path)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "file" || rows[0][5] != "label" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][5] != "business_logic_in_controller" {
		t.Errorf("label = %q", rows[1][5])
	}
	if rows[2][5] != "clean" {
		t.Errorf("label = %q", rows[2][5])
	}
}

func TestWriteArchitecture(t *testing.T) {
	w := &Writer{OutputDir: t.TempDir()}
	det := arch.Detection{Pattern: arch.Layered, Confidence: 0.85}

	path, err := w.WriteArchitecture(det, sampleInsights())
	if err != nil {
		t.Fatalf("WriteArchitecture failed: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][1] != "layered" || rows[1][2] != "0.85" {
		t.Errorf("architecture columns = %v", rows[1][1:3])
	}
	if rows[1][6] != "business_logic_in_controller_layered_layered_controller" {
		t.Errorf("context label = %q", rows[1][6])
	}
	if rows[2][5] != "low" {
		t.Errorf("severity = %q", rows[2][5])
	}
}

func TestWriteQuality(t *testing.T) {
	w := &Writer{OutputDir: t.TempDir()}

	path, err := w.WriteQuality(sampleInsights())
	if err != nil {
		t.Fatalf("WriteQuality failed: %v", err)
	}

	rows := readCSV(t, path)
	if rows[1][5] != "7.20" {
		t.Errorf("quality = %q, want 7.20", rows[1][5])
	}
	if rows[2][5] != "10.00" {
		t.Errorf("quality = %q, want 10.00", rows[2][5])
	}
}

func TestWriteCompressed(t *testing.T) {
	w := &Writer{OutputDir: t.TempDir(), Compress: true}

	path, err := w.WriteStatic(sampleInsights())
	if err != nil {
		t.Fatalf("WriteStatic failed: %v", err)
	}
	if !strings.HasSuffix(path, ".csv.zst") {
		t.Fatalf("compressed path = %s, want .csv.zst suffix", path)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Errorf("got %d rows after decompression, want 3", len(rows))
	}
}
