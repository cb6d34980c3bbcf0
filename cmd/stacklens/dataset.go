package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
	"stacklens/internal/dataset"
)

var (
	datasetOutput   string
	datasetCompress bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Export per-file analysis results as CSV datasets",
	Long: `Export three CSV datasets from the repository: the flat anti-pattern
dataset, the architecture-aware dataset with context labels, and the
quality score dataset.

Examples:
  stacklens dataset
  stacklens dataset --output datasets/shop --compress`,
	Run: runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&datasetOutput, "output", "", "Output directory (default from config)")
	datasetCmd.Flags().BoolVar(&datasetCompress, "compress", false, "zstd-compress the CSV files")
	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string) {
	logger := newLogger("human")

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	ctx := newContext()

	files := mustScanRepo(repoRoot)
	records := extractRecords(ctx, repoRoot, cfg, files, logger)

	detection := arch.DetectPattern(files)
	insights := analyzer.Inspect(files, records, detection.Pattern)

	outputDir := datasetOutput
	if outputDir == "" {
		outputDir = cfg.Dataset.OutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(repoRoot, outputDir)
	}

	writer := &dataset.Writer{
		OutputDir: outputDir,
		Compress:  datasetCompress || cfg.Dataset.Compress,
	}

	staticPath, err := writer.WriteStatic(insights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing static dataset: %v\n", err)
		os.Exit(1)
	}
	archPath, err := writer.WriteArchitecture(detection, insights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing architecture dataset: %v\n", err)
		os.Exit(1)
	}
	qualityPath, err := writer.WriteQuality(insights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing quality dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", staticPath)
	fmt.Printf("Wrote %s\n", archPath)
	fmt.Printf("Wrote %s\n", qualityPath)
	fmt.Printf("%d files, architecture %s (%.2f)\n", len(insights), detection.Pattern, detection.Confidence)
}
