package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/arch"
	"stacklens/internal/features"
)

var featuresFormat string

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Extract the aggregate feature model",
	Long: `Extract structural feature counts for the repository: total lines of
code inside method bodies, method, class, import and annotation counts,
plus the detected architecture pattern.

Examples:
  stacklens features
  stacklens features --repo ../shop --format=human`,
	Run: runFeatures,
}

func init() {
	featuresCmd.Flags().StringVar(&featuresFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) {
	logger := newLogger(featuresFormat)

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	ctx := newContext()

	files := mustScanRepo(repoRoot)
	records := extractRecords(ctx, repoRoot, cfg, files, logger)

	fm := features.Count(records)
	fm.ArchitecturePattern = string(arch.DetectPattern(files).Pattern)

	output, err := FormatResponse(fm, OutputFormat(featuresFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
