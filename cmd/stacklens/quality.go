package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
)

var (
	qualityFormat string
	qualityBelow  float64
	qualityLimit  int
	qualitySort   string
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Score per-file code quality",
	Long: `Score every file on a 10-point scale, penalizing long files, high
cyclomatic complexity, method sprawl, annotation overuse and detected
anti-patterns.

Examples:
  stacklens quality
  stacklens quality --below 7.0 --format=human
  stacklens quality --sort=asc --limit 10`,
	Run: runQuality,
}

func init() {
	qualityCmd.Flags().StringVar(&qualityFormat, "format", "json", "Output format (json, human)")
	qualityCmd.Flags().Float64Var(&qualityBelow, "below", 0, "Only show files scoring below this value (0 for all)")
	qualityCmd.Flags().IntVar(&qualityLimit, "limit", 0, "Show at most this many files (0 for all)")
	qualityCmd.Flags().StringVar(&qualitySort, "sort", "", "Sort by score (asc, desc); default keeps scan order")
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) {
	logger := newLogger(qualityFormat)

	if qualitySort != "" && qualitySort != "asc" && qualitySort != "desc" {
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q (use asc or desc)\n", qualitySort)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	ctx := newContext()

	files := mustScanRepo(repoRoot)
	records := extractRecords(ctx, repoRoot, cfg, files, logger)

	detection := arch.DetectPattern(files)
	insights := analyzer.Inspect(files, records, detection.Pattern)

	if qualityBelow > 0 {
		filtered := insights[:0]
		for _, in := range insights {
			if in.Quality < qualityBelow {
				filtered = append(filtered, in)
			}
		}
		insights = filtered
	}

	if qualitySort != "" {
		sorted := make([]analyzer.FileInsight, len(insights))
		copy(sorted, insights)
		sort.SliceStable(sorted, func(i, j int) bool {
			if qualitySort == "asc" {
				return sorted[i].Quality < sorted[j].Quality
			}
			return sorted[i].Quality > sorted[j].Quality
		})
		insights = sorted
	}

	if qualityLimit > 0 && qualityLimit < len(insights) {
		insights = insights[:qualityLimit]
	}

	output, err := FormatResponse(insights, OutputFormat(qualityFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
