package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/analyzer"
	"stacklens/internal/arch"
	"stacklens/internal/violations"
)

var (
	violationsFormat  string
	violationsOnlyBad bool
	violationsMinSev  string
)

var violationsCmd = &cobra.Command{
	Use:   "violations",
	Short: "Detect architecture-aware violations",
	Long: `Inspect every file for violations under the detected architecture
pattern: layer skips, reversed dependencies, framework coupling in
domain code, broad exception handling and more.

Examples:
  stacklens violations
  stacklens violations --only-violations --format=human
  stacklens violations --severity=high`,
	Run: runViolations,
}

func init() {
	violationsCmd.Flags().StringVar(&violationsFormat, "format", "json", "Output format (json, human)")
	violationsCmd.Flags().BoolVar(&violationsOnlyBad, "only-violations", false, "Hide clean files")
	violationsCmd.Flags().StringVar(&violationsMinSev, "severity", "", "Only show files at or above this severity (low, medium, high, critical)")
	rootCmd.AddCommand(violationsCmd)
}

func runViolations(cmd *cobra.Command, args []string) {
	logger := newLogger(violationsFormat)

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	ctx := newContext()

	files := mustScanRepo(repoRoot)
	records := extractRecords(ctx, repoRoot, cfg, files, logger)

	detection := arch.DetectPattern(files)
	insights := analyzer.Inspect(files, records, detection.Pattern)

	if violationsOnlyBad {
		filtered := insights[:0]
		for _, in := range insights {
			if len(in.Violations) != 1 || in.Violations[0] != violations.Clean {
				filtered = append(filtered, in)
			}
		}
		insights = filtered
	}

	if violationsMinSev != "" {
		min := violations.Severity(violationsMinSev)
		if !violations.KnownSeverity(min) {
			fmt.Fprintf(os.Stderr, "Error: unknown severity %q (use low, medium, high or critical)\n", violationsMinSev)
			os.Exit(1)
		}
		filtered := insights[:0]
		for _, in := range insights {
			if in.Severity.AtLeast(min) {
				filtered = append(filtered, in)
			}
		}
		insights = filtered
	}

	output, err := FormatResponse(insights, OutputFormat(violationsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
