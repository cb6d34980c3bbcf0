package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"stacklens/internal/classify"
	"stacklens/internal/model"
	"stacklens/internal/trace"
)

var (
	classifyTrace     string
	classifyTraceFile string
	classifyFormat    string
	classifyTop       int
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify files and score them against a stack trace",
	Long: `Tokenize a stack trace and classify every Java file by its Spring
role, scoring each file's relevance to the trace.

Examples:
  stacklens classify --trace "NullPointerException at UserService.process"
  stacklens classify --trace-file crash.txt --top 10`,
	Run: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyTrace, "trace", "", "Stack trace text")
	classifyCmd.Flags().StringVar(&classifyTraceFile, "trace-file", "", "File containing the stack trace")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "json", "Output format (json, human)")
	classifyCmd.Flags().IntVar(&classifyTop, "top", 0, "Only show the N most relevant files (0 for all)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	rawTrace, err := readTraceInput(classifyTrace, classifyTraceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	files := mustScanRepo(repoRoot)

	tokens := trace.Tokenize(rawTrace)
	classified := classify.ClassifyAll(files, tokens)

	if classifyTop > 0 {
		classified = topByRelevance(classified, classifyTop)
	}

	output, err := FormatResponse(map[string]interface{}{
		"tokens":          tokens,
		"classifiedFiles": classified,
	}, OutputFormat(classifyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// topByRelevance returns the n highest-scoring files, keeping scan
// order among equal scores.
func topByRelevance(files []model.ClassifiedFile, n int) []model.ClassifiedFile {
	sorted := make([]model.ClassifiedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Relevance > sorted[j].Relevance
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
