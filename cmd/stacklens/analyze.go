package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stacklens/internal/analyzer"
	"stacklens/internal/backend"
	"stacklens/internal/storage"
)

var (
	analyzeTrace     string
	analyzeTraceFile string
	analyzeFormat    string
	analyzePersist   bool
	analyzeSend      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full triage pipeline on a repository",
	Long: `Run the complete pipeline: scan Java sources, extract structural
features, tokenize the stack trace, classify and score every file, and
assemble the analysis payload.

Examples:
  stacklens analyze --trace "NullPointerException at UserService.process"
  stacklens analyze --trace-file crash.txt --format=human
  stacklens analyze --trace-file crash.txt --persist
  stacklens analyze --trace-file crash.txt --send`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTrace, "trace", "", "Stack trace text")
	analyzeCmd.Flags().StringVar(&analyzeTraceFile, "trace-file", "", "File containing the stack trace")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzePersist, "persist", false, "Save the run to the local runs database")
	analyzeCmd.Flags().BoolVar(&analyzeSend, "send", false, "Send the payload to the configured triage backend")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(analyzeFormat)

	rawTrace, err := readTraceInput(analyzeTrace, analyzeTraceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	ctx := newContext()

	files := mustScanRepo(repoRoot)
	records := extractRecords(ctx, repoRoot, cfg, files, logger)

	payload, err := analyzer.Analyze(rawTrace, files, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing repository: %v\n", err)
		os.Exit(1)
	}

	if analyzePersist {
		store, err := storage.Open(repoRoot, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()

		id, err := store.SaveRun(repoRoot, payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", id)
	}

	if analyzeSend {
		client := backend.NewClient(cfg.Backend.URL,
			time.Duration(cfg.Backend.TimeoutMs)*time.Millisecond, logger)
		resp, err := client.Analyze(ctx, payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error from triage backend: %v\n", err)
			os.Exit(1)
		}
		output, err := FormatResponse(resp, OutputFormat(analyzeFormat))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
		return
	}

	output, err := FormatResponse(payload, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	logger.Debug("Analysis completed", map[string]interface{}{
		"files":      len(files),
		"durationMs": time.Since(start).Milliseconds(),
	})
}
