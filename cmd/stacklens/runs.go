package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/storage"
)

var (
	runsFormat string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted analysis runs",
	Long: `List analysis runs saved with 'stacklens analyze --persist'.

Examples:
  stacklens runs
  stacklens runs --limit 10`,
	Run: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one persisted run with its classified files",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

func init() {
	runsCmd.Flags().StringVar(&runsFormat, "format", "json", "Output format (json, human)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 0, "Only show the most recent N runs (0 for all)")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRunStore() *storage.Store {
	repoRoot := mustGetRepoRoot()
	store, err := storage.Open(repoRoot, newLogger(runsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runRunsList(cmd *cobra.Command, args []string) {
	store := openRunStore()
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(runsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(runs, OutputFormat(runsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runRunsShow(cmd *cobra.Command, args []string) {
	store := openRunStore()
	defer func() { _ = store.Close() }()

	run, files, err := store.GetRun(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(map[string]interface{}{
		"run":   run,
		"files": files,
	}, OutputFormat(runsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
