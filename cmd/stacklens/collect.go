package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stacklens/internal/collect"
)

var (
	collectToken  string
	collectOutput string
	collectTarget int
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Harvest Spring repositories from GitHub",
	Long: `Search GitHub for Spring Boot repositories and shallow-clone them
into a corpus directory. A GitHub token is required; pass --token or set
GITHUB_TOKEN.

Examples:
  stacklens collect --target 50
  GITHUB_TOKEN=... stacklens collect --output corpus`,
	Run: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectToken, "token", "", "GitHub API token (default: GITHUB_TOKEN env)")
	collectCmd.Flags().StringVar(&collectOutput, "output", "", "Corpus directory (default from config)")
	collectCmd.Flags().IntVar(&collectTarget, "target", 0, "Stop after this many repositories (default from config)")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) {
	logger := newLogger("human")

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	token := collectToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	outputDir := collectOutput
	if outputDir == "" {
		outputDir = cfg.Collect.OutputDir
	}
	target := collectTarget
	if target <= 0 {
		target = cfg.Collect.MaxRepos
	}

	collector, err := collect.NewCollector(collect.Options{
		Token:       token,
		OutputDir:   outputDir,
		TargetCount: target,
		Queries:     cfg.Collect.Queries,
		YearWindows: cfg.Collect.YearWindows,
		PerPage:     cfg.Collect.PerPage,
		MaxPages:    cfg.Collect.MaxPages,
		Backoff:     time.Duration(cfg.Collect.BackoffMs) * time.Millisecond,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cloned, err := collector.Run(newContext())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting repositories: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cloned %d repositories into %s\n", cloned, outputDir)
}
