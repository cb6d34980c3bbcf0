package main

import (
	"stacklens/internal/version"

	"github.com/spf13/cobra"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string
)

var rootCmd = &cobra.Command{
	Use:   "stacklens",
	Short: "stacklens - Spring codebase triage analyzer",
	Long: `stacklens extracts structural features from Java codebases, classifies
files by their Spring role, and matches stack traces against the code that
most likely produced them. It powers editor plugins and CI checks through
a CLI and a local HTTP API.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("stacklens version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "",
		"Repository root to analyze (default: current directory)")
}
