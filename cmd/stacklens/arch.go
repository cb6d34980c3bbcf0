package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/arch"
	"stacklens/internal/scan"
)

var archFormat string

var archCmd = &cobra.Command{
	Use:   "arch",
	Short: "Detect the architecture pattern",
	Long: `Detect the repository's architecture pattern (layered, hexagonal,
clean architecture or MVC) with a confidence score, report the layer of
every file, and probe for Spring Boot configuration.

Examples:
  stacklens arch
  stacklens arch --repo ../shop --format=human`,
	Run: runArch,
}

func init() {
	archCmd.Flags().StringVar(&archFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(archCmd)
}

func runArch(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	files := mustScanRepo(repoRoot)

	detection := arch.DetectPattern(files)
	boot := scan.ProbeSpringBoot(repoRoot)

	layers := make([]map[string]string, 0, len(files))
	for _, f := range files {
		layers = append(layers, map[string]string{
			"path":  f.Path,
			"layer": string(arch.DetectLayer(f.Path, f.Content)),
		})
	}

	output, err := FormatResponse(map[string]interface{}{
		"pattern":    detection.Pattern,
		"confidence": detection.Confidence,
		"springBoot": boot,
		"files":      layers,
	}, OutputFormat(archFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
