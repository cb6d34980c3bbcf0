package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/config"
)

var initOverlay bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize stacklens configuration for a repository",
	Long: `Write the default configuration to .stacklens/config.json. With
--overlay, also write a committable .stacklens.toml overlay at the repo
root.

Examples:
  stacklens init
  stacklens init --overlay`,
	Run: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initOverlay, "overlay", false, "Also write a .stacklens.toml overlay")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	cfg := config.DefaultConfig()
	cfg.RepoRoot = repoRoot

	if err := cfg.Save(repoRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Wrote .stacklens/config.json")

	if initOverlay {
		path, err := config.WriteOverlay(repoRoot, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing overlay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
