package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stacklens/internal/config"
	"stacklens/internal/extract"
	"stacklens/internal/features"
	"stacklens/internal/logging"
	"stacklens/internal/model"
	"stacklens/internal/scan"
)

// getRepoRoot returns the repository root directory.
func getRepoRoot() (string, error) {
	if repoFlag != "" {
		return filepath.Abs(repoFlag)
	}
	return os.Getwd()
}

// mustGetRepoRoot returns the repository root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger with the specified format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}

// mustLoadConfig loads the repository config or exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustScanRepo walks the repository for Java sources or exits on error.
func mustScanRepo(repoRoot string) []model.SourceFile {
	cfg := mustLoadConfig(repoRoot)
	files, err := scan.JavaFilesWithOptions(repoRoot, scan.Options{
		MaxFileSize: int64(cfg.Scan.MaxFileSizeBytes),
		IgnoreDirs:  cfg.Scan.IgnoreDirs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning repository: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No Java files found under %s\n", repoRoot)
		os.Exit(1)
	}
	return files
}

// extractRecords produces declaration records for the files. A SCIP
// index is used when configured and present; otherwise tree-sitter.
func extractRecords(ctx context.Context, repoRoot string, cfg *config.Config, files []model.SourceFile, logger *logging.Logger) []features.FileRecord {
	if cfg.Extract.PreferScip {
		indexPath := cfg.Extract.ScipIndexPath
		if !filepath.IsAbs(indexPath) {
			indexPath = filepath.Join(repoRoot, indexPath)
		}
		index, err := extract.LoadSCIPIndex(indexPath)
		if err == nil {
			logger.Debug("Using SCIP index", map[string]interface{}{
				"path": indexPath,
			})
			return extract.SCIPRecords(index)
		}
		logger.Warn("SCIP index unavailable, falling back to tree-sitter", map[string]interface{}{
			"path":  indexPath,
			"error": err.Error(),
		})
	}

	if !extract.IsAvailable() {
		logger.Warn("Built without CGO, declaration extraction disabled", nil)
	}
	return extract.NewExtractor().ExtractAll(ctx, files)
}

// readTraceInput resolves the stack trace from a flag value or a file.
func readTraceInput(traceText, traceFile string) (string, error) {
	if traceText != "" {
		return traceText, nil
	}
	if traceFile == "" {
		return "", fmt.Errorf("a stack trace is required: pass --trace or --trace-file")
	}
	data, err := os.ReadFile(traceFile)
	if err != nil {
		return "", fmt.Errorf("reading trace file: %w", err)
	}
	return string(data), nil
}
