// Package scan walks repositories on disk and loads Java sources for
// analysis.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stacklens/internal/model"
)

// MaxFileSize caps how much of a single source file is loaded.
// Anything larger is skipped entirely.
const MaxFileSize = 5 * 1024 * 1024

// defaultSkipDirs are directory names never descended into.
var defaultSkipDirs = []string{"target", "build", "out", "node_modules", "vendor"}

// Options tunes the walk. Zero values fall back to the defaults.
type Options struct {
	MaxFileSize int64
	IgnoreDirs  []string
}

// JavaFiles walks root with default options.
func JavaFiles(root string) ([]model.SourceFile, error) {
	return JavaFilesWithOptions(root, Options{})
}

// JavaFilesWithOptions walks root and returns every .java file as a
// SourceFile, in lexical walk order. Hidden directories, ignored
// directories and oversized files are skipped; unreadable files are
// skipped rather than failing the walk.
func JavaFilesWithOptions(root string, opts Options) ([]model.SourceFile, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	ignore := opts.IgnoreDirs
	if len(ignore) == 0 {
		ignore = defaultSkipDirs
	}
	skip := make(map[string]bool, len(ignore))
	for _, dir := range ignore {
		skip[dir] = true
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var files []model.SourceFile

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || skip[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), ".java") {
			return nil
		}
		if info.Size() > maxSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		files = append(files, model.SourceFile{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return files, nil
}
