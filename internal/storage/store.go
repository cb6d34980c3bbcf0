// Package storage persists analysis runs in a SQLite database under
// the stacklens data directory.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stacklens/internal/logging"
	"stacklens/internal/model"
)

// DataDirName is the per-repository stacklens data directory.
const DataDirName = ".stacklens"

// Store provides persistence for analysis runs.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Run is one persisted analysis run.
type Run struct {
	ID                  string    `json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	RepoRoot            string    `json:"repoRoot"`
	ArchitecturePattern string    `json:"architecturePattern"`
	Loc                 int       `json:"loc"`
	Methods             int       `json:"methods"`
	Classes             int       `json:"classes"`
	Imports             int       `json:"imports"`
	Annotations         int       `json:"annotations"`
	FileCount           int       `json:"fileCount"`
	RawStackTrace       string    `json:"rawStackTrace"`
}

// RunFile is one classified file belonging to a persisted run.
type RunFile struct {
	Path      string         `json:"path"`
	Category  model.Category `json:"category"`
	Relevance int            `json:"relevance"`
}

// Open opens or creates the runs database at <root>/.stacklens/runs.db.
func Open(root string, logger *logging.Logger) (*Store, error) {
	dir := filepath.Join(root, DataDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s directory: %w", DataDirName, err)
	}

	dbPath := filepath.Join(dir, "runs.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open runs database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize runs schema: %w", err)
	}

	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			repo_root TEXT NOT NULL,
			architecture_pattern TEXT NOT NULL,
			loc INTEGER NOT NULL,
			methods INTEGER NOT NULL,
			classes INTEGER NOT NULL,
			imports INTEGER NOT NULL,
			annotations INTEGER NOT NULL,
			file_count INTEGER NOT NULL,
			raw_stack_trace TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_files (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			category TEXT NOT NULL,
			relevance INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// DB exposes the underlying connection so other stores, like the API
// key store, can share the same database file.
func (s *Store) DB() *sql.DB {
	return s.conn
}

// SaveRun persists a payload and returns the new run's ID. Classified
// files are stored without content; position preserves payload order.
func (s *Store) SaveRun(repoRoot string, payload *model.AnalysisPayload) (string, error) {
	if payload == nil || payload.FeatureModel == nil {
		return "", fmt.Errorf("save run: payload is incomplete")
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fm := payload.FeatureModel
	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, repo_root, architecture_pattern,
			loc, methods, classes, imports, annotations, file_count, raw_stack_trace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now, repoRoot, fm.ArchitecturePattern,
		fm.Loc, fm.Methods, fm.Classes, fm.Imports, fm.Annotations,
		len(payload.ClassifiedFiles), payload.RawStackTrace,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, cf := range payload.ClassifiedFiles {
		_, err = tx.Exec(`
			INSERT INTO run_files (run_id, position, path, category, relevance)
			VALUES (?, ?, ?, ?, ?)`,
			id, i, cf.Path, string(cf.Category), cf.Relevance,
		)
		if err != nil {
			return "", fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Saved analysis run", map[string]interface{}{
			"id":    id,
			"files": len(payload.ClassifiedFiles),
		})
	}

	return id, nil
}

// ListRuns returns runs newest first, up to limit (0 for all).
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, repo_root, architecture_pattern,
			loc, methods, classes, imports, annotations, file_count, raw_stack_trace
		FROM runs ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run and its classified files in stored order.
func (s *Store) GetRun(id string) (*Run, []RunFile, error) {
	row := s.conn.QueryRow(`
		SELECT id, created_at, repo_root, architecture_pattern,
			loc, methods, classes, imports, annotations, file_count, raw_stack_trace
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.conn.Query(`
		SELECT path, category, relevance FROM run_files
		WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []RunFile
	for rows.Next() {
		var f RunFile
		var category string
		if err := rows.Scan(&f.Path, &category, &f.Relevance); err != nil {
			return nil, nil, fmt.Errorf("scan run file: %w", err)
		}
		f.Category = model.Category(category)
		files = append(files, f)
	}

	return &run, files, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(&run.ID, &createdAt, &run.RepoRoot, &run.ArchitecturePattern,
		&run.Loc, &run.Methods, &run.Classes, &run.Imports, &run.Annotations,
		&run.FileCount, &run.RawStackTrace)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return run, nil
}
