// Copyright Immersive Collective, 2026. All rights reserved.

// Package index persists run results into a local SQLite database with
// full-text search over recognized text.
package index

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Immersive-Collective/signalocr/internal/report"
)

const dbFile = "signalocr.db"

// Store manages the run index SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the index database at indexDir/signalocr.db,
// creating the schema if it does not exist.
func NewStore(indexDir string) (*Store, error) {
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output_dir TEXT NOT NULL UNIQUE,
			input_dir TEXT,
			engine TEXT,
			created_at TEXT,
			manifest_mod_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			status TEXT NOT NULL,
			chars INTEGER,
			links INTEGER,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_images_run_id ON images(run_id)`,
		`CREATE TABLE IF NOT EXISTS urls (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			url TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_urls_run_id ON urls(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='images_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE images_fts USING fts5(text, content=images, content_rowid=rowid)`,
			`CREATE TRIGGER images_ai AFTER INSERT ON images BEGIN
				INSERT INTO images_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER images_ad AFTER DELETE ON images BEGIN
				INSERT INTO images_fts(images_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
			`CREATE TRIGGER images_au AFTER UPDATE ON images BEGIN
				INSERT INTO images_fts(images_fts, rowid, text) VALUES('delete', old.rowid, old.text);
				INSERT INTO images_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Ingest reads the run manifest and per-image text from outputDir and
// populates the database. A run whose manifest is unchanged since the
// last ingest is skipped; a changed run is replaced wholesale.
func (s *Store) Ingest(ctx context.Context, outputDir string, w io.Writer) error {
	m, err := report.LoadManifest(outputDir)
	if err != nil {
		return err
	}

	info, err := os.Stat(filepath.Join(outputDir, report.ManifestFile))
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT manifest_mod_time FROM runs WHERE output_dir = ?`, outputDir,
	).Scan(&storedModTime)
	if err == nil && storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", outputDir)
		return nil
	}

	refs, err := loadURLMap(outputDir)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace any previous ingest of the same output directory.
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE output_dir = ?`, outputDir); err != nil {
		return fmt.Errorf("deleting old run: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (output_dir, input_dir, engine, created_at, manifest_mod_time)
		 VALUES (?, ?, ?, ?, ?)`,
		outputDir, m.InputDir, m.Engine, m.CreatedAt.UTC().Format(time.RFC3339), modTime,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO images (run_id, file, status, chars, links, text) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, img := range m.Images {
		text, err := readImageText(outputDir, img.File)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", img.File, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, img.File, string(img.Status), img.Chars, img.Links, text); err != nil {
			return fmt.Errorf("inserting image %s: %w", img.File, err)
		}
	}

	urlStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO urls (run_id, file, url) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing url insert: %w", err)
	}
	defer urlStmt.Close()

	for _, ref := range refs {
		if _, err := urlStmt.ExecContext(ctx, runID, ref.file, ref.url); err != nil {
			return fmt.Errorf("inserting url %s: %w", ref.url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "indexed %s (%d images, %d urls)\n", outputDir, len(m.Images), len(refs))
	return nil
}

// readImageText loads the per-image artifact for one manifest entry.
// Missing text files index as empty rather than failing the ingest.
func readImageText(outputDir, file string) (string, error) {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	data, err := os.ReadFile(filepath.Join(outputDir, report.TxtDir, base+".txt"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

type urlRef struct {
	file string
	url  string
}

// loadURLMap parses the provenance CSV written by the run.
func loadURLMap(outputDir string) ([]urlRef, error) {
	f, err := os.Open(filepath.Join(outputDir, report.URLMapFile))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", report.URLMapFile, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", report.URLMapFile, err)
	}

	var refs []urlRef
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header
		}
		refs = append(refs, urlRef{file: row[0], url: row[1]})
	}
	return refs, nil
}
