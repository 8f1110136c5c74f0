// Copyright Immersive Collective, 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
)

// SearchResult is one full-text match over indexed recognized text.
type SearchResult struct {
	File      string `json:"file"`
	OutputDir string `json:"output_dir"`
	Snippet   string `json:"snippet"`
}

// defaultLimit bounds result sets when the caller passes no limit.
const defaultLimit = 20

// Search runs an FTS5 match over recognized text and returns ranked
// results with a highlighted snippet.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT i.file, r.output_dir,
		        snippet(images_fts, 0, '[', ']', '…', 12)
		 FROM images_fts
		 JOIN images i ON i.rowid = images_fts.rowid
		 JOIN runs r ON r.id = i.run_id
		 WHERE images_fts MATCH ?
		 ORDER BY bm25(images_fts)
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.File, &r.OutputDir, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// URLRow is one recorded URL occurrence.
type URLRow struct {
	File string `json:"file"`
	URL  string `json:"url"`
}

// URLs lists recorded URL occurrences, optionally filtered to URLs
// containing the given substring. Rows come back in insertion order, so
// provenance order survives the round trip.
func (s *Store) URLs(ctx context.Context, contains string) ([]URLRow, error) {
	q := `SELECT file, url FROM urls`
	args := []any{}
	if contains != "" {
		q += ` WHERE url LIKE ?`
		args = append(args, "%"+contains+"%")
	}
	q += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying urls: %w", err)
	}
	defer rows.Close()

	var out []URLRow
	for rows.Next() {
		var r URLRow
		if err := rows.Scan(&r.File, &r.URL); err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
