// Copyright Immersive Collective, 2026. All rights reserved.

// Package report folds per-image records into combined documents and
// writes the run's artifacts.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Immersive-Collective/signalocr/pkg/types"
)

// Artifact file names inside the output directory.
const (
	MarkdownFile  = "all_text.md"
	PlainTextFile = "all_text.txt"
	URLsFile      = "urls.txt"
	URLMapFile    = "urls.csv"
	HTMLFile      = "all_text.html"
	ManifestFile  = "run.yaml"

	// TxtDir is the subdirectory holding per-image text files.
	TxtDir = "txt"
)

// sectionSep separates per-image sections in the combined documents.
const sectionSep = "\n\n---\n\n"

// Aggregate folds records into the combined view. Records must already be
// in file-name sort order; Aggregate never reorders them, so the caller
// controls the invariant that output order is independent of completion
// order.
func Aggregate(records []types.ImageRecord) *types.AggregateResult {
	res := &types.AggregateResult{
		PerImageCount:     len(records),
		CombinedMarkdown:  renderMarkdown(records),
		CombinedPlainText: renderPlainText(records),
	}

	seen := make(map[string]bool)
	for _, rec := range records {
		res.TotalCharacters += utf8.RuneCountInString(rec.RecognizedText)
		for _, u := range rec.URLs {
			res.URLMap = append(res.URLMap, types.URLRef{File: rec.FileName, URL: u})
			if !seen[u] {
				seen[u] = true
				res.DedupedURLs = append(res.DedupedURLs, u)
			}
		}
	}
	return res
}

// renderMarkdown builds the combined markdown document. Failed records
// render a visible note instead of being omitted, so every scanned image
// is accounted for.
func renderMarkdown(records []types.ImageRecord) string {
	sections := make([]string, 0, len(records))
	for _, rec := range records {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s\n\n", rec.FileName)
		if rec.Status == types.StatusFailed {
			b.WriteString("_no text extracted_\n")
		} else {
			fmt.Fprintf(&b, "```\n%s\n```\n", rec.RecognizedText)
			if len(rec.URLs) > 0 {
				b.WriteString("\n**Links detected:**\n")
				for _, u := range rec.URLs {
					fmt.Fprintf(&b, "- %s\n", u)
				}
			}
		}
		sections = append(sections, b.String())
	}
	return "# OCR Output\n\n" + strings.Join(sections, sectionSep) + "\n"
}

// renderPlainText builds the flat-text companion document.
func renderPlainText(records []types.ImageRecord) string {
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "=== %s ===\n", rec.FileName)
		if rec.RecognizedText != "" {
			b.WriteString(rec.RecognizedText)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteArtifacts persists the four combined artifacts. Any write error is
// returned immediately: a run that cannot persist its deliverable is
// fatal. An empty batch still produces all four files (header-only CSV).
func WriteArtifacts(outDir string, res *types.AggregateResult) error {
	if err := os.WriteFile(filepath.Join(outDir, MarkdownFile), []byte(res.CombinedMarkdown), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", MarkdownFile, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, PlainTextFile), []byte(res.CombinedPlainText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", PlainTextFile, err)
	}

	urls := strings.Join(res.DedupedURLs, "\n")
	if len(res.DedupedURLs) > 0 {
		urls += "\n"
	}
	if err := os.WriteFile(filepath.Join(outDir, URLsFile), []byte(urls), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", URLsFile, err)
	}

	if err := writeURLMap(filepath.Join(outDir, URLMapFile), res.URLMap); err != nil {
		return err
	}
	return nil
}

// writeURLMap writes the provenance CSV: header then one row per URL
// occurrence, not deduplicated. encoding/csv handles quoting.
func writeURLMap(path string, refs []types.URLRef) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", URLMapFile, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file", "url"}); err != nil {
		f.Close()
		return fmt.Errorf("writing %s header: %w", URLMapFile, err)
	}
	for _, ref := range refs {
		if err := w.Write([]string{ref.File, ref.URL}); err != nil {
			f.Close()
			return fmt.Errorf("writing %s row: %w", URLMapFile, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", URLMapFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", URLMapFile, err)
	}
	return nil
}
