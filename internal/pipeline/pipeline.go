// Copyright Immersive Collective, 2026. All rights reserved.

// Package pipeline drives a batch run: discover images, recognize each
// one through an OCR engine, and fold the records into combined
// artifacts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Immersive-Collective/signalocr/internal/engine"
	"github.com/Immersive-Collective/signalocr/internal/extract"
	"github.com/Immersive-Collective/signalocr/internal/report"
	"github.com/Immersive-Collective/signalocr/internal/scan"
	"github.com/Immersive-Collective/signalocr/pkg/types"
)

// RunSummary holds the outcome of one batch run.
type RunSummary struct {
	Processed int
	Failed    int
	URLs      int
	OutputDir string
}

// Total returns the number of candidate images seen.
func (s RunSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any image failed recognition. Per-image
// failures never fail the run; callers use this for the summary only.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// ProcessImage recognizes a single image and writes its per-image text
// artifact to txtDir. Engine failures yield a failed record with empty
// text; they are logged, never escalated.
func ProcessImage(ctx context.Context, eng engine.Engine, path string, langs []string, txtDir string) types.ImageRecord {
	fileName := filepath.Base(path)
	rec := types.ImageRecord{FileName: fileName, Status: types.StatusOK}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("OCR failed for %s: %v", fileName, err)
		rec.Status = types.StatusFailed
	} else {
		res, err := eng.Recognize(ctx, engine.Input{
			ID:        fileName,
			Image:     data,
			Languages: langs,
		})
		if err != nil {
			logrus.Warnf("OCR failed for %s: %v", fileName, err)
			rec.Status = types.StatusFailed
		} else {
			rec.RecognizedText = res.PlainText
			rec.URLs = extract.URLs(res.PlainText)
		}
	}

	// The per-image artifact is written even when empty so every scanned
	// image has an addressable result file.
	txtPath := filepath.Join(txtDir, baseName(fileName)+".txt")
	if err := os.WriteFile(txtPath, []byte(rec.RecognizedText), 0o644); err != nil {
		// Recognition already succeeded; the text still flows into the
		// combined artifacts, so this stays a per-image diagnostic.
		logrus.Warnf("writing %s: %v", txtPath, err)
	}

	return rec
}

// Run executes one batch: scan, recognize, aggregate, persist. Per-image
// status lines and the final summary block go to w. The input directory
// is validated before any output is created, and the combined artifacts
// are all-or-nothing: a cancelled context aborts before any of them is
// written.
func Run(ctx context.Context, eng engine.Engine, cfg types.RunConfig, w io.Writer) (*RunSummary, error) {
	paths, err := scan.ListImages(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	txtDir := filepath.Join(cfg.OutputDir, report.TxtDir)
	if err := os.MkdirAll(txtDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	langs := cfg.Languages
	if len(langs) == 0 {
		langs = types.DefaultLanguages
	}

	records, err := processAll(ctx, eng, cfg, paths, langs, txtDir)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{OutputDir: cfg.OutputDir}
	manifest := &report.Manifest{
		CreatedAt: time.Now().UTC(),
		InputDir:  cfg.InputDir,
		Languages: langs,
		Engine:    eng.Name(),
	}

	for _, rec := range records {
		chars := utf8.RuneCountInString(rec.RecognizedText)
		txtPath := filepath.Join(txtDir, baseName(rec.FileName)+".txt")
		fmt.Fprintf(w, "OCR: %s -> %s (%d chars, %d links)\n",
			rec.FileName, txtPath, chars, len(rec.URLs))

		if rec.Status == types.StatusFailed {
			summary.Failed++
		} else {
			summary.Processed++
		}
		manifest.Images = append(manifest.Images, report.ManifestImage{
			File:   rec.FileName,
			Status: rec.Status,
			Chars:  chars,
			Links:  len(rec.URLs),
		})
	}

	result := report.Aggregate(records)
	summary.URLs = len(result.DedupedURLs)

	// Abort check before the combined artifacts: per-image text files may
	// remain after a cancelled run, the combined outputs may not.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := report.WriteArtifacts(cfg.OutputDir, result); err != nil {
		return nil, err
	}
	if cfg.WriteHTML {
		if err := report.WriteHTML(cfg.OutputDir, result.CombinedMarkdown); err != nil {
			return nil, err
		}
	}
	if err := report.WriteManifest(cfg.OutputDir, manifest); err != nil {
		return nil, err
	}

	writeSummaryBlock(w, summary, cfg.OutputDir, txtDir)
	return summary, nil
}

// processAll recognizes every image, sequentially or with a bounded
// worker pool. Results land in a slice indexed by scan position, so the
// fold order is always file-sort order regardless of completion order.
func processAll(ctx context.Context, eng engine.Engine, cfg types.RunConfig, paths, langs []string, txtDir string) ([]types.ImageRecord, error) {
	records := make([]types.ImageRecord, len(paths))

	if cfg.Concurrency > 1 {
		sem := make(chan struct{}, cfg.Concurrency)
		var wg sync.WaitGroup
		for i, path := range paths {
			sem <- struct{}{}
			wg.Add(1)
			go func(i int, path string) {
				defer func() { <-sem }()
				defer wg.Done()
				records[i] = ProcessImage(ctx, eng, path, langs, txtDir)
			}(i, path)
		}
		wg.Wait()
	} else {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			records[i] = ProcessImage(ctx, eng, path, langs, txtDir)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// writeSummaryBlock prints the closing block listing counts and artifact
// paths.
func writeSummaryBlock(w io.Writer, s *RunSummary, outDir, txtDir string) {
	fmt.Fprintf(w, "\nDone.\n")
	fmt.Fprintf(w, "- Images: %d (%d ok, %d failed)\n", s.Total(), s.Processed, s.Failed)
	fmt.Fprintf(w, "- Per-image text: %s\n", txtDir)
	fmt.Fprintf(w, "- Combined markdown: %s\n", filepath.Join(outDir, report.MarkdownFile))
	fmt.Fprintf(w, "- Combined text: %s\n", filepath.Join(outDir, report.PlainTextFile))
	fmt.Fprintf(w, "- URLs (dedup): %s\n", filepath.Join(outDir, report.URLsFile))
	fmt.Fprintf(w, "- URL map CSV: %s\n", filepath.Join(outDir, report.URLMapFile))
}

// baseName strips the extension from a file name.
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
