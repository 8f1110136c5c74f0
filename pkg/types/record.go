// Copyright Immersive Collective, 2026. All rights reserved.

// Package types defines the shared data model for the signalocr pipeline.
package types

// RecordStatus is the outcome of processing a single image.
type RecordStatus string

const (
	// StatusOK means recognition produced a text result (possibly empty).
	StatusOK RecordStatus = "ok"

	// StatusFailed means the OCR engine could not process the image.
	// Failed records are kept so combined output coverage stays auditable.
	StatusFailed RecordStatus = "failed"
)

// ImageRecord holds the recognition result for one input image. Records are
// created once by the run driver and never mutated afterwards.
type ImageRecord struct {
	// FileName is the base name of the input image (e.g. "shot-01.png").
	FileName string `json:"file_name" yaml:"file_name"`

	// RecognizedText is the linearized OCR output with line breaks
	// preserved. Empty for failed records and for images with no text.
	RecognizedText string `json:"recognized_text" yaml:"recognized_text"`

	// URLs are the links found in RecognizedText, in appearance order.
	// Duplicates within one image are preserved here; global
	// deduplication happens at aggregation time.
	URLs []string `json:"urls,omitempty" yaml:"urls,omitempty"`

	// Status reports whether recognition succeeded.
	Status RecordStatus `json:"status" yaml:"status"`
}

// URLRef ties one discovered URL to the image it came from. The URL map is
// a provenance log, so the same URL found in two files yields two entries.
type URLRef struct {
	File string `json:"file" yaml:"file"`
	URL  string `json:"url" yaml:"url"`
}

// AggregateResult is the finalized view over one run's image records.
type AggregateResult struct {
	// PerImageCount is the number of records folded in.
	PerImageCount int

	// TotalCharacters sums the recognized text length over all records.
	TotalCharacters int

	// CombinedMarkdown is the full markdown document spanning all images.
	CombinedMarkdown string

	// CombinedPlainText is the flat-text rendition of the same content.
	CombinedPlainText string

	// DedupedURLs holds every distinct URL in first-seen order, folding
	// records in file-sort order then per-record appearance order. Exact
	// string equality is the dedup key.
	DedupedURLs []string

	// URLMap holds every (file, url) occurrence before deduplication.
	URLMap []URLRef
}
