// Copyright Immersive Collective, 2026. All rights reserved.

package types

import "strings"

// DefaultLanguages is the recognition-language hint used when the caller
// provides none.
var DefaultLanguages = []string{"en-US", "pl-PL"}

// RunConfig carries everything one batch run needs. It replaces any
// process-wide state: each component receives the config explicitly.
type RunConfig struct {
	// InputDir is the directory scanned for images.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives per-image text files and combined artifacts.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Languages are BCP-47 recognition hints passed through to the OCR
	// engine (e.g. "en-US", "pl-PL").
	Languages []string `json:"languages" yaml:"languages"`

	// Concurrency is the number of images recognized in parallel.
	// Values below 2 mean sequential processing.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// WriteHTML additionally renders the combined markdown to
	// all_text.html.
	WriteHTML bool `json:"write_html" yaml:"write_html"`

	// IndexDir, when set, is the directory holding the search index the
	// run is ingested into after artifacts are written.
	IndexDir string `json:"index_dir,omitempty" yaml:"index_dir,omitempty"`
}

// ParseLanguages splits a comma-separated language list, trimming
// whitespace and dropping empty entries. Tag syntax is not validated; the
// list is an opaque hint for the OCR engine. An empty result falls back to
// DefaultLanguages.
func ParseLanguages(s string) []string {
	var langs []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			langs = append(langs, t)
		}
	}
	if len(langs) == 0 {
		return append([]string(nil), DefaultLanguages...)
	}
	return langs
}
