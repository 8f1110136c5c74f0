// Copyright Immersive Collective, 2026. All rights reserved.

package tesseract

import "strings"

// tessdataNames maps ISO 639-1 primary subtags to Tesseract traineddata
// names. The pipeline's language hints are BCP-47 tags; Tesseract wants
// its own three-letter identifiers.
var tessdataNames = map[string]string{
	"en": "eng",
	"pl": "pol",
	"de": "deu",
	"fr": "fra",
	"es": "spa",
	"it": "ita",
	"pt": "por",
	"nl": "nld",
	"ru": "rus",
	"uk": "ukr",
	"cs": "ces",
	"sk": "slk",
	"sv": "swe",
	"da": "dan",
	"fi": "fin",
	"ja": "jpn",
	"ko": "kor",
	"zh": "chi_sim",
}

// TessdataLanguages converts BCP-47 hints to tessdata names, preserving
// order and dropping duplicates. Unmapped tags pass through as their
// lowercased primary subtag so callers with custom traineddata still work.
func TessdataLanguages(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		base := strings.ToLower(tag)
		if i := strings.IndexAny(base, "-_"); i > 0 {
			base = base[:i]
		}
		if base == "" {
			continue
		}
		name, ok := tessdataNames[base]
		if !ok {
			name = base
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
