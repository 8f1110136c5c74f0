// Copyright Immersive Collective, 2026. All rights reserved.

// Package extract pulls URLs out of recognized text.
package extract

import (
	"regexp"
	"strings"
)

// urlPattern matches http(s)-prefixed tokens and bare www. hosts, running
// to the next whitespace, quote, or angle bracket. Balanced parentheses
// are allowed inside the match so wiki-style links survive; an unmatched
// closing parenthesis ends the URL. Trailing sentence punctuation is
// stripped afterwards rather than excluded here, since dots and slashes
// are legitimate URL interior characters.
var urlPattern = regexp.MustCompile(`(?i)\b((?:https?://|www\.)[^\s<>"'()]+(?:\([^\s<>"']*\)[^\s<>"']*)*)`)

// trailingPunct are characters stripped from the end of a match. OCR text
// frequently runs a URL straight into sentence punctuation.
const trailingPunct = ".,;:!)?]"

// URLs returns every URL found in text, in appearance order. Duplicates
// are preserved; deduplication is an aggregation-scope concern. Matches
// starting with "www." are normalized to an "http://" prefix so every
// returned entry is a fetchable URL.
func URLs(text string) []string {
	var urls []string
	for _, m := range urlPattern.FindAllStringSubmatch(text, -1) {
		u := strings.TrimRight(m[1], trailingPunct)
		if u == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(u), "www.") {
			u = "http://" + u
		}
		urls = append(urls, u)
	}
	return urls
}
