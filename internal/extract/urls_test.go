// Copyright Immersive Collective, 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"
)

func TestURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain http url",
			text: "Visit http://example.com now",
			want: []string{"http://example.com"},
		},
		{
			name: "https with path and query",
			text: "see https://example.com/a/b?q=1&r=2 for details",
			want: []string{"https://example.com/a/b?q=1&r=2"},
		},
		{
			name: "trailing sentence punctuation stripped",
			text: "Go to http://example.com/page.",
			want: []string{"http://example.com/page"},
		},
		{
			name: "comma and question mark stripped",
			text: "http://a.com, maybe http://b.com/x?",
			want: []string{"http://a.com", "http://b.com/x"},
		},
		{
			name: "surrounding parentheses excluded",
			text: "(http://example.com)",
			want: []string{"http://example.com"},
		},
		{
			name: "balanced parens inside url kept",
			text: "https://en.wikipedia.org/wiki/Go_(programming_language) rocks",
			want: []string{"https://en.wikipedia.org/wiki/Go_(programming_language)"},
		},
		{
			name: "bare www normalized to http",
			text: "check www.example.org today",
			want: []string{"http://www.example.org"},
		},
		{
			name: "brackets stripped",
			text: "[http://example.com]",
			want: []string{"http://example.com"},
		},
		{
			name: "duplicates preserved in appearance order",
			text: "http://x.com then http://y.com then http://x.com",
			want: []string{"http://x.com", "http://y.com", "http://x.com"},
		},
		{
			name: "multiline ocr text",
			text: "line one\nhttp://a.com\nline three https://b.com\n",
			want: []string{"http://a.com", "https://b.com"},
		},
		{
			name: "no urls",
			text: "nothing to see here",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "scheme case preserved",
			text: "HTTPS://Example.COM/Path",
			want: []string{"HTTPS://Example.COM/Path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URLs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("URLs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
