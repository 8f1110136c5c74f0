// Copyright Immersive Collective, 2026. All rights reserved.

package types

import (
	"reflect"
	"testing"
)

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "two tags",
			in:   "en-US,pl-PL",
			want: []string{"en-US", "pl-PL"},
		},
		{
			name: "whitespace trimmed",
			in:   " en-US , de-DE ",
			want: []string{"en-US", "de-DE"},
		},
		{
			name: "empty entries dropped",
			in:   "en-US,,fr-FR,",
			want: []string{"en-US", "fr-FR"},
		},
		{
			name: "empty string falls back to defaults",
			in:   "",
			want: []string{"en-US", "pl-PL"},
		},
		{
			name: "only separators falls back to defaults",
			in:   " , ,",
			want: []string{"en-US", "pl-PL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLanguages(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLanguages(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLanguagesDoesNotAliasDefaults(t *testing.T) {
	got := ParseLanguages("")
	got[0] = "mutated"
	if DefaultLanguages[0] != "en-US" {
		t.Error("ParseLanguages must return a copy of DefaultLanguages")
	}
}
