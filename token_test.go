package goswipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	units := DefaultUnits()

	tests := []struct {
		name string
		in   []string
		want []Token
	}{
		{
			name: "pair then flag",
			in:   []string{"slides-per-view", "3", "loop"},
			want: []Token{
				{Kind: KeyValue, Key: "slides-per-view", Value: "3", HasValue: true, Pos: 0},
				{Kind: Flag, Key: "loop", Pos: 2},
			},
		},
		{
			name: "flag between pairs",
			in:   []string{"speed", "300", "autoplay", "md:slides-per-view", "2"},
			want: []Token{
				{Kind: KeyValue, Key: "speed", Value: "300", HasValue: true, Pos: 0},
				{Kind: Flag, Key: "autoplay", Pos: 2},
				{Kind: KeyValue, Key: "md:slides-per-view", Value: "2", HasValue: true, Pos: 3},
			},
		},
		{
			name: "trailing key",
			in:   []string{"loop", "speed"},
			want: []Token{
				{Kind: Flag, Key: "loop", Pos: 0},
				{Kind: KeyValue, Key: "speed", Pos: 1},
			},
		},
		{
			name: "unit name in value slot",
			in:   []string{"effect", "loop"},
			want: []Token{
				{Kind: KeyValue, Key: "effect", Value: "loop", HasValue: true, Pos: 0},
			},
		},
		{
			name: "scoped flag",
			in:   []string{"md:loop", "speed", "300"},
			want: []Token{
				{Kind: Flag, Key: "md:loop", Pos: 0},
				{Kind: KeyValue, Key: "speed", Value: "300", HasValue: true, Pos: 1},
			},
		},
		{
			name: "empty",
			in:   nil,
			want: []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Tokenize(tt.in, units)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
