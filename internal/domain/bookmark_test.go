package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty string",
			raw:  "",
			want: []string{},
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: []string{},
		},
		{
			name: "single tag",
			raw:  "reading",
			want: []string{"reading"},
		},
		{
			name: "trims around commas",
			raw:  " go , reading ,  later",
			want: []string{"go", "reading", "later"},
		},
		{
			name: "drops empty segments",
			raw:  "go,,reading,",
			want: []string{"go", "reading"},
		},
		{
			name: "dedupes case insensitively keeping first spelling",
			raw:  "Go,go,GO,reading",
			want: []string{"Go", "reading"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClampFollowUpDays(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "zero uses default", days: 0, want: DefaultFollowUpDays},
		{name: "below minimum", days: -5, want: MinFollowUpDays},
		{name: "at minimum", days: 1, want: 1},
		{name: "in range", days: 7, want: 7},
		{name: "at maximum", days: 30, want: 30},
		{name: "above maximum", days: 90, want: MaxFollowUpDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFollowUpDays(tt.days); got != tt.want {
				t.Errorf("ClampFollowUpDays(%d) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestParseRepeatType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RepeatType
	}{
		{name: "daily", input: "daily", want: RepeatDaily},
		{name: "weekly", input: "weekly", want: RepeatWeekly},
		{name: "none", input: "none", want: RepeatNone},
		{name: "mixed case", input: "Daily", want: RepeatDaily},
		{name: "surrounding spaces", input: " weekly ", want: RepeatWeekly},
		{name: "unknown degrades to none", input: "monthly", want: RepeatNone},
		{name: "empty", input: "", want: RepeatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRepeatType(tt.input); got != tt.want {
				t.Errorf("ParseRepeatType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
