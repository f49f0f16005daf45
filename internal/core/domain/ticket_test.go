package domain

import (
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "printer on fire", "printer on fire"},
		{"exact boundary", strings.Repeat("a", 32), strings.Repeat("a", 32)},
		{"truncated", strings.Repeat("a", 33), strings.Repeat("a", 32) + "..."},
		{"multibyte", strings.Repeat("ü", 40), strings.Repeat("ü", 32) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.in); got != tt.want {
				t.Fatalf("Summarize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
