package ui

import (
	"testing"

	"github.com/yourusername/lvm-browser/internal/model"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{model.SizeUnknown, "N/A"},
		{-5, "N/A"},
		{0, "0 B"},
		{512, "512 B"},
		{1 << 10, "1.0 KiB"},
		{1 << 30, "1.0 GiB"},
		{100 << 30, "100 GiB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatExtents(t *testing.T) {
	if got := FormatExtents(model.SizeUnknown); got != "N/A" {
		t.Errorf("FormatExtents(unknown) = %q", got)
	}
	if got := FormatExtents(10000); got != "10000" {
		t.Errorf("FormatExtents(10000) = %q", got)
	}
}

func TestVisualLength(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"\x1b[31mhello\x1b[0m", 5},
		// CJK runes occupy two columns each.
		{"中文", 4},
	}
	for _, tt := range tests {
		if got := visualLength(tt.input); got != tt.want {
			t.Errorf("visualLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	got := truncate("a very long device description", 10)
	if visualLength(got) > 10 {
		t.Errorf("truncate(%q) width = %d", got, visualLength(got))
	}
	if got != "a very ..." {
		t.Errorf("truncate = %q", got)
	}
	// Tight limits skip the ellipsis.
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("tight truncate = %q", got)
	}
}
