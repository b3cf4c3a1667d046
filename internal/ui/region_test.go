package ui

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRegionClipsToWidth(t *testing.T) {
	region := NewRegion(10, 2)
	region.WriteLine(0, "short")
	region.WriteLine(1, "this line is far too long for the region")

	for i, line := range region.Lines() {
		if got := visualLength(line); got != 10 {
			t.Errorf("line %d display width = %d, want 10 (%q)", i, got, line)
		}
	}
}

// TestRegionNeverExceedsWidth feeds the region arbitrary text, styling
// escapes and wide runes included, at arbitrary rows: no emitted line may
// ever occupy more display columns than the region width.
func TestRegionNeverExceedsWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{
		"a", "B", "7", " ", "-", "─", "│", "▸", "中", "文",
		"/dev/sda1", "vg_data-lv_home",
		"\x1b[31m", "\x1b[0m", "\x1b[1;36m",
	}

	for trial := 0; trial < 1000; trial++ {
		width := rng.Intn(41)
		height := rng.Intn(5) + 1
		region := NewRegion(width, height)

		for n := rng.Intn(8); n > 0; n-- {
			var b strings.Builder
			for pieces := rng.Intn(20); pieces > 0; pieces-- {
				b.WriteString(pool[rng.Intn(len(pool))])
			}
			region.WriteLine(rng.Intn(height+4)-2, b.String())
		}

		for i, line := range region.Lines() {
			if got := visualLength(line); got > width {
				t.Fatalf("trial %d: width %d, line %d occupies %d columns (%q)",
					trial, width, i, got, line)
			}
		}
	}
}

func TestRegionDropsOutOfRangeRows(t *testing.T) {
	region := NewRegion(10, 2)
	region.WriteLine(-1, "above")
	region.WriteLine(2, "below")
	region.WriteLine(100, "way below")

	for i, line := range region.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Errorf("line %d = %q, want blank", i, line)
		}
	}
}

func TestRegionPadsShortLines(t *testing.T) {
	region := NewRegion(8, 3)
	region.WriteLine(1, "ab")

	lines := region.Lines()
	if lines[1] != "ab      " {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[0] != strings.Repeat(" ", 8) {
		t.Errorf("unwritten line = %q", lines[0])
	}
}

func TestRegionStyledTextMeasuresDisplayWidth(t *testing.T) {
	region := NewRegion(5, 1)
	// The escape sequences take no columns; the visible text fits.
	region.WriteLine(0, "\x1b[31mred\x1b[0m")

	line := region.Lines()[0]
	if got := visualLength(line); got != 5 {
		t.Errorf("display width = %d, want 5", got)
	}
	if !strings.Contains(line, "red") {
		t.Errorf("styled text lost: %q", line)
	}
}

func TestRegionDegenerateDimensions(t *testing.T) {
	region := NewRegion(-3, -1)
	region.WriteLine(0, "ignored")
	if region.Width() != 0 || region.Height() != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", region.Width(), region.Height())
	}
	if region.Render() != "" {
		t.Errorf("Render() = %q, want empty", region.Render())
	}
}

func TestJoinHorizontal(t *testing.T) {
	left := NewRegion(4, 2)
	right := NewRegion(3, 2)
	left.WriteLine(0, "aa")
	right.WriteLine(1, "bb")

	joined := JoinHorizontal(left, right)
	rows := strings.Split(joined, "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0] != "aa  │   " {
		t.Errorf("row 0 = %q", rows[0])
	}
	if rows[1] != "    │bb " {
		t.Errorf("row 1 = %q", rows[1])
	}
}
