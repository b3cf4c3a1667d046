package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/yourusername/lvm-browser/internal/model"
)

// Color scheme
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#00D9FF")
	ColorSecondary = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorDanger    = lipgloss.Color("#EF4444")

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#9CA3AF")
	ColorTextMuted     = lipgloss.Color("#6B7280")

	// Background colors
	ColorBgSecondary = lipgloss.Color("#374151")
	ColorBgHover     = lipgloss.Color("#4B5563")
)

// Common styles
var (
	// Title style
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Subtitle style
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Italic(true)

	// Panel title in the focused panel
	StylePanelFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	// Panel title in unfocused panels
	StylePanelBlurred = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextMuted)

	// Column header style
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// Key binding styles
	StyleKey = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleKeyDesc = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	// Error style
	StyleError = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	// Warning style
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleTextSecondary = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Selection style (for highlighting selected row in lists)
	StyleSelected = lipgloss.NewStyle().
			Background(ColorBgHover).
			Foreground(ColorPrimary).
			Bold(true)
)

// FormatSize formats a byte count with binary units, or "N/A" when the
// size could not be determined.
func FormatSize(bytes int64) string {
	if bytes == model.SizeUnknown {
		return "N/A"
	}
	if bytes < 0 {
		return "N/A"
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatExtents formats an extent count, or "N/A" when unknown.
func FormatExtents(count int64) string {
	if count == model.SizeUnknown || count < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", count)
}

// RenderKeyBinding renders a key binding help text
func RenderKeyBinding(key, desc string) string {
	return fmt.Sprintf("%s %s", StyleKey.Render(key), StyleKeyDesc.Render(desc))
}

// ansiRegex matches ANSI color codes
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI color codes from a string
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// visualLength returns the visual length of a string (excluding ANSI codes)
// Correctly handles wide characters (e.g., Chinese, Japanese, Korean)
func visualLength(s string) int {
	stripped := stripANSI(s)
	return runewidth.StringWidth(stripped)
}

// padRight pads a string to the specified width (handling ANSI codes correctly)
func padRight(s string, width int) string {
	vlen := visualLength(s)
	if vlen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vlen)
}

// truncate truncates a string to maxLen display width, adding "..." if truncated
// Correctly handles wide characters (e.g., Chinese, Japanese, Korean)
func truncate(s string, maxLen int) string {
	stripped := stripANSI(s)
	width := runewidth.StringWidth(stripped)

	if width <= maxLen {
		return s
	}

	if maxLen <= 3 {
		// Just truncate without ellipsis for very short limits
		return runewidth.Truncate(s, maxLen, "")
	}

	return runewidth.Truncate(stripped, maxLen-3, "") + "..."
}

// renderSeparator returns a horizontal separator line of the given width
func renderSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return strings.Repeat("─", width)
}
