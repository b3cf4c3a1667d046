package ui

import "strings"

// Region is a fixed-size text area that panels draw into. Writes outside
// the region are dropped and every line is clipped to the region width,
// so a panel can never spill into its neighbours however much content it
// has. Widths are display widths, so ANSI escapes and wide runes are
// measured correctly.
type Region struct {
	width  int
	height int
	lines  []string
}

// NewRegion creates an empty region of the given dimensions. Non-positive
// dimensions yield a region that silently swallows all writes.
func NewRegion(width, height int) *Region {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Region{
		width:  width,
		height: height,
		lines:  make([]string, height),
	}
}

// Width returns the region width in display columns.
func (r *Region) Width() int { return r.width }

// Height returns the region height in rows.
func (r *Region) Height() int { return r.height }

// WriteLine places text on the given row, clipped to the region width.
// Rows outside [0, height) are ignored.
func (r *Region) WriteLine(row int, text string) {
	if row < 0 || row >= r.height || r.width == 0 {
		return
	}
	if visualLength(text) > r.width {
		text = truncate(text, r.width)
	}
	r.lines[row] = text
}

// Lines returns the region rows, each padded to the full width.
func (r *Region) Lines() []string {
	out := make([]string, r.height)
	for i, line := range r.lines {
		out[i] = padRight(line, r.width)
	}
	return out
}

// Render joins the region rows into a single block.
func (r *Region) Render() string {
	return strings.Join(r.Lines(), "\n")
}

// JoinHorizontal places two equal-height rendered blocks side by side
// with a vertical separator between them.
func JoinHorizontal(left, right *Region) string {
	rows := left.Height()
	if right.Height() > rows {
		rows = right.Height()
	}
	leftLines := left.Lines()
	rightLines := right.Lines()

	var b strings.Builder
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		} else {
			l = strings.Repeat(" ", left.Width())
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l)
		b.WriteString("│")
		b.WriteString(r)
	}
	return b.String()
}
