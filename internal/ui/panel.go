package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/wishlist/internal/model"
)

const (
	maxTitleWidth = 80

	EmptyTitle   = "My wishlist"
	EmptyMessage = "No wishes yet. Add one to get started."
)

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := lipgloss.Width(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// ListLines renders the wishlist body: a header with the count, then either
// numbered wishes or the empty placeholder.
func ListLines(wishes []model.Wish) []string {
	t := Current()
	lines := []string{
		fmt.Sprintf("%s  %s", C(t.Title, "Wishlist"), C(t.Accent, model.CountLabel(len(wishes)))),
		"",
	}
	if len(wishes) == 0 {
		return append(lines,
			C(t.Accent, t.Heart+" "+EmptyTitle),
			C(t.Muted, EmptyMessage),
		)
	}
	for i, w := range wishes {
		idx := fmt.Sprintf("%2d.", i+1)
		lines = append(lines, fmt.Sprintf("%s %s %s", C(dim, idx), C(t.Accent, t.Bullet), Truncate(w.Title, maxTitleWidth)))
	}
	return lines
}

// Truncate shortens s to at most width cells, ending with "...".
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width < 4 {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
