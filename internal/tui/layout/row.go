package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// rowGap separates the name from the URL in a list row.
const rowGap = 2

// minRowURLWidth is the narrowest URL worth showing next to a name.
const minRowURLWidth = 9

// Row is one bookmark in the list pane, fitted to the pane width.
// URL is empty when there is no room for it.
type Row struct {
	Name string
	URL  string
}

// Width returns the number of terminal cells s occupies. Escape sequences
// take no room and wide runes take two cells.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// StripANSI removes escape sequences from rendered output.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Fit shortens s to at most width cells, marking the cut with the ellipsis.
// Widths too narrow for the ellipsis get a hard cut instead.
func Fit(s string, width int, cfg TextConfig) string {
	if width <= 0 {
		return ""
	}
	tail := cfg.Ellipsis
	if Width(tail) >= width {
		tail = ""
	}
	return ansi.Truncate(s, width, tail)
}

// FitRow lays out a bookmark row of at most width cells. The cursor prefix
// is kept whole and the name comes next. The URL follows only when the full
// name fits and enough room is left for a readable part of it.
func FitRow(prefix, name, url string, width int, cfg TextConfig) Row {
	prefixWidth := Width(prefix)
	if prefixWidth >= width {
		return Row{Name: Fit(prefix+name, width, cfg)}
	}

	nameWidth := Width(name)
	if prefixWidth+nameWidth > width {
		return Row{Name: prefix + Fit(name, width-prefixWidth, cfg)}
	}

	row := Row{Name: prefix + name}
	if room := width - prefixWidth - nameWidth - rowGap; room >= minRowURLWidth && url != "" {
		row.URL = Fit(url, room, cfg)
	}
	return row
}

// String joins the row the way it is drawn when unstyled.
func (r Row) String() string {
	if r.URL == "" {
		return r.Name
	}
	return r.Name + strings.Repeat(" ", rowGap) + r.URL
}
