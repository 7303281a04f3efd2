// Package textgrid prints month grids for terminals.
package textgrid

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/go-calendarview/internal/engine"
	"golang.org/x/text/width"
)

// CellWidth is the number of terminal columns of one day cell.
const CellWidth = 8

// Options controls what is printed under each day number.
type Options struct {
	ShowLunar   bool
	ShowHoliday bool
	Markers     engine.Markers
	// Today is highlighted with a leading '*'. The zero value marks nothing.
	Today engine.Day
}

// Render writes grid as a two-line-per-week table: day numbers, then captions.
// Days outside the month are shown in parentheses without caption.
func Render(w io.Writer, grid engine.MonthGrid, order [7]string, opts Options) error {
	var sb strings.Builder

	sb.WriteString(center(fmt.Sprintf("%d-%02d", grid.Year, grid.Month), CellWidth*len(order)))
	sb.WriteByte('\n')
	for _, name := range order {
		sb.WriteString(pad(name, CellWidth))
	}
	sb.WriteByte('\n')

	for _, week := range grid.Weeks {
		var top, bottom strings.Builder
		for _, d := range week {
			top.WriteString(pad(number(d, opts), CellWidth))
			caption := ""
			if d.Membership == engine.CurrentMonth {
				caption = d.Caption(opts.ShowLunar, opts.ShowHoliday)
			}
			bottom.WriteString(pad(truncate(caption, CellWidth-1), CellWidth))
		}
		sb.WriteString(strings.TrimRight(top.String(), " "))
		sb.WriteByte('\n')
		sb.WriteString(strings.TrimRight(bottom.String(), " "))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func number(d engine.Day, opts Options) string {
	s := fmt.Sprintf("%d", d.Day)
	if d.Membership != engine.CurrentMonth {
		return "(" + s + ")"
	}
	if opts.Markers.Has(d.Year, d.Month, d.Day) {
		s += "+"
	}
	if d.Equal(opts.Today) {
		s = "*" + s
	}
	return s
}

// Width returns the number of terminal columns s occupies. East Asian wide and
// fullwidth runes take two columns.
func Width(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, cols int) string {
	if w := Width(s); w < cols {
		return s + strings.Repeat(" ", cols-w)
	}
	return s
}

func center(s string, cols int) string {
	w := Width(s)
	if w >= cols {
		return s
	}
	left := (cols - w) / 2
	return strings.Repeat(" ", left) + s
}

func truncate(s string, cols int) string {
	if Width(s) <= cols {
		return s
	}
	var sb strings.Builder
	used := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		rw := Width(string(r))
		if used+rw > cols {
			break
		}
		sb.WriteRune(r)
		used += rw
		s = s[size:]
	}
	return sb.String()
}
