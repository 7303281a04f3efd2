package ui

import (
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed digits, up to MaxLen of them.
type NumericalEntry struct {
	widget.Entry

	// MaxLen limits the number of digits; zero means unlimited.
	MaxLen int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry(maxLen int) *NumericalEntry {
	entry := &NumericalEntry{MaxLen: maxLen}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit or would exceed MaxLen.
// Pasted text bypasses this filter, so callers still attach a Validator.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxLen > 0 && len([]rune(e.Text)) >= e.MaxLen {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Value parses the entry. ok is false for empty or pasted non-numeric text.
func (e *NumericalEntry) Value() (n int, ok bool) {
	n, err := strconv.Atoi(e.Text)
	return n, err == nil
}
