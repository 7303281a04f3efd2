package engine

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// Membership classifies a displayed date relative to the month a grid was built for.
type Membership int

const (
	PreviousMonth Membership = iota - 1
	CurrentMonth
	NextMonth
)

var membershipNames = map[Membership]string{
	PreviousMonth: "previous",
	CurrentMonth:  "current",
	NextMonth:     "next",
}

func (m Membership) String() string {
	if s, ok := membershipNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Membership(%d)", int(m))
}

// MarshalText renders the membership by name in JSON feeds.
func (m Membership) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names written by MarshalText.
func (m *Membership) UnmarshalText(b []byte) error {
	for k, name := range membershipNames {
		if name == string(b) {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("%w: membership %q", ErrInvalidArgument, b)
}

// Day is one calendar date together with its display metadata.
// It is a value: the grid builder creates a fresh one per date and never shares it.
type Day struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`

	// Weekday is the 1-based position of the date in its week,
	// where 1 is the builder's configured week start.
	Weekday int `json:"weekday"`

	Membership Membership `json:"membership"`

	// SolarHoliday is empty when the date has no Gregorian observance.
	SolarHoliday string `json:"solarHoliday,omitempty"`

	LunarMonth   string `json:"lunarMonth,omitempty"`
	LunarDay     string `json:"lunarDay,omitempty"`
	LunarHoliday string `json:"lunarHoliday,omitempty"`
	SolarTerm    string `json:"solarTerm,omitempty"`
}

// Equal reports whether both values denote the same calendar date.
// Derived metadata does not take part in the comparison.
func (d Day) Equal(o Day) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Key returns the identifying part of the day.
func (d Day) Key() datetime.CalendarDate {
	return datetime.CalendarDate{Year: d.Year, Month: datetime.Month(d.Month), Day: d.Day}
}

// Time returns midnight UTC of the date.
func (d Day) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) String() string {
	return d.Time().Format(config.DateFormatDisplay)
}

// Caption returns the short text shown under the day number: the lunar day,
// replaced by a lunar festival and then by a solar holiday when holidays are shown.
func (d Day) Caption(showLunar, showHoliday bool) string {
	var text string
	if showLunar {
		text = d.LunarDay
	}
	if showHoliday {
		if d.LunarHoliday != "" {
			text = d.LunarHoliday
		}
		if d.SolarHoliday != "" {
			text = d.SolarHoliday
		}
	}
	return text
}

// Week holds seven consecutive days starting on the configured week start.
type Week [config.DaysPerWeek]Day

// First returns the first day of the week.
func (w Week) First() Day { return w[0] }

// Last returns the last day of the week.
func (w Week) Last() Day { return w[len(w)-1] }

// IndexOf returns the position of the given date in the week, or -1.
func (w Week) IndexOf(d Day) int {
	for i := range w {
		if w[i].Equal(d) {
			return i
		}
	}
	return -1
}

// MonthGrid is the ordered list of weeks covering a month.
type MonthGrid struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Weeks []Week `json:"weeks"`
}

// Flatten returns the days of the grid in display order.
func Flatten(g MonthGrid) []Day {
	days := make([]Day, 0, len(g.Weeks)*config.DaysPerWeek)
	for _, w := range g.Weeks {
		days = append(days, w[:]...)
	}
	return days
}

// Find returns the week index and position of the given date in the grid.
func (g MonthGrid) Find(d Day) (week, position int, ok bool) {
	for i, w := range g.Weeks {
		if p := w.IndexOf(d); p >= 0 {
			return i, p, true
		}
	}
	return -1, -1, false
}
