package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// Builder computes month grids and enriched days.
// A Builder is immutable after construction and safe for concurrent use;
// every call returns freshly allocated values.
type Builder struct {
	WeekStart time.Weekday

	// Holidays and Lunar are optional. A nil collaborator leaves
	// the corresponding Day fields empty.
	Holidays HolidayLookup
	Lunar    LunarConverter
}

// NewBuilder returns a Monday-first builder wired to the given collaborators.
func NewBuilder(holidays HolidayLookup, lunar LunarConverter) *Builder {
	return &Builder{
		WeekStart: time.Monday,
		Holidays:  holidays,
		Lunar:     lunar,
	}
}

// ParseWeekStart maps a weekday name ("monday", "Sun", ...) to a time.Weekday.
func ParseWeekStart(name string) (time.Weekday, error) {
	lc := strings.ToLower(strings.TrimSpace(name))
	if lc == "" {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidArgument, config.ErrInvalidWeekStart, name)
	}
	for i, n := range config.WeekStartNames {
		if strings.HasPrefix(n, lc) && len(lc) >= 2 {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s: %q", ErrInvalidArgument, config.ErrInvalidWeekStart, name)
}

// BuildMonthGrid returns the weeks covering year/month. The first week holds
// the 1st of the month and the last week holds its last day; leading and
// trailing days come from the adjacent months.
func (b *Builder) BuildMonthGrid(year, month int) (MonthGrid, error) {
	if err := validateMonth(month); err != nil {
		return MonthGrid{}, err
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month), datetime.DaysInMonth(year, datetime.Month(month)), 0, 0, 0, 0, time.UTC)

	grid := MonthGrid{Year: year, Month: month}
	for cursor := b.startOfWeek(start); !cursor.After(last); cursor = cursor.AddDate(0, 0, config.DaysPerWeek) {
		week, err := b.buildWeek(cursor, year, month)
		if err != nil {
			return MonthGrid{}, fmt.Errorf("%s %04d-%02d: %w", config.ErrBuildGrid, year, month, err)
		}
		grid.Weeks = append(grid.Weeks, week)
	}

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
		config.LogKeyWeeks, len(grid.Weeks))
	return grid, nil
}

// MonthDays returns the grid of year/month as a flat, display-ordered list.
func (b *Builder) MonthDays(year, month int) ([]Day, error) {
	grid, err := b.BuildMonthGrid(year, month)
	if err != nil {
		return nil, err
	}
	return Flatten(grid), nil
}

// WeekDates returns the week containing the given date. Membership is relative
// to the month of that date.
func (b *Builder) WeekDates(year, month, day int) (Week, error) {
	if err := validateDate(year, month, day); err != nil {
		return Week{}, err
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return b.buildWeek(b.startOfWeek(t), year, month)
}

// EnrichDay returns the fully annotated Day for a single date.
func (b *Builder) EnrichDay(year, month, day int) (Day, error) {
	if err := validateDate(year, month, day); err != nil {
		return Day{}, err
	}
	return b.enrich(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func (b *Builder) buildWeek(from time.Time, year, month int) (Week, error) {
	var week Week
	target := monthIndex(year, month)
	for i := range week {
		t := from.AddDate(0, 0, i)
		d, err := b.enrich(t)
		if err != nil {
			return Week{}, err
		}
		switch cur := monthIndex(t.Year(), int(t.Month())); {
		case cur < target:
			d.Membership = PreviousMonth
		case cur > target:
			d.Membership = NextMonth
		default:
			d.Membership = CurrentMonth
		}
		week[i] = d
	}
	return week, nil
}

func (b *Builder) enrich(t time.Time) (Day, error) {
	year, m, day := t.Date()
	month := int(m)
	d := Day{
		Year:       year,
		Month:      month,
		Day:        day,
		Weekday:    b.position(t.Weekday()) + 1,
		Membership: CurrentMonth,
	}
	if b.Holidays != nil {
		if name, ok := b.Holidays.SolarHoliday(year, month, day); ok {
			d.SolarHoliday = name
		}
	}
	if b.Lunar != nil {
		ld, err := b.Lunar.SolarToLunar(year, month, day)
		if err != nil {
			return Day{}, err
		}
		d.LunarMonth = ld.Month
		d.LunarDay = ld.Day
		d.LunarHoliday = ld.Festival
		d.SolarTerm = ld.SolarTerm
	}
	return d, nil
}

// position returns the 0-based column of a weekday under the configured week start.
func (b *Builder) position(wd time.Weekday) int {
	return (int(wd) - int(b.WeekStart) + config.DaysPerWeek) % config.DaysPerWeek
}

func (b *Builder) startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -b.position(t.Weekday()))
}

// WeekdayOrder returns the seven weekdays in display order for the week start.
func (b *Builder) WeekdayOrder() [config.DaysPerWeek]time.Weekday {
	var order [config.DaysPerWeek]time.Weekday
	for i := range order {
		order[i] = time.Weekday((int(b.WeekStart) + i) % config.DaysPerWeek)
	}
	return order
}

func monthIndex(year, month int) int {
	return year*config.MonthsPerYear + month - 1
}

func validateMonth(month int) error {
	if month < 1 || month > config.MonthsPerYear {
		return fmt.Errorf("%w: %s: %d", ErrInvalidArgument, config.ErrInvalidMonth, month)
	}
	return nil
}

func validateDate(year, month, day int) error {
	if err := validateMonth(month); err != nil {
		return err
	}
	if day < 1 || day > datetime.DaysInMonth(year, datetime.Month(month)) {
		return fmt.Errorf("%w: %s: %04d-%02d-%02d", ErrInvalidArgument, config.ErrInvalidDay, year, month, day)
	}
	return nil
}
