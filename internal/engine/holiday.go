package engine

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
	"github.com/rickar/cal/v2"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// HolidayLookup resolves the Gregorian-calendar observance of a date.
// Implementations must be pure: the same date always yields the same answer.
type HolidayLookup interface {
	SolarHoliday(year, month, day int) (string, bool)
}

// Fixed-date and moveable observances shown under the day number.
var (
	NewYear          = fixed("元旦", time.January, 1)
	ValentinesDay    = fixed("情人节", time.February, 14)
	WomensDay        = fixed("妇女节", time.March, 8)
	ArborDay         = fixed("植树节", time.March, 12)
	AprilFoolsDay    = fixed("愚人节", time.April, 1)
	LabourDay        = fixed("劳动节", time.May, 1)
	YouthDay         = fixed("青年节", time.May, 4)
	ChildrensDay     = fixed("儿童节", time.June, 1)
	PartyFoundingDay = fixed("建党节", time.July, 1)
	ArmyDay          = fixed("建军节", time.August, 1)
	TeachersDay      = fixed("教师节", time.September, 10)
	NationalDay      = fixed("国庆节", time.October, 1)
	ChristmasEve     = fixed("平安夜", time.December, 24)
	ChristmasDay     = fixed("圣诞节", time.December, 25)

	MothersDay      = nthWeekday("母亲节", time.May, time.Sunday, 2)
	FathersDay      = nthWeekday("父亲节", time.June, time.Sunday, 3)
	ThanksgivingDay = nthWeekday("感恩节", time.November, time.Thursday, 4)

	// DefaultHolidays is the table used when no custom list is configured.
	DefaultHolidays = []*cal.Holiday{
		NewYear, ValentinesDay, WomensDay, ArborDay, AprilFoolsDay,
		LabourDay, YouthDay, MothersDay, ChildrensDay, FathersDay,
		PartyFoundingDay, ArmyDay, TeachersDay, NationalDay,
		ThanksgivingDay, ChristmasEve, ChristmasDay,
	}
)

// SolarHolidayTable is a HolidayLookup backed by a cal.BusinessCalendar.
type SolarHolidayTable struct {
	calendar *cal.BusinessCalendar
}

// NewSolarHolidayTable returns the default table extended with extra observances.
// On a date with several observances the one registered first wins.
func NewSolarHolidayTable(extra ...*cal.Holiday) *SolarHolidayTable {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(DefaultHolidays...)
	c.AddHoliday(extra...)
	return &SolarHolidayTable{calendar: c}
}

// FixedHoliday builds an observance that falls on the same date every year.
// The date must exist in a leap year; a Feb 29 observance is skipped in
// common years.
func FixedHoliday(name string, month, day int) (*cal.Holiday, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if day < 1 || day > datetime.DaysInMonth(config.DefaultLeapYear, datetime.Month(month)) {
		return nil, fmt.Errorf("%w: %s: %q %02d-%02d", ErrInvalidArgument, config.ErrInvalidDay, name, month, day)
	}
	return fixed(name, time.Month(month), day), nil
}

// SolarHoliday implements HolidayLookup.
func (t *SolarHolidayTable) SolarHoliday(year, month, day int) (string, bool) {
	date := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	actual, _, h := t.calendar.IsHoliday(date)
	if !actual || h == nil {
		return "", false
	}
	return h.Name, true
}

func fixed(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Month: month,
		Day:   day,
		Func:  calcExactDay,
	}
}

// calcExactDay is cal.CalcDayOfMonth without month rollover: a year in which
// the day does not exist has no occurrence.
func calcExactDay(h *cal.Holiday, year int) time.Time {
	if h.Day > datetime.DaysInMonth(year, datetime.Month(h.Month)) {
		return time.Time{}
	}
	return cal.CalcDayOfMonth(h, year)
}

func nthWeekday(name string, month time.Month, wd time.Weekday, n int) *cal.Holiday {
	return &cal.Holiday{
		Name:    name,
		Month:   month,
		Weekday: wd,
		Offset:  n,
		Func:    cal.CalcWeekdayOffset,
	}
}
