package engine

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// LunarDate holds the Chinese lunisolar labels of a Gregorian date.
type LunarDate struct {
	Month     string // e.g. "正月", "闰四月"
	Day       string // e.g. "初一", "十五"
	Festival  string // traditional festival, empty if none
	SolarTerm string // one of the 24 solar terms, empty if none
	Leap      bool   // the date falls in a leap month
}

// LunarConverter converts Gregorian dates to the lunar calendar.
type LunarConverter interface {
	SolarToLunar(year, month, day int) (LunarDate, error)
}

type lunarMonthDay struct{ month, day int }

// lunarFestivals are keyed by non-leap lunar month/day. New Year's Eve is
// resolved separately since the 12th month has 29 or 30 days.
var lunarFestivals = map[lunarMonthDay]string{
	{1, 1}:   "春节",
	{1, 15}:  "元宵节",
	{2, 2}:   "龙抬头",
	{5, 5}:   "端午节",
	{7, 7}:   "七夕节",
	{7, 15}:  "中元节",
	{8, 15}:  "中秋节",
	{9, 9}:   "重阳节",
	{12, 8}:  "腊八节",
	{12, 23}: "小年",
}

const newYearsEve = "除夕"

// AlmanacConverter implements LunarConverter with the lunar-go almanac.
type AlmanacConverter struct {
	MinYear int
	MaxYear int
}

// NewAlmanacConverter returns a converter bounded to the configured lunar year range.
func NewAlmanacConverter() *AlmanacConverter {
	return &AlmanacConverter{MinYear: config.LunarMinYear, MaxYear: config.LunarMaxYear}
}

// SolarToLunar implements LunarConverter.
func (c *AlmanacConverter) SolarToLunar(year, month, day int) (LunarDate, error) {
	if year < c.MinYear || year > c.MaxYear {
		return LunarDate{}, fmt.Errorf("%w: %s [%d, %d]: %d", ErrOutOfRange, config.ErrLunarRange, c.MinYear, c.MaxYear, year)
	}
	if err := validateDate(year, month, day); err != nil {
		return LunarDate{}, err
	}

	lunar := calendar.NewSolarFromYmd(year, month, day).GetLunar()
	lm := lunar.GetMonth()
	ld := LunarDate{
		Month:     lunar.GetMonthInChinese() + config.LunarMonthSuffix,
		Day:       lunar.GetDayInChinese(),
		SolarTerm: lunar.GetJieQi(),
		Leap:      lm < 0,
	}
	if ld.Leap {
		return ld, nil
	}

	if name, ok := lunarFestivals[lunarMonthDay{lm, lunar.GetDay()}]; ok {
		ld.Festival = name
	} else if lm == 12 {
		// The eve is the last day of the 12th month: tomorrow opens the new year.
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		next := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day()).GetLunar()
		if next.GetMonth() == 1 && next.GetDay() == 1 {
			ld.Festival = newYearsEve
		}
	}
	return ld, nil
}
