package engine

import "github.com/tartampluch/go-calendarview/internal/config"

// PageToYearMonth maps a pager index to the month that is index months after
// baseYear/baseMonth. Negative indexes walk backwards.
func PageToYearMonth(index, baseYear, baseMonth int) (year, month int) {
	total := monthIndex(baseYear, baseMonth) + index
	year = floorDiv(total, config.MonthsPerYear)
	month = total - year*config.MonthsPerYear + 1
	return year, month
}

// YearMonthToPage is the inverse of PageToYearMonth for the same base.
func YearMonthToPage(year, month, baseYear, baseMonth int) int {
	return MonthDistance(baseYear, baseMonth, year, month)
}

// MonthDistance returns the number of months from year1/month1 to year2/month2
// (second minus first).
func MonthDistance(year1, month1, year2, month2 int) int {
	return (year2-year1)*config.MonthsPerYear + (month2 - month1)
}

// PageCount returns how many pages a pager needs to show every month from
// start to end inclusive. It is zero when end precedes start.
func PageCount(startYear, startMonth, endYear, endMonth int) int {
	n := MonthDistance(startYear, startMonth, endYear, endMonth) + 1
	if n < 0 {
		return 0
	}
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
