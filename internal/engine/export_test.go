package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

var exportStamp = time.Date(2018, 1, 1, 8, 0, 0, 0, time.UTC)

func february2018(t *testing.T) engine.MonthGrid {
	t.Helper()
	b := engine.NewBuilder(engine.NewSolarHolidayTable(), engine.NewAlmanacConverter())
	grid, err := b.BuildMonthGrid(2018, 2)
	require.NoError(t, err)
	return grid
}

func TestAnnotations(t *testing.T) {
	markers, err := engine.LoadBirthdays(strings.NewReader(vcards("FN:Alice\r\nBDAY:1990-02-16\r\n")))
	require.NoError(t, err)

	list := engine.Annotations(february2018(t), markers)
	require.NotEmpty(t, list)

	var onFestival []string
	for _, a := range list {
		assert.Equal(t, 2, a.Day.Month, "only current-month days are exported")
		if a.Day.Day == 16 {
			onFestival = append(onFestival, a.Category+":"+a.Summary)
		}
	}
	assert.Equal(t, []string{
		config.CategoryLunarHoliday + ":春节",
		config.CategoryBirthday + ":Alice",
	}, onFestival)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].Day.Time().Before(list[i-1].Day.Time()), "date order")
	}
}

func TestExportICS(t *testing.T) {
	data, err := engine.ExportICS(february2018(t), nil, exportStamp)
	require.NoError(t, err)

	ics := string(data)
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "BEGIN:VEVENT")
	assert.Contains(t, ics, "SUMMARY:春节")
	assert.Contains(t, ics, "SUMMARY:情人节")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20180216")
	assert.Contains(t, ics, "CATEGORIES:"+config.CategorySolarHoliday)
	assert.NotContains(t, ics, "SUMMARY:元旦", "January days stay out of the February feed")
}

func TestExportICS_StableUIDs(t *testing.T) {
	grid := february2018(t)

	first, err := engine.ExportICS(grid, nil, exportStamp)
	require.NoError(t, err)
	second, err := engine.ExportICS(grid, nil, exportStamp.Add(time.Hour))
	require.NoError(t, err)

	uids := func(ics string) []string {
		var out []string
		for _, line := range strings.Split(ics, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				out = append(out, line)
			}
		}
		return out
	}
	assert.NotEmpty(t, uids(string(first)))
	assert.Equal(t, uids(string(first)), uids(string(second)))
	assert.NotEqual(t, string(first), string(second), "DTSTAMP follows the stamp")
}

func TestExportICS_EmptyMonth(t *testing.T) {
	grid, err := engine.NewBuilder(nil, nil).BuildMonthGrid(2018, 2)
	require.NoError(t, err)

	data, err := engine.ExportICS(grid, nil, exportStamp)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}
