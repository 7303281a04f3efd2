package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"CLIName", config.CLIName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that calendar defaults are consistent with each other.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 7, config.DaysPerWeek)
	assert.Equal(t, 12, config.MonthsPerYear)
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
	assert.Contains(t, config.SupportedLanguages, config.DefaultLang)
	assert.Contains(t, config.WeekStartNames, config.DefaultWeekDay)
	assert.Len(t, config.WeekStartNames, config.DaysPerWeek)
	assert.Len(t, config.WeekdayKeys, config.DaysPerWeek)

	// The pager base month must build with lunar labels, including the days
	// borrowed from the previous year.
	assert.Less(t, config.LunarMinYear, config.BaseYear)
	assert.Greater(t, config.LunarMaxYear, config.BaseYear)
	assert.GreaterOrEqual(t, config.BaseMonth, 1)
	assert.LessOrEqual(t, config.BaseMonth, 12)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-CalendarView/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}

func TestStubVCalendar(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}
