package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings_File(t *testing.T) {
	path := writeSettings(t, `
language: zh
week_start: Sunday
show_lunar: false
port: 9000
birthdays: ~/contacts.vcf
holidays:
  - name: Company Day
    month: 3
    day: 17
`)

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "zh", s.Language)
	assert.Equal(t, "sunday", s.WeekStart)
	assert.False(t, s.ShowLunar)
	assert.True(t, s.ShowHoliday, "unset keys keep their default")
	assert.Equal(t, 9000, s.Port)
	assert.Equal(t, "9000", s.ServerPort())
	assert.Equal(t, "~/contacts.vcf", s.Birthdays)
	require.Len(t, s.Holidays, 1)
	assert.Equal(t, config.HolidayConfig{Name: "Company Day", Month: 3, Day: 17}, s.Holidays[0])
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := config.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLang, s.Language)
	assert.Equal(t, config.DefaultWeekDay, s.WeekStart)
	assert.True(t, s.ShowLunar)
	assert.Equal(t, 18081, s.Port)
	assert.Empty(t, s.Holidays)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("CALGRID_WEEK_START", "saturday")
	t.Setenv("CALGRID_PORT", "8443")
	path := writeSettings(t, "week_start: monday\n")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "saturday", s.WeekStart)
	assert.Equal(t, 8443, s.Port)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"BadWeekStart", "week_start: someday\n", config.ErrSettingsInvalid},
		{"BadLanguage", "language: fr\n", config.ErrSettingsInvalid},
		{"PortTooHigh", "port: 70000\n", config.ErrSettingsInvalid},
		{"HolidayMonth", "holidays:\n  - name: X\n    month: 13\n    day: 1\n", config.ErrSettingsInvalid},
		{"HolidayName", "holidays:\n  - month: 1\n    day: 1\n", config.ErrSettingsInvalid},
		{"HolidayFeb30", "holidays:\n  - name: X\n    month: 2\n    day: 30\n", config.ErrHolidayDate},
		{"HolidayApr31", "holidays:\n  - name: X\n    month: 4\n    day: 31\n", config.ErrHolidayDate},
		{"Malformed", "week_start: [\n", config.ErrSettingsRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadSettings(writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsRead)
}

func TestLoadSettings_LeapDayHoliday(t *testing.T) {
	s, err := config.LoadSettings(writeSettings(t, "holidays:\n  - name: Leap Day\n    month: 2\n    day: 29\n"))
	require.NoError(t, err)
	require.Len(t, s.Holidays, 1)
	assert.Equal(t, 29, s.Holidays[0].Day)
}

func TestDefaultSettings_Valid(t *testing.T) {
	assert.NoError(t, config.DefaultSettings().Validate())
}
