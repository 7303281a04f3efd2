package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cloudeng.io/datetime"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings holds the calgrid configuration. Values come from defaults, then
// the settings file, then CALGRID_* environment variables.
type Settings struct {
	Language    string          `mapstructure:"language" validate:"required,oneof=en zh"`
	WeekStart   string          `mapstructure:"week_start" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	ShowLunar   bool            `mapstructure:"show_lunar"`
	ShowHoliday bool            `mapstructure:"show_holiday"`
	Port        int             `mapstructure:"port" validate:"gte=1,lte=65535"`
	Birthdays   string          `mapstructure:"birthdays"`
	Holidays    []HolidayConfig `mapstructure:"holidays" validate:"dive"`
}

// HolidayConfig is an extra fixed-date observance declared in the settings file.
type HolidayConfig struct {
	Name  string `mapstructure:"name" validate:"required"`
	Month int    `mapstructure:"month" validate:"gte=1,lte=12"`
	Day   int    `mapstructure:"day" validate:"gte=1,lte=31"`
}

// ServerPort returns the port in the form expected by the feed server.
func (s *Settings) ServerPort() string {
	return strconv.Itoa(s.Port)
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	port, _ := strconv.Atoi(DefaultPort)
	return &Settings{
		Language:    DefaultLang,
		WeekStart:   DefaultWeekDay,
		ShowLunar:   true,
		ShowHoliday: true,
		Port:        port,
	}
}

// LoadSettings reads the settings file at path. With an empty path the file is
// searched in the working directory and the user config directory, and a
// missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	def := DefaultSettings()
	v.SetDefault(SettingLanguage, def.Language)
	v.SetDefault(SettingWeekStart, def.WeekStart)
	v.SetDefault(SettingShowLunar, def.ShowLunar)
	v.SetDefault(SettingShowHoliday, def.ShowHoliday)
	v.SetDefault(SettingPort, def.Port)
	v.SetDefault(SettingBirthdays, "")
	v.SetDefault(SettingHolidays, []map[string]any{})

	v.SetEnvPrefix(SettingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType(SettingsFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, CLIName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsDecode, err)
	}
	s.WeekStart = strings.ToLower(strings.TrimSpace(s.WeekStart))

	if err := s.Validate(); err != nil {
		return nil, err
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, v.ConfigFileUsed())
	return &s, nil
}

// Validate checks field constraints declared in the struct tags, then that
// every extra holiday falls on a day that exists. Feb 29 is accepted and only
// shows in leap years.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	for _, h := range s.Holidays {
		if h.Day > datetime.DaysInMonth(DefaultLeapYear, datetime.Month(h.Month)) {
			return fmt.Errorf("%s: %s: %q %02d-%02d", ErrSettingsInvalid, ErrHolidayDate, h.Name, h.Month, h.Day)
		}
	}
	return nil
}
