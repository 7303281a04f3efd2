// Package locale embeds the translation files shared by the desktop app and
// the calgrid CLI.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendarview/internal/config"
	"golang.org/x/text/language"
)

//go:embed active.*.json
var files embed.FS

const (
	filePrefix = "active."
	fileSuffix = ".json"
)

// Load builds a bundle from the embedded translations and returns the
// language codes it found. Unreadable files are logged and skipped.
func Load() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := files.ReadDir(".")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		langCode := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if langCode == "" || langCode == name {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(files, name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		langs = append(langs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return bundle, langs
}

// Weekdays returns the short weekday names of lang in column order. Missing
// translations fall back to the English abbreviation.
func Weekdays(loc *i18n.Localizer, order [config.DaysPerWeek]time.Weekday) [config.DaysPerWeek]string {
	var names [config.DaysPerWeek]string
	for i, wd := range order {
		names[i] = wd.String()[:3]
		if loc == nil {
			continue
		}
		if msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: config.WeekdayKeys[wd]}); err == nil {
			names[i] = msg
		}
	}
	return names
}
