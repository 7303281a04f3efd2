package ui

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/locale"
	"golang.org/x/text/language"
)

// SetupI18n loads the embedded translations and selects the user's language.
func (app *GoCalendarApp) SetupI18n() {
	app.I18nBundle, app.SupportedLanguages = locale.Load()
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language preference.
// Without a preference the system locale (LANG) is matched against the
// available translations.
func (app *GoCalendarApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	pref := app.Preferences.String(config.PrefLanguage)
	if pref == "" {
		pref = os.Getenv("LANG")
	}
	app.Lang = MatchLanguage(pref, app.SupportedLanguages)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, app.Lang)
}

// MatchLanguage picks the supported language closest to want, which may be a
// BCP 47 tag or a POSIX locale such as "zh_CN.UTF-8".
func MatchLanguage(want string, supported []string) string {
	if len(supported) == 0 {
		return config.DefaultLang
	}
	// The default comes first so that the matcher falls back to it.
	tags := []language.Tag{language.Make(config.DefaultLang)}
	for _, s := range supported {
		if s != config.DefaultLang {
			tags = append(tags, language.Make(s))
		}
	}

	want, _, _ = strings.Cut(want, ".")
	want = strings.ReplaceAll(want, "_", "-")

	_, idx, conf := language.NewMatcher(tags).Match(language.Make(want))
	if conf == language.No {
		return config.DefaultLang
	}
	base, _ := tags[idx].Base()
	return base.String()
}

// GetMsg is a helper to translate a key safely.
func (app *GoCalendarApp) GetMsg(key string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key})
}

// GetMsgData translates a templated key.
func (app *GoCalendarApp) GetMsgData(key string, data map[string]any) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

func (app *GoCalendarApp) localize(lc *i18n.LocalizeConfig) string {
	if app.Localizer == nil {
		return lc.MessageID
	}
	msg, err := app.Localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// WeekdayLabels returns the localized short weekday names in column order.
func (app *GoCalendarApp) WeekdayLabels(order [config.DaysPerWeek]time.Weekday) [config.DaysPerWeek]string {
	var labels [config.DaysPerWeek]string
	for i, wd := range order {
		labels[i] = app.GetMsg(config.WeekdayKeys[wd])
	}
	return labels
}

// MonthTitle returns the localized "month year" heading.
func (app *GoCalendarApp) MonthTitle(year, month int) string {
	name := time.Month(month).String()
	title := app.GetMsgData(config.TKeyMonthTitle, map[string]any{
		"Year":      year,
		"Month":     month,
		"MonthName": name,
	})
	if title == config.TKeyMonthTitle {
		return fallbackMonthTitle(name, year)
	}
	return title
}
