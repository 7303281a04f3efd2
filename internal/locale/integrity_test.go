package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// usedKeys lists every translation key referenced by the UI and the CLI.
var usedKeys = []string{
	config.TKeyWinTitle,
	config.TKeySettingsTitle,
	config.TKeyMonthTitle,
	config.TKeyBtnPrev,
	config.TKeyBtnNext,
	config.TKeyBtnToday,
	config.TKeyBtnGo,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnBrowse,
	config.TKeyMenuOpen,
	config.TKeyMenuSettings,
	config.TKeyMenuAnnotations,
	config.TKeyTrayToday,
	config.TKeyLblLanguage,
	config.TKeyLblWeekStart,
	config.TKeyLblShowLunar,
	config.TKeyLblShowHol,
	config.TKeyLblDisplay,
	config.TKeyLblFeed,
	config.TKeyLblServeFeed,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblBirthdays,
	config.TKeyHelpBirthdays,
	config.TKeyLblFooter,
	config.TKeyLblYear,
	config.TKeyLblSelected,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrYear,
	config.TKeyWinAnnotations,
	config.TKeyColDate,
	config.TKeyColKind,
	config.TKeyColSummary,
	config.TKeyKindSolar,
	config.TKeyKindLunar,
	config.TKeyKindTerm,
	config.TKeyKindBirthday,
}

func loadLocale(t *testing.T, lang string) map[string]string {
	t.Helper()
	path := filepath.Join(".", "active."+lang+".json")
	content, err := os.ReadFile(path)
	require.NoError(t, err, "Must load %s", path)

	var m map[string]string
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be valid")
	return m
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file and that no locale carries stray keys.
func TestI18nIntegrity(t *testing.T) {
	keys := append([]string{}, usedKeys...)
	keys = append(keys, config.WeekdayKeys[:]...)

	defined := make(map[string]bool, len(keys))
	for _, k := range keys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			m := loadLocale(t, lang)
			for _, k := range keys {
				v, ok := m[k]
				if assert.Truef(t, ok, "Key '%s' is missing in active.%s.json", k, lang) {
					assert.NotEmpty(t, strings.TrimSpace(v), k)
				}
			}
			for k := range m {
				assert.Truef(t, defined[k], "Key '%s' in active.%s.json is not used", k, lang)
			}
		})
	}
}

func TestI18nTemplatesMatch(t *testing.T) {
	en := loadLocale(t, config.DefaultLang)
	for _, lang := range config.SupportedLanguages {
		other := loadLocale(t, lang)
		for k, v := range en {
			for _, field := range []string{"{{.Year}}", "{{.Date}}", "{{.Min}}", "{{.Max}}", "%s"} {
				if strings.Contains(v, field) {
					assert.Containsf(t, other[k], field, "%s/%s must keep %s", lang, k, field)
				}
			}
		}
	}
}
