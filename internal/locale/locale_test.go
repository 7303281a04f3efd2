package locale_test

import (
	"testing"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/locale"
)

var mondayFirst = [config.DaysPerWeek]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func TestLoad(t *testing.T) {
	bundle, langs := locale.Load()
	assert.NotNil(t, bundle)
	assert.ElementsMatch(t, config.SupportedLanguages, langs)
}

func TestWeekdays(t *testing.T) {
	bundle, _ := locale.Load()

	zh := locale.Weekdays(i18n.NewLocalizer(bundle, "zh"), mondayFirst)
	assert.Equal(t, [config.DaysPerWeek]string{"一", "二", "三", "四", "五", "六", "日"}, zh)

	en := locale.Weekdays(i18n.NewLocalizer(bundle, "en"), mondayFirst)
	assert.Equal(t, "Mon", en[0])
	assert.Equal(t, "Sun", en[6])

	assert.Equal(t, en, locale.Weekdays(nil, mondayFirst), "no localizer falls back to English")
}
