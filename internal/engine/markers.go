package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"cloudeng.io/datetime"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// Markers maps an annual month/day to the names of the contacts born on it.
// A nil Markers is valid and empty.
type Markers map[datetime.Date][]string

// LoadBirthdays decodes a vCard stream and indexes every contact with a
// parseable BDAY. Malformed cards and dates are skipped.
func LoadBirthdays(r io.Reader) (Markers, error) {
	decoder := vcard.NewDecoder(r)
	markers := make(Markers)
	total := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronized, stop at the first error after data.
			if total == 0 && len(markers) == 0 {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			break
		}
		total++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birthDate, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		key := datetime.NewDate(birthDate)
		markers[key] = append(markers[key], name)
	}

	for k := range markers {
		slices.Sort(markers[k])
	}

	slog.Info(config.MsgBirthdaysLoaded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(markers))
	return markers, nil
}

// On returns the names marked on the given date. Feb 29 birthdays are shown
// on Mar 1 in common years.
func (m Markers) On(year, month, day int) []string {
	if len(m) == 0 {
		return nil
	}
	names := m[datetime.Date{Month: datetime.Month(month), Day: day}]
	if month == int(time.March) && day == 1 && !datetime.IsLeap(year) {
		if leap := m[datetime.Date{Month: datetime.Month(time.February), Day: 29}]; len(leap) > 0 {
			names = append(slices.Clone(names), leap...)
		}
	}
	return names
}

// Has reports whether any name is marked on the given date.
func (m Markers) Has(year, month, day int) bool {
	return len(m.On(year, month, day)) > 0
}

// parseBirthday handles the vCard BDAY forms seen in the wild.
func parseBirthday(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	// Truncated dates (year unknown) are anchored on a leap year so --02-29 survives.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
