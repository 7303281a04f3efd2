package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// uidNamespace seeds the name-based UUIDs of exported events so that the same
// annotation keeps the same UID across exports.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID))

// Annotation is one labelled fact about a date, as exported to calendar feeds.
type Annotation struct {
	Day      Day
	Category string
	Summary  string
}

// Annotations lists the labels of the current-month days of the grid in date
// order: solar holiday, lunar festival, solar term, then birthdays.
func Annotations(grid MonthGrid, markers Markers) []Annotation {
	var out []Annotation
	for _, d := range Flatten(grid) {
		if d.Membership != CurrentMonth {
			continue
		}
		if d.SolarHoliday != "" {
			out = append(out, Annotation{Day: d, Category: config.CategorySolarHoliday, Summary: d.SolarHoliday})
		}
		if d.LunarHoliday != "" {
			out = append(out, Annotation{Day: d, Category: config.CategoryLunarHoliday, Summary: d.LunarHoliday})
		}
		if d.SolarTerm != "" {
			out = append(out, Annotation{Day: d, Category: config.CategorySolarTerm, Summary: d.SolarTerm})
		}
		for _, name := range markers.On(d.Year, d.Month, d.Day) {
			out = append(out, Annotation{Day: d, Category: config.CategoryBirthday, Summary: name})
		}
	}
	return out
}

// ExportICS encodes the annotations of a month grid as an iCalendar feed of
// all-day events. stamp is written to every DTSTAMP.
func ExportICS(grid MonthGrid, markers Markers, stamp time.Time) ([]byte, error) {
	annotations := Annotations(grid, markers)
	if len(annotations) == 0 {
		// Clients flag a VCALENDAR without components less often than an empty body.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(stamp.UTC())

	for _, a := range annotations {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(a))
		event.Props.SetText(config.PropSummary, a.Summary)
		event.Props.SetText(config.PropCategories, a.Category)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(a.Day.Time())
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug("Calendar export successful",
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, grid.Year,
		config.LogKeyMonth, grid.Month,
		config.LogKeyCount, len(annotations))
	return buf.Bytes(), nil
}

func eventUID(a Annotation) string {
	name := fmt.Sprintf("%s|%s|%s|%s", a.Day, a.Category, a.Summary, config.UIDSalt)
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(uidNamespace, []byte(name)), config.ICalDomain)
}
