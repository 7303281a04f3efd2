package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// MonthView stacks a weekday header and one WeekRow per week of a month grid.
// At most one day is selected across all rows.
type MonthView struct {
	widget.BaseWidget

	grid    engine.MonthGrid
	style   Style
	today   engine.Day
	markers engine.Markers

	selected    engine.Day
	hasSelected bool

	header *fyne.Container
	body   *fyne.Container
	rows   []*WeekRow

	// OnDaySelected is called with the tapped day.
	OnDaySelected func(day engine.Day)
}

// NewMonthView creates an empty view.
func NewMonthView(style Style) *MonthView {
	v := &MonthView{
		style:  style,
		header: container.NewGridWithColumns(config.DaysPerWeek),
		body:   container.NewVBox(),
	}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *MonthView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(v.header, nil, nil, nil, v.body))
}

// SetGrid shows grid under the given weekday labels. The selection survives
// when the selected day is part of the new grid.
func (v *MonthView) SetGrid(grid engine.MonthGrid, labels [config.DaysPerWeek]string) {
	v.grid = grid

	header := make([]fyne.CanvasObject, 0, len(labels))
	for _, l := range labels {
		t := canvas.NewText(l, v.style.SecondaryColor)
		t.Alignment = fyne.TextAlignCenter
		t.TextSize = v.style.TextSizeBottom
		header = append(header, t)
	}
	v.header.Objects = header

	// Fresh slices: callers may still hold the previous Rows.
	rows := make([]*WeekRow, 0, len(grid.Weeks))
	body := make([]fyne.CanvasObject, 0, len(grid.Weeks))
	for i, week := range grid.Weeks {
		row := NewWeekRow(week, i, v.style)
		row.OnDaySelected = v.onRowSelected
		rows = append(rows, row)
		body = append(body, row)
	}
	v.rows, v.body.Objects = rows, body
	v.applyState()

	v.header.Refresh()
	v.body.Refresh()
}

// Grid returns the displayed grid.
func (v *MonthView) Grid() engine.MonthGrid { return v.grid }

// Rows returns the week rows in display order.
func (v *MonthView) Rows() []*WeekRow { return v.rows }

// SetStyle restyles every row.
func (v *MonthView) SetStyle(style Style) {
	v.style = style
	for _, r := range v.rows {
		r.SetStyle(style)
	}
}

// SetToday moves the today outline.
func (v *MonthView) SetToday(today engine.Day) {
	v.today = today
	for _, r := range v.rows {
		r.SetToday(today)
	}
}

// SetMarkers updates the birthday dots.
func (v *MonthView) SetMarkers(m engine.Markers) {
	v.markers = m
	for _, r := range v.rows {
		r.SetMarked(markedColumns(r.Week(), m))
	}
}

// Select highlights day. It returns false when day is not displayed.
func (v *MonthView) Select(day engine.Day) bool {
	found := false
	for _, r := range v.rows {
		if r.SelectDate(day) {
			found = true
		}
	}
	v.selected, v.hasSelected = day, found
	return found
}

// Selected returns the selected day, if any.
func (v *MonthView) Selected() (engine.Day, bool) {
	if !v.hasSelected {
		return engine.Day{}, false
	}
	week, pos, ok := v.grid.Find(v.selected)
	if !ok {
		return engine.Day{}, false
	}
	return v.grid.Weeks[week][pos], true
}

// ClearSelection removes the highlight from every row.
func (v *MonthView) ClearSelection() {
	for _, r := range v.rows {
		r.ClearSelection()
	}
	v.hasSelected = false
}

func (v *MonthView) onRowSelected(day engine.Day, _, weekOrder int) {
	for i, r := range v.rows {
		if i != weekOrder {
			r.ClearSelection()
		}
	}
	v.selected, v.hasSelected = day, true
	if v.OnDaySelected != nil {
		v.OnDaySelected(day)
	}
}

func (v *MonthView) applyState() {
	for _, r := range v.rows {
		r.SetToday(v.today)
		r.SetMarked(markedColumns(r.Week(), v.markers))
	}
	if v.hasSelected {
		v.Select(v.selected)
	}
}

func markedColumns(week engine.Week, m engine.Markers) [config.DaysPerWeek]bool {
	var marked [config.DaysPerWeek]bool
	for i, d := range week {
		marked[i] = d.Membership == engine.CurrentMonth && m.Has(d.Year, d.Month, d.Day)
	}
	return marked
}
