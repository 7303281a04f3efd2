package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// WeekRow is a tappable row of seven day cells. It holds the week it shows,
// its order in the month and the current selection; drawing is delegated to
// RenderWeek.
type WeekRow struct {
	widget.BaseWidget

	week  engine.Week
	order int
	style Style
	state RowState

	// OnDaySelected is called after a tap changed the selection.
	OnDaySelected func(day engine.Day, position, weekOrder int)
}

// NewWeekRow creates a row for week, which is the order-th week of its month.
func NewWeekRow(week engine.Week, order int, style Style) *WeekRow {
	r := &WeekRow{week: week, order: order, style: style, state: EmptyRowState()}
	r.ExtendBaseWidget(r)
	return r
}

// CreateRenderer implements fyne.Widget.
func (r *WeekRow) CreateRenderer() fyne.WidgetRenderer {
	return &weekRowRenderer{row: r}
}

// Week returns the displayed days.
func (r *WeekRow) Week() engine.Week { return r.week }

// Order returns the 0-based position of the row in its month.
func (r *WeekRow) Order() int { return r.order }

// State returns a copy of the interaction state.
func (r *WeekRow) State() RowState { return r.state }

// SetWeek replaces the displayed days and clears the selection.
func (r *WeekRow) SetWeek(week engine.Week, order int) {
	r.week = week
	r.order = order
	r.state = EmptyRowState()
	r.Refresh()
}

// SetStyle replaces the style.
func (r *WeekRow) SetStyle(style Style) {
	r.style = style
	r.Refresh()
}

// SetToday highlights today if it belongs to the row.
func (r *WeekRow) SetToday(today engine.Day) {
	r.state.Today = r.week.IndexOf(today)
	r.Refresh()
}

// SetMarked flags the columns that carry a birthday marker.
func (r *WeekRow) SetMarked(marked [config.DaysPerWeek]bool) {
	r.state.Marked = marked
	r.Refresh()
}

// Selected returns the selected column, NoCell if none.
func (r *WeekRow) Selected() int { return r.state.Selected }

// Select highlights the day at position. Positions outside 0..6 are ignored.
func (r *WeekRow) Select(position int) bool {
	if !valid(position) {
		return false
	}
	r.state.Selected = position
	r.Refresh()
	return true
}

// SelectDate highlights day if it is in the row, otherwise clears the selection.
func (r *WeekRow) SelectDate(day engine.Day) bool {
	pos := r.week.IndexOf(day)
	if pos < 0 {
		r.ClearSelection()
		return false
	}
	return r.Select(pos)
}

// ClearSelection removes the highlight.
func (r *WeekRow) ClearSelection() {
	if r.state.Selected == NoCell {
		return
	}
	r.state.Selected = NoCell
	r.Refresh()
}

// Tapped implements fyne.Tappable.
func (r *WeekRow) Tapped(ev *fyne.PointEvent) {
	pos := ColumnAt(ev.Position.X, r.Size().Width)
	r.Select(pos)

	day := r.week[pos]
	slog.Debug(config.MsgDaySelected,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDate, day.String(),
		config.LogKeyPosition, pos,
		config.LogKeyWeekOrder, r.order)

	if r.OnDaySelected != nil {
		r.OnDaySelected(day, pos, r.order)
	}
}

// MinSize keeps every cell wide enough for a two-character caption.
func (r *WeekRow) MinSize() fyne.Size {
	cell := r.style.TextSizeTop * 2
	return fyne.NewSize(cell*config.DaysPerWeek, config.WeekRowHeight)
}

type weekRowRenderer struct {
	row     *WeekRow
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (rr *weekRowRenderer) Layout(size fyne.Size) {
	rr.size = size
	rr.objects = RenderWeek(rr.row.week, rr.row.style, rr.row.state, size)
}

func (rr *weekRowRenderer) MinSize() fyne.Size {
	return rr.row.MinSize()
}

func (rr *weekRowRenderer) Refresh() {
	rr.Layout(rr.row.Size())
	canvas.Refresh(rr.row)
}

func (rr *weekRowRenderer) Objects() []fyne.CanvasObject {
	return rr.objects
}

func (rr *weekRowRenderer) Destroy() {}
