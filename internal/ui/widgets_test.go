package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

var rowSize = fyne.NewSize(700, config.WeekRowHeight)

func february2018(t *testing.T) engine.MonthGrid {
	t.Helper()
	b := engine.NewBuilder(engine.NewSolarHolidayTable(), engine.NewAlmanacConverter())
	grid, err := b.BuildMonthGrid(2018, 2)
	require.NoError(t, err)
	return grid
}

func countObjects(objs []fyne.CanvasObject) (texts, rects, circles int) {
	for _, o := range objs {
		switch o.(type) {
		case *canvas.Text:
			texts++
		case *canvas.Rectangle:
			rects++
		case *canvas.Circle:
			circles++
		}
	}
	return texts, rects, circles
}

func TestColumnAt(t *testing.T) {
	tests := []struct {
		x, width float32
		want     int
	}{
		{0, 700, 0},
		{99, 700, 0},
		{100, 700, 1},
		{450, 700, 4},
		{699, 700, 6},
		{750, 700, 6},
		{-5, 700, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnAt(tt.x, tt.width), "x=%v width=%v", tt.x, tt.width)
	}
}

func TestSecondaryLabel(t *testing.T) {
	day := engine.Day{LunarDay: "初一", LunarHoliday: "春节"}
	style := DefaultStyle()

	assert.Equal(t, "春节", SecondaryLabel(day, style))
	assert.Equal(t, "初一", SecondaryLabel(day, style.WithCaptions(true, false)))
	assert.Equal(t, "春节", SecondaryLabel(day, style.WithCaptions(false, true)))
	assert.Empty(t, SecondaryLabel(day, style.WithCaptions(false, false)))

	day.SolarHoliday = "情人节"
	assert.Equal(t, "情人节", SecondaryLabel(day, style))
}

func TestRenderWeek(t *testing.T) {
	week := february2018(t).Weeks[2] // Feb 12 .. Feb 18
	style := DefaultStyle()

	t.Run("Plain", func(t *testing.T) {
		objs := RenderWeek(week, style, EmptyRowState(), rowSize)
		texts, rects, circles := countObjects(objs)
		assert.Equal(t, 2*config.DaysPerWeek, texts, "a number and a caption per day")
		assert.Zero(t, rects)
		assert.Zero(t, circles)
	})

	t.Run("SelectedTodayMarked", func(t *testing.T) {
		state := EmptyRowState()
		state.Selected = 4
		state.Today = 2
		state.Marked[4] = true

		objs := RenderWeek(week, style, state, rowSize)
		texts, rects, circles := countObjects(objs)
		assert.Equal(t, 2*config.DaysPerWeek-1, texts, "the selected cell has no caption")
		assert.Equal(t, 2, rects, "selection disc and today outline")
		assert.Equal(t, 1, circles)

		var selectedNumber *canvas.Text
		for _, o := range objs {
			if txt, ok := o.(*canvas.Text); ok && txt.Text == "16" {
				selectedNumber = txt
			}
		}
		require.NotNil(t, selectedNumber)
		assert.Equal(t, style.SelectedTextColor, selectedNumber.Color)
	})

	t.Run("TodaySelected", func(t *testing.T) {
		state := EmptyRowState()
		state.Selected = 2
		state.Today = 2
		_, rects, _ := countObjects(RenderWeek(week, style, state, rowSize))
		assert.Equal(t, 1, rects, "no outline under the selection disc")
	})

	t.Run("NoCaptions", func(t *testing.T) {
		objs := RenderWeek(week, style.WithCaptions(false, false), EmptyRowState(), rowSize)
		texts, _, _ := countObjects(objs)
		assert.Equal(t, config.DaysPerWeek, texts)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := RenderWeek(week, style, EmptyRowState(), rowSize)
		b := RenderWeek(week, style, EmptyRowState(), rowSize)
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].Position(), b[i].Position())
			assert.Equal(t, a[i].Size(), b[i].Size())
		}
	})
}

func TestRenderWeek_OtherMonthColor(t *testing.T) {
	week := february2018(t).Weeks[0] // Jan 29 .. Feb 4
	style := DefaultStyle()

	for _, o := range RenderWeek(week, style, EmptyRowState(), rowSize) {
		txt, ok := o.(*canvas.Text)
		if !ok || txt.TextSize != style.TextSizeTop {
			continue
		}
		switch txt.Text {
		case "29", "30", "31":
			assert.Equal(t, style.OtherMonthColor, txt.Color, txt.Text)
		default:
			assert.Equal(t, style.TextColor, txt.Color, txt.Text)
		}
	}
}

func TestWeekRow_Tap(t *testing.T) {
	test.NewApp()
	week := february2018(t).Weeks[2]
	row := NewWeekRow(week, 2, DefaultStyle())
	row.Resize(rowSize)

	var (
		gotDay   engine.Day
		gotPos   int
		gotOrder int
		calls    int
	)
	row.OnDaySelected = func(day engine.Day, position, weekOrder int) {
		gotDay, gotPos, gotOrder = day, position, weekOrder
		calls++
	}

	test.TapAt(row, fyne.NewPos(450, 10))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 16, gotDay.Day)
	assert.Equal(t, 4, gotPos)
	assert.Equal(t, 2, gotOrder)
	assert.Equal(t, 4, row.Selected())

	// Taps past the right edge land on the last column.
	test.TapAt(row, fyne.NewPos(900, 10))
	assert.Equal(t, 6, gotPos)
	assert.Equal(t, 18, gotDay.Day)
}

func TestWeekRow_State(t *testing.T) {
	test.NewApp()
	grid := february2018(t)
	row := NewWeekRow(grid.Weeks[2], 2, DefaultStyle())

	assert.Equal(t, EmptyRowState(), row.State())
	assert.Equal(t, 2, row.Order())

	assert.False(t, row.Select(config.DaysPerWeek))
	assert.False(t, row.Select(-1))
	assert.True(t, row.Select(3))
	assert.Equal(t, 3, row.Selected())

	row.SetToday(grid.Weeks[2][1])
	assert.Equal(t, 1, row.State().Today)
	row.SetToday(grid.Weeks[0][0])
	assert.Equal(t, NoCell, row.State().Today)

	assert.False(t, row.SelectDate(grid.Weeks[0][0]))
	assert.Equal(t, NoCell, row.Selected())

	row.Select(5)
	row.SetWeek(grid.Weeks[3], 3)
	assert.Equal(t, NoCell, row.Selected(), "a new week clears the selection")
	assert.Equal(t, 3, row.Order())
	assert.Equal(t, grid.Weeks[3], row.Week())

	assert.Equal(t, float32(config.WeekRowHeight), row.MinSize().Height)
}

func TestMonthView(t *testing.T) {
	test.NewApp()
	grid := february2018(t)
	labels := [config.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	v := NewMonthView(DefaultStyle())
	w := test.NewWindow(v)
	defer w.Close()

	v.SetGrid(grid, labels)
	require.Len(t, v.Rows(), len(grid.Weeks))

	var selected []engine.Day
	v.OnDaySelected = func(d engine.Day) { selected = append(selected, d) }

	rows := v.Rows()
	rows[1].Resize(rowSize)
	rows[3].Resize(rowSize)
	test.TapAt(rows[1], fyne.NewPos(10, 10))
	test.TapAt(rows[3], fyne.NewPos(10, 10))

	require.Len(t, selected, 2)
	assert.Equal(t, NoCell, rows[1].Selected(), "only one selection across rows")
	assert.Equal(t, 0, rows[3].Selected())

	day, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "2018-02-19", day.String())

	v.ClearSelection()
	_, ok = v.Selected()
	assert.False(t, ok)
	assert.Equal(t, NoCell, rows[3].Selected())
}

func TestMonthView_SelectionAcrossGrids(t *testing.T) {
	test.NewApp()
	b := engine.NewBuilder(nil, nil)
	feb, err := b.BuildMonthGrid(2018, 2)
	require.NoError(t, err)
	mar, err := b.BuildMonthGrid(2018, 3)
	require.NoError(t, err)

	v := NewMonthView(DefaultStyle())
	var labels [config.DaysPerWeek]string
	v.SetGrid(feb, labels)

	// Feb 26 also opens the March grid.
	require.True(t, v.Select(engine.Day{Year: 2018, Month: 2, Day: 26}))
	v.SetGrid(mar, labels)
	day, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, engine.PreviousMonth, day.Membership)

	require.True(t, v.Select(engine.Day{Year: 2018, Month: 3, Day: 15}))
	v.SetGrid(feb, labels)
	_, ok = v.Selected()
	assert.False(t, ok, "a day missing from the new grid is dropped")

	assert.False(t, v.Select(engine.Day{Year: 2018, Month: 7, Day: 1}))
}

func TestMonthView_RowsSurviveNewGrid(t *testing.T) {
	test.NewApp()
	b := engine.NewBuilder(nil, nil)
	feb, err := b.BuildMonthGrid(2018, 2) // 5 weeks
	require.NoError(t, err)
	apr, err := b.BuildMonthGrid(2018, 4) // 6 weeks
	require.NoError(t, err)

	v := NewMonthView(DefaultStyle())
	var labels [config.DaysPerWeek]string
	v.SetGrid(apr, labels)
	old := v.Rows()
	firstOld := old[0].Week()

	v.SetGrid(feb, labels)
	require.Len(t, old, len(apr.Weeks))
	assert.Equal(t, firstOld, old[0].Week(), "earlier Rows are not overwritten")
	assert.Len(t, v.Rows(), len(feb.Weeks))
	assert.NotSame(t, old[0], v.Rows()[0])
}

func TestMonthView_Markers(t *testing.T) {
	test.NewApp()
	grid := february2018(t)

	cards := strings.Join([]string{
		"BEGIN:VCARD\nVERSION:3.0\nFN:Alice\nBDAY:1990-02-16\nEND:VCARD",
		"BEGIN:VCARD\nVERSION:3.0\nFN:Bob\nBDAY:1985-01-29\nEND:VCARD",
	}, "\n")
	markers, err := engine.LoadBirthdays(strings.NewReader(cards + "\n"))
	require.NoError(t, err)

	v := NewMonthView(DefaultStyle())
	var labels [config.DaysPerWeek]string
	v.SetGrid(grid, labels)
	v.SetMarkers(markers)

	rows := v.Rows()
	assert.True(t, rows[2].State().Marked[4], "Feb 16")
	assert.False(t, rows[0].State().Marked[0], "Jan 29 belongs to the previous month")

	today := grid.Weeks[2][2]
	v.SetToday(today)
	assert.Equal(t, 2, rows[2].State().Today)
	assert.Equal(t, NoCell, rows[1].State().Today)
}
