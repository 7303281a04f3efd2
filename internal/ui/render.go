package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// NoCell marks the absence of a selected or highlighted column.
const NoCell = -1

// RowState is the per-row interaction state that is not part of the style.
type RowState struct {
	Selected int // column of the selected day, NoCell if none
	Today    int // column of today, NoCell if not in this row
	Marked   [config.DaysPerWeek]bool
}

// EmptyRowState has nothing selected, highlighted or marked.
func EmptyRowState() RowState {
	return RowState{Selected: NoCell, Today: NoCell}
}

// SecondaryLabel returns the caption drawn under the day number.
func SecondaryLabel(day engine.Day, style Style) string {
	return day.Caption(style.ShowLunar, style.ShowHoliday)
}

// ColumnAt maps a horizontal position to a day column of a row of the given width.
// Positions outside the row are clamped to the first or last column.
func ColumnAt(x, width float32) int {
	if width <= 0 {
		return 0
	}
	col := int(x / (width / config.DaysPerWeek))
	if col < 0 {
		return 0
	}
	if col > config.DaysPerWeek-1 {
		return config.DaysPerWeek - 1
	}
	return col
}

// RenderWeek lays out the canvas objects of one week row. It only reads its
// arguments, so the same inputs always produce the same drawing.
func RenderWeek(week engine.Week, style Style, state RowState, size fyne.Size) []fyne.CanvasObject {
	cellW := size.Width / config.DaysPerWeek
	topH := style.TextSizeTop * config.LineHeightRatio
	bottomH := style.TextSizeBottom * config.LineHeightRatio

	block := topH
	if style.showsCaptions() {
		block += bottomH
	}
	numberY := (size.Height - block) / 2
	captionY := numberY + topH

	objects := make([]fyne.CanvasObject, 0, 3*config.DaysPerWeek+2)

	if valid(state.Selected) {
		bg := canvas.NewRectangle(style.SelectedBackground)
		side := min(cellW, size.Height)
		bg.CornerRadius = side / 2
		bg.Resize(fyne.NewSize(side, side))
		bg.Move(fyne.NewPos(float32(state.Selected)*cellW+(cellW-side)/2, (size.Height-side)/2))
		objects = append(objects, bg)
	}
	if valid(state.Today) && state.Today != state.Selected {
		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = style.TodayOutline
		outline.StrokeWidth = 1
		outline.Resize(fyne.NewSize(cellW, size.Height))
		outline.Move(fyne.NewPos(float32(state.Today)*cellW, 0))
		objects = append(objects, outline)
	}

	for i, day := range week {
		x := float32(i) * cellW

		number := canvas.NewText(strconv.Itoa(day.Day), numberColor(day, i, style, state))
		number.TextSize = style.TextSizeTop
		number.Alignment = fyne.TextAlignCenter
		number.Resize(fyne.NewSize(cellW, topH))
		number.Move(fyne.NewPos(x, numberY))
		objects = append(objects, number)

		// The selection disc covers the caption line.
		if style.showsCaptions() && i != state.Selected {
			if text := SecondaryLabel(day, style); text != "" {
				caption := canvas.NewText(text, style.SecondaryColor)
				caption.TextSize = style.TextSizeBottom
				caption.Alignment = fyne.TextAlignCenter
				caption.Resize(fyne.NewSize(cellW, bottomH))
				caption.Move(fyne.NewPos(x, captionY))
				objects = append(objects, caption)
			}
		}

		if state.Marked[i] {
			dot := canvas.NewCircle(style.MarkerColor)
			d := float32(2 * config.MarkerRadius)
			dot.Resize(fyne.NewSize(d, d))
			dot.Move(fyne.NewPos(x+cellW-2*d, d))
			objects = append(objects, dot)
		}
	}
	return objects
}

func numberColor(day engine.Day, col int, style Style, state RowState) color.Color {
	switch {
	case col == state.Selected:
		return style.SelectedTextColor
	case day.Membership == engine.CurrentMonth:
		return style.TextColor
	default:
		return style.OtherMonthColor
	}
}

func valid(col int) bool {
	return col >= 0 && col < config.DaysPerWeek
}
