package ui

import (
	"image/color"

	"github.com/tartampluch/go-calendarview/internal/config"
)

// Style is the immutable look of a week row. Widgets receive a copy and never
// mutate it; changing the look means passing a new Style.
type Style struct {
	TextColor          color.Color // day numbers of the displayed month
	OtherMonthColor    color.Color // day numbers borrowed from adjacent months
	SelectedTextColor  color.Color
	SecondaryColor     color.Color // lunar day and holiday captions
	SelectedBackground color.Color
	TodayOutline       color.Color
	MarkerColor        color.Color

	TextSizeTop    float32
	TextSizeBottom float32

	ShowLunar   bool
	ShowHoliday bool
}

// DefaultStyle mirrors a light theme with a blue selection disc.
func DefaultStyle() Style {
	return Style{
		TextColor:          color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff},
		OtherMonthColor:    color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff},
		SelectedTextColor:  color.White,
		SecondaryColor:     color.NRGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xff},
		SelectedBackground: color.NRGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff},
		TodayOutline:       color.NRGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff},
		MarkerColor:        color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
		TextSizeTop:        config.DefaultTextSizeTop,
		TextSizeBottom:     config.DefaultTextSizeBottom,
		ShowLunar:          true,
		ShowHoliday:        true,
	}
}

// WithCaptions returns a copy of s with the caption switches replaced.
func (s Style) WithCaptions(showLunar, showHoliday bool) Style {
	s.ShowLunar = showLunar
	s.ShowHoliday = showHoliday
	return s
}

func (s Style) showsCaptions() bool {
	return s.ShowLunar || s.ShowHoliday
}
