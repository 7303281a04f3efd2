package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// kindKeys maps annotation categories to their translation keys.
var kindKeys = map[string]string{
	config.CategorySolarHoliday: config.TKeyKindSolar,
	config.CategoryLunarHoliday: config.TKeyKindLunar,
	config.CategorySolarTerm:    config.TKeyKindTerm,
	config.CategoryBirthday:     config.TKeyKindBirthday,
}

// MonthAnnotations returns the annotations of the displayed month.
func (app *GoCalendarApp) MonthAnnotations() ([]engine.Annotation, error) {
	year, month := engine.PageToYearMonth(app.Page, config.BaseYear, config.BaseMonth)
	grid, err := app.Builder.BuildMonthGrid(year, month)
	if err != nil {
		return nil, err
	}
	return engine.Annotations(grid, app.Markers()), nil
}

// KindLabel returns the localized name of an annotation category.
func (app *GoCalendarApp) KindLabel(category string) string {
	key, ok := kindKeys[category]
	if !ok {
		return category
	}
	return app.GetMsg(key)
}

// SortAnnotations orders rows by the given column. Equal rows keep their order.
func SortAnnotations(rows []engine.Annotation, col int, asc bool) {
	less := func(a, b engine.Annotation) bool {
		switch col {
		case config.ColIDKind:
			return a.Category < b.Category
		case config.ColIDSummary:
			return strings.ToLower(a.Summary) < strings.ToLower(b.Summary)
		default: // config.ColIDDate
			return a.Day.Time().Before(b.Day.Time())
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

// ShowAnnotationsWindow lists the holidays, festivals, solar terms and birthdays
// of the displayed month in a table sortable by clicking the headers.
func (app *GoCalendarApp) ShowAnnotationsWindow() {
	if app.annotationsWindow != nil {
		app.annotationsWindow.RequestFocus()
		return
	}

	rows, err := app.MonthAnnotations()
	if err != nil {
		slog.Error(config.ErrBuildGrid,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	year, month := engine.PageToYearMonth(app.Page, config.BaseYear, config.BaseMonth)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinAnnotations) + config.DetailSeparator + app.MonthTitle(year, month))
	w.Resize(fyne.NewSize(config.AnnotationsWinWidth, config.AnnotationsWinHeight))
	app.annotationsWindow = w

	slog.Info(config.MsgOpenWindow,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	sortCol := config.ColIDDate
	sortAsc := true

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), 3
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			a := rows[id.Row]
			switch id.Col {
			case config.ColIDDate:
				label.SetText(a.Day.String())
			case config.ColIDKind:
				label.SetText(app.KindLabel(a.Category))
			case config.ColIDSummary:
				label.SetText(a.Summary)
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDKind:
			titleKey = config.TKeyColKind
		case config.ColIDSummary:
			titleKey = config.TKeyColSummary
		}

		text := app.GetMsg(titleKey)
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol = id.Col
				sortAsc = true
			}
			SortAnnotations(rows, sortCol, sortAsc)
			slog.Debug(config.MsgTableSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, sortCol,
				config.LogKeySortAsc, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDKind, config.ColWidthKind)
	table.SetColumnWidth(config.ColIDSummary, config.ColWidthSummary)

	w.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	w.SetOnClosed(func() {
		app.annotationsWindow = nil
	})
	w.Show()
}
