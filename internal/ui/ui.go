package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
	"github.com/tartampluch/go-calendarview/internal/server"
)

// GoCalendarApp encapsulates the UI state, preferences, and background logic.
type GoCalendarApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Lang        string
	Ctx         context.Context

	Server  *server.CalendarServer // nil when the feed is disabled
	Fetcher engine.Fetcher
	Clock   engine.Clock
	Builder *engine.Builder

	Tray desktop.App
	Menu *fyne.Menu

	TrayTodayItem       *fyne.MenuItem
	TrayOpenItem        *fyne.MenuItem
	TrayAnnotationsItem *fyne.MenuItem
	TraySettingsItem    *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Page is the month shown in the main window, 0 being BaseYear/BaseMonth.
	Page int

	markersMut sync.RWMutex
	markers    engine.Markers
	today      engine.Day

	monthView   *MonthView
	titleLabel  *widget.Label
	detailLabel *widget.Label
	yearEntry   *NumericalEntry
	prevBtn     *widget.Button
	nextBtn     *widget.Button

	settingsWindow    fyne.Window
	annotationsWindow fyne.Window
}

// NewGoCalendarApp constructs the application and wires dependencies.
func NewGoCalendarApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, fetcher engine.Fetcher) *GoCalendarApp {
	app := &GoCalendarApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
	app.ApplyPreferences()
	app.Page = engine.YearMonthToPage(app.today.Year, app.today.Month, config.BaseYear, config.BaseMonth)
	return app
}

// Run launches the application services and the main UI loop.
func (app *GoCalendarApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	if app.Server != nil && app.Preferences.BoolWithFallback(config.PrefServeFeed, false) {
		go app.runServer()
	}

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowMainWindow()
	go app.backgroundWorker()
	app.App.Run()
}

func (app *GoCalendarApp) runServer() {
	slog.Info(config.MsgServerListen,
		config.LogKeyPort, app.Server.Port,
		config.LogKeyComponent, config.CompUI)

	if err := app.Server.Start(app.Ctx); err != nil {
		slog.Error(config.ErrServerStartup,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)

		app.App.SendNotification(fyne.NewNotification(
			config.TitleStartupError,
			fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
	}
}

// ApplyPreferences rebuilds the grid builder from the stored week start.
func (app *GoCalendarApp) ApplyPreferences() {
	name := app.Preferences.StringWithFallback(config.PrefWeekStart, config.DefaultWeekDay)
	start, err := engine.ParseWeekStart(name)
	if err != nil {
		slog.Warn(config.ErrInvalidWeekStart,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyValue, name,
			config.LogKeyError, err)
		start = time.Monday
	}

	b := engine.NewBuilder(engine.NewSolarHolidayTable(), engine.NewAlmanacConverter())
	b.WeekStart = start
	app.Builder = b
	if app.Server != nil {
		app.Server.SetBuilder(b)
	}
	app.refreshToday()

	slog.Debug(config.MsgPrefsApplied,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWeekStart, start.String(),
		config.LogKeyLang, app.Lang)
}

// Style returns the look selected in the preferences.
func (app *GoCalendarApp) Style() Style {
	return DefaultStyle().WithCaptions(
		app.Preferences.BoolWithFallback(config.PrefShowLunar, true),
		app.Preferences.BoolWithFallback(config.PrefShowHoliday, true),
	)
}

// Markers returns the loaded birthdays.
func (app *GoCalendarApp) Markers() engine.Markers {
	app.markersMut.RLock()
	defer app.markersMut.RUnlock()
	return app.markers
}

func (app *GoCalendarApp) setMarkers(m engine.Markers) {
	app.markersMut.Lock()
	app.markers = m
	app.markersMut.Unlock()
	if app.Server != nil {
		app.Server.SetMarkers(m)
	}
}

// Today returns the enriched current date as of the last refresh.
func (app *GoCalendarApp) Today() engine.Day { return app.today }

// refreshToday reports whether the date moved since the previous call.
func (app *GoCalendarApp) refreshToday() bool {
	y, m, d := engine.Today(app.Clock)
	day, err := app.Builder.EnrichDay(y, m, d)
	if err != nil {
		// Outside the lunar range: keep the plain date.
		day = engine.Day{Year: y, Month: m, Day: d, Membership: engine.CurrentMonth}
	}
	changed := !day.Equal(app.today)
	app.today = day
	return changed
}

// ShowMainWindow opens the month window, creating it on first use.
func (app *GoCalendarApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))

	app.monthView = NewMonthView(app.Style())
	app.monthView.OnDaySelected = app.onDaySelected

	app.titleLabel = widget.NewLabel("")
	app.titleLabel.Alignment = fyne.TextAlignCenter
	app.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	app.detailLabel = widget.NewLabel("")
	app.detailLabel.Wrapping = fyne.TextWrapWord

	app.prevBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() { app.showError(app.PrevMonth()) })
	app.nextBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() { app.showError(app.NextMonth()) })
	todayBtn := widget.NewButton(app.GetMsg(config.TKeyBtnToday), func() { app.showError(app.GoToday()) })

	app.yearEntry = NewNumericalEntry(config.YearEntryMaxLen)
	app.yearEntry.SetPlaceHolder(app.GetMsg(config.TKeyLblYear))
	goYear := func() {
		year, _ := app.yearEntry.Value() // zero is out of range
		app.showError(app.GoToYear(year))
	}
	app.yearEntry.OnSubmitted = func(string) { goYear() }
	goBtn := widget.NewButton(app.GetMsg(config.TKeyBtnGo), goYear)

	top := container.NewBorder(nil, nil, app.prevBtn, app.nextBtn, app.titleLabel)
	nav := container.NewBorder(nil, nil, todayBtn, goBtn, app.yearEntry)
	bottom := container.NewVBox(app.detailLabel, nav)

	w.SetContent(container.NewBorder(top, bottom, nil, nil, app.monthView))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	if app.Tray != nil {
		w.SetCloseIntercept(w.Hide)
	}
	app.Window = w

	app.showError(app.GoToPage(app.Page))
	w.Show()
}

// LastPage returns the index of the last month whose grid stays inside the
// lunar range. December of LunarMaxYear spills into the following year.
func LastPage() int {
	return engine.PageCount(config.BaseYear, config.BaseMonth, config.LunarMaxYear, config.MonthsPerYear-1) - 1
}

// GoToPage shows the month at page index.
func (app *GoCalendarApp) GoToPage(page int) error {
	if page < 0 || page > LastPage() {
		return fmt.Errorf("%w: page %d", engine.ErrOutOfRange, page)
	}
	year, month := engine.PageToYearMonth(page, config.BaseYear, config.BaseMonth)
	grid, err := app.Builder.BuildMonthGrid(year, month)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBuildGrid, err)
	}
	app.Page = page

	slog.Debug(config.MsgPageChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPage, page,
		config.LogKeyYear, year,
		config.LogKeyMonth, month)

	app.render(grid)
	return nil
}

func (app *GoCalendarApp) render(grid engine.MonthGrid) {
	if app.monthView == nil {
		return
	}
	app.monthView.SetStyle(app.Style())
	app.monthView.SetGrid(grid, app.WeekdayLabels(app.Builder.WeekdayOrder()))
	app.monthView.SetToday(app.today)
	app.monthView.SetMarkers(app.Markers())

	app.titleLabel.SetText(app.MonthTitle(grid.Year, grid.Month))
	if day, ok := app.monthView.Selected(); ok {
		app.detailLabel.SetText(app.DayDetail(day))
	} else {
		app.detailLabel.SetText("")
	}

	if app.Page <= 0 {
		app.prevBtn.Disable()
	} else {
		app.prevBtn.Enable()
	}
	if app.Page >= LastPage() {
		app.nextBtn.Disable()
	} else {
		app.nextBtn.Enable()
	}
}

// NextMonth pages forward.
func (app *GoCalendarApp) NextMonth() error { return app.GoToPage(app.Page + 1) }

// PrevMonth pages backward.
func (app *GoCalendarApp) PrevMonth() error { return app.GoToPage(app.Page - 1) }

// GoToday shows the current month and selects today.
func (app *GoCalendarApp) GoToday() error {
	app.refreshToday()
	page := engine.YearMonthToPage(app.today.Year, app.today.Month, config.BaseYear, config.BaseMonth)
	if err := app.GoToPage(page); err != nil {
		return err
	}
	if app.monthView != nil && app.monthView.Select(app.today) {
		app.onDaySelected(app.today)
	}
	return nil
}

// GoToYear keeps the displayed month and switches to year.
func (app *GoCalendarApp) GoToYear(year int) error {
	if year < config.BaseYear || year > config.LunarMaxYear {
		return fmt.Errorf("%w: year %d", engine.ErrOutOfRange, year)
	}
	_, month := engine.PageToYearMonth(app.Page, config.BaseYear, config.BaseMonth)
	return app.GoToPage(engine.YearMonthToPage(year, month, config.BaseYear, config.BaseMonth))
}

func (app *GoCalendarApp) onDaySelected(day engine.Day) {
	if app.detailLabel != nil {
		app.detailLabel.SetText(app.DayDetail(day))
	}
}

// DayDetail describes a day for the status line under the grid.
func (app *GoCalendarApp) DayDetail(day engine.Day) string {
	var parts []string
	if day.LunarMonth != "" && app.Preferences.BoolWithFallback(config.PrefShowLunar, true) {
		parts = append(parts, day.LunarMonth+day.LunarDay)
	}
	for _, s := range []string{day.SolarHoliday, day.LunarHoliday, day.SolarTerm} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, app.Markers().On(day.Year, day.Month, day.Day)...)

	return app.GetMsgData(config.TKeyLblSelected, map[string]any{
		"Date":   day.String(),
		"Detail": strings.Join(parts, config.DetailSeparator),
	})
}

// showError reports a navigation failure in the status line.
func (app *GoCalendarApp) showError(err error) {
	if err == nil || app.detailLabel == nil {
		return
	}
	slog.Debug(config.ErrBuildGrid, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	app.detailLabel.SetText(app.GetMsgData(config.TKeyErrYear, map[string]any{
		"Min": config.BaseYear,
		"Max": config.LunarMaxYear,
	}))
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *GoCalendarApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefBirthdays:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *GoCalendarApp) setupTrayMenu() {
	app.TrayTodayItem = fyne.NewMenuItem(app.TrayLabel(), func() {
		app.ShowMainWindow()
		app.showError(app.GoToday())
	})
	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), app.ShowMainWindow)
	app.TrayAnnotationsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuAnnotations), app.ShowAnnotationsWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayTodayItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TrayAnnotationsItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *GoCalendarApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayTodayItem.Label = app.TrayLabel()
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TrayAnnotationsItem.Label = app.GetMsg(config.TKeyMenuAnnotations)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// TrayLabel returns today's date with its lunar date and festival.
func (app *GoCalendarApp) TrayLabel() string {
	d := app.today
	if d.Day == 0 {
		return config.FallbackTrayLabel
	}
	lunar := d.LunarMonth + d.LunarDay
	if d.LunarHoliday != "" {
		lunar += config.DetailSeparator + d.LunarHoliday
	}
	label := app.GetMsgData(config.TKeyTrayToday, map[string]any{
		"Date":  d.String(),
		"Lunar": lunar,
	})
	if label == config.TKeyTrayToday {
		return config.FallbackTrayLabel
	}
	return strings.TrimSpace(label)
}

// refreshView redraws the current page and the tray. It must run on the UI goroutine.
func (app *GoCalendarApp) refreshView() {
	app.showError(app.GoToPage(app.Page))
	app.RefreshTrayMenu()
}

// backgroundWorker reloads birthdays on preference changes and follows the date.
func (app *GoCalendarApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.ReloadBirthdays()
	app.PublishFeed()
	fyne.Do(app.refreshView)

	ticker := time.NewTicker(config.TodayCheckInterval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			app.ReloadBirthdays()
			app.PublishFeed()
			fyne.Do(app.refreshView)

		case <-ticker.C:
			fyne.Do(func() {
				if app.refreshToday() {
					log.Info(config.MsgDayChanged, config.LogKeyDate, app.today.String())
					app.refreshView()
					go app.PublishFeed()
				}
			})
		}
	}
}

// ReloadBirthdays reads the configured vCard source into the markers. A failed
// load keeps the previous markers.
func (app *GoCalendarApp) ReloadBirthdays() {
	source := strings.TrimSpace(app.Preferences.String(config.PrefBirthdays))
	if source == "" {
		app.setMarkers(nil)
		return
	}
	start := time.Now()
	m, err := engine.LoadBirthdaySource(app.Ctx, app.Fetcher, source)
	if err != nil {
		slog.Error(config.ErrLoadBirthdays,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.setMarkers(m)
	slog.Debug(config.MsgBirthdaysLoaded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(m),
		config.LogKeyDuration, time.Since(start).Milliseconds())
}

// PublishFeed renders the current month on the feed server.
func (app *GoCalendarApp) PublishFeed() {
	if app.Server == nil {
		return
	}
	y, m, _ := engine.Today(app.Clock)
	if err := app.Server.Publish(y, m); err != nil {
		slog.Error(config.ErrPublishFeed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	slog.Debug(config.MsgFeedPublished,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYear, y,
		config.LogKeyMonth, m)
}

func fallbackMonthTitle(name string, year int) string {
	return fmt.Sprintf(config.FallbackMonthTitle, name, year)
}
