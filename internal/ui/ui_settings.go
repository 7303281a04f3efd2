package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendarview/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect      *widget.Select
	weekStartSelect *widget.Select
	lunarCheck      *widget.Check
	holidayCheck    *widget.Check
	serveCheck      *widget.Check
	portEntry       *NumericalEntry
	sourceEntry     *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *GoCalendarApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeySettingsTitle))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- Display ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemWeek := widget.NewFormItem(app.GetMsg(config.TKeyLblWeekStart), sw.weekStartSelect)
	displayForm := widget.NewForm(itemLang, itemWeek)
	displayCard := widget.NewCard(app.GetMsg(config.TKeyLblDisplay), "",
		container.NewVBox(displayForm, sw.lunarCheck, sw.holidayCheck))

	// --- Birthdays ---
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.sourceEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})
	itemSource := widget.NewFormItem("", container.NewBorder(nil, nil, nil, browseBtn, sw.sourceEntry))
	itemSource.HintText = app.GetMsg(config.TKeyHelpBirthdays)
	birthdayCard := widget.NewCard(app.GetMsg(config.TKeyLblBirthdays), "", widget.NewForm(itemSource))

	// --- Feed ---
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "",
		container.NewVBox(sw.serveCheck, widget.NewForm(itemPort)))

	// --- Actions ---
	saveAction := func() {
		// Only the port blocks saving.
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		displayCard,
		birthdayCard,
		feedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

func (app *GoCalendarApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Lang)

	sw.weekStartSelect = widget.NewSelect(app.weekStartOptions(), nil)
	start := app.Builder.WeekStart
	sw.weekStartSelect.SetSelected(app.GetMsg(config.WeekdayKeys[start]))

	sw.lunarCheck = widget.NewCheck(app.GetMsg(config.TKeyLblShowLunar), nil)
	sw.lunarCheck.SetChecked(app.Preferences.BoolWithFallback(config.PrefShowLunar, true))
	sw.holidayCheck = widget.NewCheck(app.GetMsg(config.TKeyLblShowHol), nil)
	sw.holidayCheck.SetChecked(app.Preferences.BoolWithFallback(config.PrefShowHoliday, true))

	sw.sourceEntry = widget.NewEntry()
	sw.sourceEntry.SetPlaceHolder(config.PlaceholderSource)
	sw.sourceEntry.SetText(app.Preferences.String(config.PrefBirthdays))

	sw.serveCheck = widget.NewCheck(app.GetMsg(config.TKeyLblServeFeed), nil)
	sw.serveCheck.SetChecked(app.Preferences.BoolWithFallback(config.PrefServeFeed, false))

	sw.portEntry = NewNumericalEntry(config.PortEntryMaxLen)
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.portEntry.Validator = app.validatePort

	return sw
}

// weekStartOptions lists the localized weekday names, Sunday first.
func (app *GoCalendarApp) weekStartOptions() []string {
	opts := make([]string, len(config.WeekdayKeys))
	for i, key := range config.WeekdayKeys {
		opts[i] = app.GetMsg(key)
	}
	return opts
}

func (app *GoCalendarApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings persists the form and redraws the calendar with it.
func (app *GoCalendarApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	for i, opt := range app.weekStartOptions() {
		if opt == sw.weekStartSelect.Selected {
			app.Preferences.SetString(config.PrefWeekStart, config.WeekStartNames[i])
			break
		}
	}
	app.Preferences.SetBool(config.PrefShowLunar, sw.lunarCheck.Checked)
	app.Preferences.SetBool(config.PrefShowHoliday, sw.holidayCheck.Checked)
	app.Preferences.SetBool(config.PrefServeFeed, sw.serveCheck.Checked)
	app.Preferences.SetString(config.PrefBirthdays, strings.TrimSpace(sw.sourceEntry.Text))
	if sw.portEntry.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	}

	app.UpdateLocalizer()
	app.ApplyPreferences()
	app.RefreshTrayMenu()
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
		app.refreshView()
	}

	if w != nil {
		w.Close()
	}
}
