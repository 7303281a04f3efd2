// Command calgrid prints month grids with lunar dates and holidays, and can
// serve the current month as an iCalendar feed.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rickar/cal/v2"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
	"github.com/tartampluch/go-calendarview/internal/locale"
)

// options carries the persistent flags and the settings they resolve to.
type options struct {
	configPath string
	lang       string
	weekStart  string
	noLunar    bool
	noHoliday  bool
	debug      bool

	settings *config.Settings
	clock    engine.Clock
	fetcher  engine.Fetcher
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(&options{clock: engine.RealClock{}, fetcher: engine.NewHTTPFetcher()}, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func newRootCmd(opts *options, logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CLIName,
		Short:         config.CmdRootShort,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(logOut, opts.debug)
			return opts.resolve(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)
	f.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	f.StringVar(&opts.weekStart, config.FlagWeekStart, "", config.FlagDescWeekStart)
	f.BoolVar(&opts.noLunar, config.FlagNoLunar, false, config.FlagDescNoLunar)
	f.BoolVar(&opts.noHoliday, config.FlagNoHoliday, false, config.FlagDescNoHoliday)
	f.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(newMonthCmd(opts), newDayCmd(opts), newServeCmd(opts))
	return root
}

// resolve loads the settings file and lets explicit flags override it.
func (o *options) resolve(cmd *cobra.Command) error {
	s, err := config.LoadSettings(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed(config.FlagLang) {
		s.Language = o.lang
	}
	if flags.Changed(config.FlagWeekStart) {
		wd, err := engine.ParseWeekStart(o.weekStart)
		if err != nil {
			return err
		}
		s.WeekStart = config.WeekStartNames[wd]
	}
	if flags.Changed(config.FlagNoLunar) {
		s.ShowLunar = !o.noLunar
	}
	if flags.Changed(config.FlagNoHoliday) {
		s.ShowHoliday = !o.noHoliday
	}
	if err := s.Validate(); err != nil {
		return err
	}
	o.settings = s
	return nil
}

// builder assembles the grid builder described by the settings.
func (o *options) builder() (*engine.Builder, error) {
	start, err := engine.ParseWeekStart(o.settings.WeekStart)
	if err != nil {
		return nil, err
	}
	extra := make([]*cal.Holiday, 0, len(o.settings.Holidays))
	for _, h := range o.settings.Holidays {
		hol, err := engine.FixedHoliday(h.Name, h.Month, h.Day)
		if err != nil {
			return nil, err
		}
		extra = append(extra, hol)
	}
	b := engine.NewBuilder(engine.NewSolarHolidayTable(extra...), engine.NewAlmanacConverter())
	b.WeekStart = start
	return b, nil
}

// weekdays returns the grid header in the configured language.
func (o *options) weekdays(b *engine.Builder) [config.DaysPerWeek]string {
	bundle, _ := locale.Load()
	return locale.Weekdays(i18n.NewLocalizer(bundle, o.settings.Language), b.WeekdayOrder())
}

// markers loads the configured birthday source, if any.
func (o *options) markers(ctx context.Context) (engine.Markers, error) {
	if o.settings.Birthdays == "" {
		return nil, nil
	}
	return engine.LoadBirthdaySource(ctx, o.fetcher, o.settings.Birthdays)
}

// setupLogging sends text logs to w. Only warnings are shown unless debug is set.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
}
