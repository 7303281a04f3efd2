// Command go-calendarview is the desktop month calendar with lunar dates,
// holidays and birthdays, plus an optional local iCalendar feed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
	"github.com/tartampluch/go-calendarview/internal/server"
	"github.com/tartampluch/go-calendarview/internal/ui"
)

// startup holds the parsed command line.
type startup struct {
	version bool
	debug   bool
	month   string
}

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the exit code so that deferred calls run before os.Exit.
func runMain(args []string) int {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		return config.ExitCodeError
	}
	if opts.version {
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	logFile := openLogFile()
	if logFile != nil {
		defer logFile.Close()
	}
	slog.SetDefault(newLogger(logWriter(logFile), opts.debug))

	page, err := openingPage(opts.month, engine.RealClock{})
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err)
		return config.ExitCodeError
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info(config.MsgAppStarting, startupAttrs()...)
	run(ctx, page)
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func parseFlags(args []string) (startup, error) {
	var s startup
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.BoolVar(&s.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&s.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.StringVar(&s.month, config.FlagMonth, "", config.FlagDescMonth)
	return s, fs.Parse(args)
}

// openingPage turns the -month flag into a page index. An empty value opens
// the current month.
func openingPage(month string, clock engine.Clock) (int, error) {
	var year, m int
	if month == "" {
		year, m, _ = engine.Today(clock)
	} else {
		t, err := time.Parse(config.DateFormatMonth, month)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %s", engine.ErrInvalidArgument, config.ErrDateParse, err)
		}
		year, m = t.Year(), int(t.Month())
	}

	page := engine.YearMonthToPage(year, m, config.BaseYear, config.BaseMonth)
	if page < 0 || page > ui.LastPage() {
		return 0, fmt.Errorf("%w: %04d-%02d", engine.ErrOutOfRange, year, m)
	}
	return page, nil
}

// run blocks until the window is quit or the process is signalled.
func run(ctx context.Context, page int) {
	a := app.NewWithID(config.AppID)
	prefs := a.Preferences()
	prefs.SetString(config.PrefLastRun, config.Version)

	// The window hands the feed its builder and birthday markers once they are loaded.
	srv := server.NewCalendarServer(prefs.StringWithFallback(config.PrefServerPort, config.DefaultPort), nil)

	gui := ui.NewGoCalendarApp(a, ctx, srv, engine.NewHTTPFetcher())
	gui.Page = page

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
}

func startupAttrs() []any {
	return []any{
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuilt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	}
}

// newLogger returns a JSON logger. Debug mode lowers the level and adds the
// call site.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
}

func logWriter(f *os.File) io.Writer {
	if f == nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, f)
}

// openLogFile truncates the log in the user cache dir. Failures are reported
// on stderr and leave logging on stdout only.
func openLogFile() *os.File {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrCacheDir, "", err)
		return nil
	}
	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrCreateDir, dir, err)
		return nil
	}

	path := filepath.Join(dir, config.LogFileName)
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, path, err)
		return nil
	}
	return f
}
