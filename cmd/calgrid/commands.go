package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
	"github.com/tartampluch/go-calendarview/internal/server"
	"github.com/tartampluch/go-calendarview/internal/textgrid"
)

func newMonthCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   config.CmdMonthUse,
		Short: config.CmdMonthShort,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := monthArgs(args, opts.clock)
			if err != nil {
				return err
			}
			b, err := opts.builder()
			if err != nil {
				return err
			}
			grid, err := b.BuildMonthGrid(year, month)
			if err != nil {
				return err
			}
			markers, err := opts.markers(cmd.Context())
			if err != nil {
				return err
			}
			return writeMonth(cmd.OutOrStdout(), format, b, grid, markers, opts)
		},
	}
	cmd.Flags().StringVarP(&format, config.FlagFormat, "f", config.FormatText, config.FlagDescFormat)
	return cmd
}

// monthArgs reads [year] [month]; missing values come from the clock.
func monthArgs(args []string, clock engine.Clock) (year, month int, err error) {
	year, month, _ = engine.Today(clock)
	if len(args) > 0 {
		if year, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, fmt.Errorf("%w: %s", engine.ErrInvalidArgument, err)
		}
	}
	if len(args) > 1 {
		if month, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, fmt.Errorf("%w: %s", engine.ErrInvalidArgument, err)
		}
	}
	return year, month, nil
}

func writeMonth(w io.Writer, format string, b *engine.Builder, grid engine.MonthGrid, markers engine.Markers, opts *options) error {
	switch format {
	case config.FormatText:
		y, m, d := engine.Today(opts.clock)
		return textgrid.Render(w, grid, opts.weekdays(b), textgrid.Options{
			ShowLunar:   opts.settings.ShowLunar,
			ShowHoliday: opts.settings.ShowHoliday,
			Markers:     markers,
			Today:       engine.Day{Year: y, Month: m, Day: d},
		})
	case config.FormatJSON:
		data, err := json.MarshalIndent(grid, "", "  ")
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatICS:
		data, err := engine.ExportICS(grid, markers, opts.clock.Now())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %s: %q", engine.ErrInvalidArgument, config.ErrUnknownFormat, format)
	}
}

func newDayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdDayUse,
		Short: config.CmdDayShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := time.Parse(config.DateFormatDisplay, args[0])
			if err != nil {
				return fmt.Errorf("%w: %s: %s", engine.ErrInvalidArgument, config.ErrDateParse, err)
			}
			b, err := opts.builder()
			if err != nil {
				return err
			}
			day, err := b.EnrichDay(t.Year(), int(t.Month()), t.Day())
			if err != nil {
				return err
			}
			markers, err := opts.markers(cmd.Context())
			if err != nil {
				return err
			}
			return writeDay(cmd.OutOrStdout(), day, markers.On(day.Year, day.Month, day.Day))
		},
	}
}

func writeDay(w io.Writer, day engine.Day, birthdays []string) error {
	var sb strings.Builder
	sb.WriteString(day.String() + " " + day.Time().Weekday().String() + "\n")

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, config.DayLineFormat, label, value)
		}
	}
	line(config.DayLabelLunar, day.LunarMonth+day.LunarDay)
	line(config.DayLabelTerm, day.SolarTerm)
	line(config.DayLabelHoliday, day.SolarHoliday)
	line(config.DayLabelFestival, day.LunarHoliday)
	line(config.DayLabelBirthday, strings.Join(birthdays, ", "))

	_, err := io.WriteString(w, sb.String())
	return err
}

func newServeCmd(opts *options) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   config.CmdServeUse,
		Short: config.CmdServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed(config.FlagPort) {
				opts.settings.Port = port
				if err := opts.settings.Validate(); err != nil {
					return err
				}
			}
			b, err := opts.builder()
			if err != nil {
				return err
			}
			srv := server.NewCalendarServer(opts.settings.ServerPort(), b)
			srv.Clock = opts.clock

			ctx := cmd.Context()
			markers, err := opts.markers(ctx)
			if err != nil {
				return err
			}
			srv.SetMarkers(markers)

			go follow(ctx, srv, opts.clock)
			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, config.FlagPort, "p", 0, config.FlagDescPort)
	return cmd
}

// follow publishes the current month and republishes it when the month turns.
func follow(ctx context.Context, srv *server.CalendarServer, clock engine.Clock) {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	publish := func() (int, int) {
		y, m, _ := engine.Today(clock)
		if err := srv.Publish(y, m); err != nil {
			log.Error(config.ErrPublishFeed, config.LogKeyError, err)
			return 0, 0
		}
		log.Info(config.MsgFeedPublished, config.LogKeyYear, y, config.LogKeyMonth, m)
		return y, m
	}

	year, month := publish()
	ticker := time.NewTicker(config.TodayCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if y, m, _ := engine.Today(clock); y != year || m != month {
				year, month = publish()
			}
		}
	}
}
