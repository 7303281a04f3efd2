package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
	"github.com/tartampluch/go-calendarview/internal/ui"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestParseFlags(t *testing.T) {
	s, err := parseFlags([]string{"-debug", "-month", "2018-02"})
	require.NoError(t, err)
	assert.True(t, s.debug)
	assert.False(t, s.version)
	assert.Equal(t, "2018-02", s.month)

	_, err = parseFlags([]string{"-bogus"})
	assert.Error(t, err)
}

func TestOpeningPage(t *testing.T) {
	clock := fixedClock(time.Date(2018, 2, 14, 9, 0, 0, 0, time.UTC))
	feb2018 := engine.YearMonthToPage(2018, 2, config.BaseYear, config.BaseMonth)

	tests := []struct {
		name    string
		month   string
		want    int
		wantErr error
	}{
		{"Today", "", feb2018, nil},
		{"Explicit", "2018-02", feb2018, nil},
		{"First", "1901-01", 0, nil},
		{"Last", "2100-11", ui.LastPage(), nil},
		{"TooEarly", "1900-12", 0, engine.ErrOutOfRange},
		{"TooLate", "2100-12", 0, engine.ErrOutOfRange},
		{"Garbage", "feb", 0, engine.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := openingPage(tt.month, clock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.Contains(t, out.String(), config.AppName)
	assert.Contains(t, out.String(), config.Version)
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	quiet := newLogger(&out, false)
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))
	assert.True(t, quiet.Enabled(ctx, slog.LevelInfo))

	verbose := newLogger(&out, true)
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))

	quiet.Info("hello", config.LogKeyComponent, config.CompMain)
	assert.Contains(t, out.String(), `"msg":"hello"`)
}

func TestRunMain_Version(t *testing.T) {
	assert.Equal(t, config.ExitCodeSuccess, runMain([]string{"-version"}))
	assert.Equal(t, config.ExitCodeSuccess, runMain([]string{"-h"}))
	assert.Equal(t, config.ExitCodeError, runMain([]string{"-nope"}))
}
