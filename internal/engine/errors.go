package engine

import (
	"errors"

	"github.com/tartampluch/go-calendarview/internal/config"
)

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// the wrapped message carries the offending value.
var (
	// ErrInvalidArgument reports a month outside 1-12 or a date that does not exist.
	ErrInvalidArgument = errors.New(config.ErrInvalidArgument)

	// ErrOutOfRange reports a date a collaborator cannot handle, such as a year
	// outside the lunar converter's table.
	ErrOutOfRange = errors.New(config.ErrOutOfRange)
)
