// Package logger exposes the process-wide zerolog logger used by every zoneMate command.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	log = New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// New builds a timestamped logger on w. The level is governed globally by SetLogLevel.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// GetLogger returns the shared logger. The pointer is stable for the life of the process.
func GetLogger() *zerolog.Logger {
	return &log
}

// SetLogLevel maps the count of -v flags to a level: 0 error, 1 warn, 2 info, 3 debug, 4+ trace.
func SetLogLevel(verboseCount int) {
	var level zerolog.Level
	switch {
	case verboseCount == 1:
		level = zerolog.WarnLevel
	case verboseCount == 2:
		level = zerolog.InfoLevel
	case verboseCount == 3:
		level = zerolog.DebugLevel
	case verboseCount >= 4:
		level = zerolog.TraceLevel
	default:
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
}

// Disable silences all logging, e.g. while a full screen UI owns the terminal.
func Disable() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
