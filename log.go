package siemesh

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package logger. Degenerate-geometry warnings (oversized
// fillet radius, too few loft profiles, ...) are reported here instead of
// being raised as errors.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLogger replaces the package logger, e.g. to route kernel warnings into
// an embedding application's log stream.
func SetLogger(l zerolog.Logger) {
	logger = l
}
