// Package telemetry wires up the structured logger shared by every core
// subsystem. It does not collect gameplay metrics (that is explicitly the
// renderer/UI collaborator's job per spec.md §6); it only configures how
// the core talks about itself.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log is the process-wide structured logger. It defaults to a
// human-readable console writer on stderr; call Configure to redirect it
// (e.g. to plain JSON for a production build) before Race_Init.
var Log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// Configure replaces the output writer and minimum level. Debug level is
// what spec.md §7 means by "logged at debug level if logging is
// configured" for pool exhaustion: that event always fires, it is simply
// filtered out unless the caller opts in. Invalid or version-mismatched
// packets are discarded without a log event.
func Configure(w io.Writer, level zerolog.Level) {
	Log = zerolog.New(w).With().Timestamp().Logger().Level(level)
}
