// Package logging builds the process logger. Command output stays on stdout
// through fmt; diagnostics go through this logger on stderr.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "atom",
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// Discard returns a logger that drops everything, for tests and headless runs.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
