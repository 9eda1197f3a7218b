// Package logging sets up the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a slog.Logger backed by a charmbracelet/log handler writing to w
// (stderr when nil). Verbose lowers the level to debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "podbatch",
	})
	handler.SetLevel(log.InfoLevel)
	if verbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler)
}

// Setup installs the logger as the slog default and returns it.
func Setup(verbose bool) *slog.Logger {
	logger := New(nil, verbose)
	slog.SetDefault(logger)
	return logger
}
