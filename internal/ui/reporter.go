// Package ui prints colour-coded status lines for a fetch run.
package ui

import (
	"fmt"
	"io"
	"os"
)

// Reporter writes one status line per event. Detail lines only appear in verbose mode.
type Reporter struct {
	out     io.Writer
	palette *Palette
	verbose bool
}

func NewReporter(out io.Writer, verbose bool) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out, palette: styles, verbose: verbose}
}

func (r *Reporter) Title(format string, args ...any) {
	r.line(r.palette.title.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) OK(format string, args ...any) {
	r.line(r.palette.ok.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Warn(format string, args ...any) {
	r.line(r.palette.warn.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Error(format string, args ...any) {
	r.line(r.palette.err.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Detail(format string, args ...any) {
	if !r.verbose {
		return
	}
	r.line(r.palette.muted.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Plain(format string, args ...any) {
	r.line(fmt.Sprintf(format, args...))
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.out, s)
}
