package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#5F87FF", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette holds the styles used for per-file status lines.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

func NewPalette(t, s, e, w, m string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewBold(w),
		muted: NewStyle(m).Faint(true),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}
