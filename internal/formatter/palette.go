package formatter

import "github.com/charmbracelet/lipgloss"

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a small stylesheet of named [lipgloss.Style] values used for terminal output.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
	box   lipgloss.Style
}

// NewPalette builds a [Palette] from foreground colors for titles, success, errors, warnings and muted text.
func NewPalette(title, ok, err, warn, muted string) *Palette {
	return &Palette{
		title: NewBold(title),
		ok:    NewBold(ok),
		err:   NewBold(err),
		warn:  NewStyle(warn),
		muted: NewStyle(muted).Italic(true),
		box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(muted)).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}
