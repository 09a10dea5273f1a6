package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
	faint    lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	modal    lipgloss.Style
	toastOK  lipgloss.Style
	toastErr lipgloss.Style
}

func NewPalette(t, s, e, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		help:     NewEm(h),
		faint:    NewStyle(h).Faint(true),
		tab:      NewStyle(h).Padding(0, 1),
		tabOn:    NewBold(t).Padding(0, 1).Underline(true),
		modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2),
		toastOK:  NewBanner(s),
		toastErr: NewBanner(e),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// NewBanner is white text on bg, used for notifications.
func NewBanner(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(bg)).Padding(0, 2)
}
