package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/cutout/internal/feedback"
	"github.com/csheth/cutout/internal/uistate"
)

// styles is rebuilt whenever the theme changes.
type styles struct {
	app          lipgloss.Style
	titleBar     lipgloss.Style
	title        lipgloss.Style
	tagline      lipgloss.Style
	chrome       lipgloss.Style
	menu         lipgloss.Style
	menuItem     lipgloss.Style
	menuActive   lipgloss.Style
	panel        lipgloss.Style
	sectionTitle lipgloss.Style
	helper       lipgloss.Style
	button       lipgloss.Style
	buttonActive lipgloss.Style
	dropZone     lipgloss.Style
	path         lipgloss.Style
	pathDim      lipgloss.Style
	errorText    lipgloss.Style
	statusBar    lipgloss.Style
	helpBox      lipgloss.Style
	toast        map[feedback.Kind]lipgloss.Style
	toastClose   lipgloss.Style
}

func newStyles(p uistate.Palette) styles {
	bg := lipgloss.Color(p.Background)
	surface := lipgloss.Color(p.Surface)
	border := lipgloss.Color(p.Border)
	text := lipgloss.Color(p.Text)
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Accent)

	toastBase := lipgloss.NewStyle().
		Foreground(text).
		Background(surface).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		Padding(0, 1).
		Width(toastWidth)

	return styles{
		app:          lipgloss.NewStyle().Foreground(text),
		titleBar:     lipgloss.NewStyle().Foreground(text).Background(surface).Padding(0, 1),
		title:        lipgloss.NewStyle().Bold(true).Foreground(accent).Background(surface),
		tagline:      lipgloss.NewStyle().Foreground(muted).Background(surface).Italic(true),
		chrome:       lipgloss.NewStyle().Foreground(muted).Background(surface).Padding(0, 1),
		menu:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1).Width(menuWidth),
		menuItem:     lipgloss.NewStyle().Foreground(muted),
		menuActive:   lipgloss.NewStyle().Bold(true).Foreground(bg).Background(accent),
		panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		sectionTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		helper:       lipgloss.NewStyle().Foreground(muted),
		button:       lipgloss.NewStyle().Foreground(text).Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		buttonActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		dropZone:     lipgloss.NewStyle().Foreground(muted).Border(lipgloss.DoubleBorder()).BorderForeground(border).Padding(1, 2).Align(lipgloss.Center),
		path:         lipgloss.NewStyle().Foreground(text),
		pathDim:      lipgloss.NewStyle().Foreground(muted).Faint(true),
		errorText:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		statusBar:    lipgloss.NewStyle().Foreground(bg).Background(accent).Padding(0, 1),
		helpBox:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
		toast: map[feedback.Kind]lipgloss.Style{
			feedback.KindInfo:    toastBase.BorderForeground(lipgloss.Color(p.Info)),
			feedback.KindSuccess: toastBase.BorderForeground(lipgloss.Color(p.Success)),
			feedback.KindError:   toastBase.BorderForeground(lipgloss.Color(p.Error)),
		},
		toastClose: lipgloss.NewStyle().Foreground(muted).Background(surface),
	}
}

func (s styles) toastStyle(kind feedback.Kind) lipgloss.Style {
	if style, ok := s.toast[kind]; ok {
		return style
	}
	return s.toast[feedback.KindInfo]
}

func toastIcon(kind feedback.Kind) string {
	switch kind {
	case feedback.KindSuccess:
		return "✔"
	case feedback.KindError:
		return "✖"
	default:
		return "ℹ"
	}
}
