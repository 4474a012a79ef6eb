package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/breezeflow/breeze/internal/session"
)

const (
	padding  = 2
	maxWidth = 80
)

type style struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	sessions  map[session.Name]lipgloss.Style
}

func newStyle(colors map[session.Name]string, darkTheme bool) style {
	text := lipgloss.Color("#1F1F1F")
	if darkTheme {
		text = lipgloss.Color("#FFFDF5")
	}

	s := style{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#888B7E")),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		sessions:  make(map[session.Name]lipgloss.Style),
	}

	for _, name := range []session.Name{
		session.Work,
		session.ShortBreak,
		session.LongBreak,
	} {
		c := colors[name]
		if c == "" {
			c = "#B0DB43"
		}

		s.sessions[name] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(c)).
			Padding(0, 1).
			MarginRight(1)
	}

	return s
}

// session returns the label style of the named session.
func (s style) session(name session.Name) lipgloss.Style {
	if st, ok := s.sessions[name]; ok {
		return st
	}

	return s.sessions[session.Work]
}
