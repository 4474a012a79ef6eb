// Package color styles the command output of breeze. Each role has a
// brighter variant for dark terminals.
package color

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the bright variants.
var DarkTheme bool

type shade struct {
	light pterm.Color
	dark  pterm.Color
}

func (s shade) paint(a any) string {
	if DarkTheme {
		return s.dark.Sprint(a)
	}

	return s.light.Sprint(a)
}

var (
	success = shade{pterm.FgGreen, pterm.FgLightGreen}
	failure = shade{pterm.FgRed, pterm.FgLightRed}
	heading = shade{pterm.FgBlue, pterm.FgLightBlue}
	figure  = shade{pterm.FgCyan, pterm.FgLightCyan}
)

// Success styles completed focus sessions.
func Success(a any) string {
	return success.paint(a)
}

// Failure styles abandoned focus sessions.
func Failure(a any) string {
	return failure.paint(a)
}

func Heading(a any) string {
	return heading.paint(a)
}

// Figure styles the numbers in a report.
func Figure(a any) string {
	return figure.paint(a)
}
