package app

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

type helpSection struct {
	title string
	body  string
}

// helpText builds the app help template. The placeholders are filled in by
// urfave/cli.
func helpText() string {
	flagNames := fmt.Sprintf(
		"{{range $element := .Aliases}}%s, {{end}}%s",
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	sections := []helpSection{
		{"DESCRIPTION", "\t\t{{.Usage}}"},
		{"USAGE", "\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}"},
		{"VERSION", "\t\t{{.Version}}"},
		{
			"COMMANDS",
			"{{range .Commands}}{{if not .HideHelp}}   " +
				pterm.Green("{{join .Names `, `}}") +
				"{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
		},
		{
			"OPTIONS",
			"{{range .VisibleFlags}}\t\t" + flagNames + "\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		},
		{"TIMER KEYS", keysHelp()},
		{"ENVIRONMENTAL VARIABLES", envHelp()},
	}

	var b strings.Builder

	for _, s := range sections {
		fmt.Fprintf(&b, "%s\n%s\n\n", pterm.Yellow(s.title), s.body)
	}

	return b.String()
}

func keysHelp() string {
	return `		space	start or pause the countdown
		r	rewind the current session
		s	skip to the next session
		q	quit (a running timer keeps counting and is picked up on the next start)`
}

func envHelp() string {
	return `		BREEZE_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

		BREEZE_ENV: use a separate set of config, database and log files (e.g. BREEZE_ENV=dev).

		BREEZE_<KEY>: override a config file value (e.g. BREEZE_WORK_DURATION=50m).`
}
