package color

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestThemeVariants(t *testing.T) {
	pterm.EnableColor()

	t.Cleanup(func() {
		DarkTheme = false
	})

	DarkTheme = false
	assert.Equal(t, pterm.FgGreen.Sprint("completed"), Success("completed"))
	assert.Equal(t, pterm.FgRed.Sprint("abandoned"), Failure("abandoned"))

	DarkTheme = true
	assert.Equal(t, pterm.FgLightGreen.Sprint("completed"), Success("completed"))
	assert.Equal(t, pterm.FgLightBlue.Sprint("Summary"), Heading("Summary"))
	assert.Equal(t, pterm.FgLightCyan.Sprint(42), Figure(42))
}
