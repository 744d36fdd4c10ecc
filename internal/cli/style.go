package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#2E86C1")).
	Padding(1, 5).
	MarginBottom(1).
	Align(lipgloss.Center).
	Border(lipgloss.RoundedBorder())

// banner renders the header printed at the top of every command.
func banner(mode string) string {
	return headerStyle.Render(fmt.Sprintf("Weather - %s\n\nVersion: %s", mode, Version))
}
