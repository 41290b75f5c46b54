// Package banner renders the start-up ASCII-art title.
package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4")).
	Bold(true)

// Art returns text drawn in the standard figlet font, without styling.
// Trailing blank lines are dropped.
func Art(text string) string {
	fig := figure.NewFigure(text, "", true)
	return strings.TrimRight(fig.String(), "\n ")
}

// Render returns the styled banner for text. Empty text renders nothing.
func Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return titleStyle.Render(Art(text))
}
