package preview

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/hackclub/hackatime-setup/logger"
)

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 80

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(logger.Purple70)).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Purple70)).Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Blue70))
	equalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Neutral90))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Green70))
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Neutral60)).Italic(true)
)

// TerminalWidth returns the width of stdout, or DefaultWidth.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Render draws the INI text highlighted inside a box no wider than
// maxWidth, wrapping lines that do not fit.
func Render(ini string, maxWidth int) string {
	lines := strings.Split(strings.TrimRight(ini, "\n"), "\n")

	widest := 0
	highlighted := make([]string, 0, len(lines))
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
		highlighted = append(highlighted, Highlight(line))
	}

	// Width counts padding but not the border
	inner := widest + boxStyle.GetHorizontalPadding()
	if limit := maxWidth - boxStyle.GetHorizontalBorderSize(); inner > limit && limit > boxStyle.GetHorizontalPadding() {
		inner = limit
	}

	return boxStyle.Width(inner).Render(strings.Join(highlighted, "\n"))
}

// Highlight colors a single INI line.
func Highlight(line string) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return line
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, ";"):
		return commentStyle.Render(line)
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return sectionStyle.Render(line)
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return line
	}

	// keep the spaces around "=" outside the colored spans
	keyPart := strings.TrimRight(key, " ")
	valuePart := strings.TrimLeft(value, " ")
	return keyStyle.Render(keyPart) +
		key[len(keyPart):] +
		equalStyle.Render("=") +
		value[:len(value)-len(valuePart)] +
		valueStyle.Render(valuePart)
}
