package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/hackclub/hackatime-setup/logger"
)

const sample = `[settings]
api_url = https://hackatime.hackclub.com/api/hackatime/v1
api_key = 123e4567-e89b-42d3-a456-426614174000

# help with config
`

func TestRenderKeepsContent(t *testing.T) {
	out := ansi.Strip(Render(sample, 200))

	assert.Contains(t, out, "[settings]")
	assert.Contains(t, out, "api_url = https://hackatime.hackclub.com/api/hackatime/v1")
	assert.Contains(t, out, "# help with config")
	assert.True(t, strings.HasPrefix(out, "╭"), "box should use rounded corners")
}

func TestRenderFitsContent(t *testing.T) {
	out := Render(sample, 200)

	// widest line, padding and border
	assert.Equal(t, len("api_url = https://hackatime.hackclub.com/api/hackatime/v1")+4, lipgloss.Width(out))
}

func TestRenderWrapsToWidth(t *testing.T) {
	out := Render(sample, 40)

	assert.LessOrEqual(t, lipgloss.Width(out), 40)
	assert.Contains(t, ansi.Strip(out), "api_key")
}

func TestHighlightPreservesText(t *testing.T) {
	for _, line := range []string{
		"[settings]",
		"api_key = abc",
		"hostname=QWERTY",
		"# comment",
		"; comment",
		"",
		"not a pair",
	} {
		assert.Equal(t, line, ansi.Strip(Highlight(line)), line)
	}
}

func TestStylesUseLoggerPalette(t *testing.T) {
	assert.Equal(t, lipgloss.Color(logger.Purple70), boxStyle.GetBorderTopForeground())
	assert.Equal(t, lipgloss.Color(logger.Purple70), sectionStyle.GetForeground())
	assert.Equal(t, lipgloss.Color(logger.Blue70), keyStyle.GetForeground())
	assert.Equal(t, lipgloss.Color(logger.Green70), valueStyle.GetForeground())
	assert.Equal(t, lipgloss.Color(logger.Neutral60), commentStyle.GetForeground())
}
