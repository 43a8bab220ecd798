package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every styled line in the program.
const (
	Neutral90 = "#dfdae1"
	Neutral60 = "#94879b"
	Purple70  = "#c289e6"
	Blue70    = "#71b8ef"
	Green70   = "#77cf8f"
	Yellow70  = "#ebba00"
	Red70     = "#ff8091"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

var style = lipgloss.NewStyle().
	Bold(true).
	PaddingLeft(4).
	Width(80)

// SetOutput redirects every log line to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Output returns the writer log lines currently go to.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func Info(a ...any) {
	message := getFormattedMessage(a...)
	Infof("%s", message)
}

func Warn(a ...any) {
	message := getFormattedMessage(a...)
	Warnf("%s", message)
}

func Success(a ...any) {
	message := getFormattedMessage(a...)
	Successf("%s", message)
}

func Dim(a ...any) {
	message := getFormattedMessage(a...)
	Dimf("%s", message)
}

func Infof(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	writeLine(style.
		Foreground(lipgloss.Color(Blue70)).
		Render("[INFO] " + message))
}

func Warnf(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	writeLine(style.
		Foreground(lipgloss.Color(Yellow70)).
		Render("[WARN] " + message))
}

func Successf(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	writeLine(style.
		Foreground(lipgloss.Color(Green70)).
		Render("✔ " + message))
}

// Dimf prints secondary text without a level prefix.
func Dimf(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	writeLine(style.
		Bold(false).
		Foreground(lipgloss.Color(Neutral60)).
		Render(message))
}

func Error(a ...any) {
	message := getFormattedMessage(a...)
	formattedMessage := style.
		Foreground(lipgloss.Color(Red70)).
		PaddingTop(1).
		PaddingBottom(1).
		Render("[ERROR] " + message)

	writeLine(formattedMessage)
}

// Plain prints s as is, for pre-rendered blocks such as the config preview.
func Plain(s string) {
	writeLine(s)
}

func writeLine(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

func getFormattedMessage(a ...any) string {
	if len(a) < 1 {
		return ""
	} else if str, ok := a[0].(string); ok {
		return fmt.Sprintf(str, a[1:]...)
	} else if err, ok := a[0].(error); ok {
		return err.Error()
	}
	return fmt.Sprint(a...)
}
