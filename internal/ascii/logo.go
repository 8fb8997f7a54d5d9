package ascii

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Logo returns the brparser ascii logo
func Logo() string {
	return `
  ____       ____
 | __ ) _ __|  _ \ __ _ _ __ ___  ___ _ __
 |  _ \| '__| |_) / _' | '__/ __|/ _ \ '__|
 | |_) | |  |  __/ (_| | |  \__ \  __/ |
 |____/|_|  |_|   \__,_|_|  |___/\___|_|

`
}

// LogoHelp returns the logo, with help
func LogoHelp(s string) string {
	return Logo() + "\n\n" + s
}

// Markdown renders markdown to a terminal friendly string.
func Markdown(s string) string {
	out, err := glamour.Render(s, "dark")
	if err != nil {
		return s
	}
	return strings.Trim(out, "\n")
}

// ScapeAnsi removes ANSI escape sequences, for logfile output.
func ScapeAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// HideCursor hides the terminal cursor while the spinner is running.
func HideCursor() {
	fmt.Print("\x1b[?25l")
}

// ShowCursor restores the terminal cursor.
func ShowCursor() {
	fmt.Print("\x1b[?25h")
}

// ClearLine clears the current terminal line.
func ClearLine() {
	fmt.Print("\x1b[2K\r")
}
