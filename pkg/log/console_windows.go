//go:build windows
// +build windows

package log

import (
	"os"

	"golang.org/x/sys/windows"
)

func init() {
	// Enable ANSI escape processing so the charm styles render on the
	// legacy console.
	h := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err == nil {
		windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	}
}

func clearLine() {
	os.Stderr.WriteString("\r")
}
