// Package ui holds the terminal-facing concerns: header styling, TTY
// detection, and the slog fan-out handler used for --log.
package ui

import "github.com/fatih/color"

var headerStyle = color.New(color.Bold)

// Header formats the separator printed before a file's output when more
// than one file is shown. Bold on a terminal, plain bytes otherwise.
func Header(name string) string {
	return headerStyle.Sprintf("==> %s <==", name)
}

// DisableColor turns off all styling, leaving headers as plain text.
// Used when stdout is not a terminal or the config opts out.
func DisableColor() {
	color.NoColor = true
}
