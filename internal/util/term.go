package util

import (
	"os"

	"github.com/fatih/color"
)

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool { return isCharDevice(os.Stdout) }

// CanPrompt returns true if stdin is a terminal, so a y/N question can be
// answered instead of blocking a script.
func CanPrompt() bool { return isCharDevice(os.Stdin) }

// InitColor configures color output based on flags and terminal detection.
// NO_COLOR is honored by fatih/color itself.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}
