package tui

import (
	"github.com/spf13/cobra"
	"github.com/sternenweber/bookdesk/internal/util"
)

// ShouldUseTUI returns true if the command should start the interactive screen.
// That requires:
// - stdout is a TTY (not piped or redirected)
// - --no-interactive is not set
// - no --json output was requested
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}

	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}

	// --json means a script is reading the output
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return false
	}

	return true
}
