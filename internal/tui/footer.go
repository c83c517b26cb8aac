package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ShortcutEntry pairs a mode key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // mode to match against active (empty = never highlighted)
	Label string
}

// RenderFooterBar renders a footer bar with shortcut labels.
// The shortcut matching active is rendered with StyleHighlight; others are dim.
func RenderFooterBar(shortcuts []ShortcutEntry, active string) string {
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		if active != "" && sc.Key == active {
			parts[i] = StyleHighlight.Render("[ " + sc.Label + " ]")
		} else {
			parts[i] = dimStyle.Render(sc.Label)
		}
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, dimStyle.Render(" • ")))
}
