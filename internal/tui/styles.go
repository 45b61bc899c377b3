package tui

import (
	"os"
	"strings"

	"github.com/Makepad-fr/tada-remote/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	buttonStyle         = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	buttonFocusedStyle  = buttonStyle.Reverse(true)
	buttonDisabledStyle = buttonStyle.Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// checkbox returns the theme glyph for a checked or unchecked box.
func checkbox(checked bool) string {
	if checked {
		return ui.Current().BoxChecked
	}
	return ui.Current().BoxUnchecked
}

func button(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return buttonDisabledStyle.Render(label)
	case focused:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func panelString(inner string) string {
	return panelStyle.Render(inner)
}

// applyColorProfile drops colors for NO_COLOR and the mono theme, and otherwise
// follows the terminal's capabilities.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || ui.Current().Name == "mono" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
