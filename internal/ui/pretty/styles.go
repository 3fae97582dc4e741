// Package pretty provides Lipgloss-based styled output for the terminal
// summary. The deterministic report formats never go through here.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for CLI summary output.
type Styles struct {
	Title   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style

	Add    lipgloss.Style
	Remove lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates styles, plain when color is disabled.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title: plain, Value: plain, Success: plain, Failure: plain,
			Warning: plain, Add: plain, Remove: plain, Dim: plain, Bold: plain,
		}
	}
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Value:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Add:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Remove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// ColorEnabled decides whether to colorize for the given mode ("auto",
// "always", "never") and writer.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		file, ok := w.(*os.File)
		return ok && isatty.IsTerminal(file.Fd())
	}
}
