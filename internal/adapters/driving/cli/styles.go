package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme is the colour palette of the text report.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles are the lipgloss styles used to render reports.
type Styles struct {
	// Title for the report heading.
	Title lipgloss.Style

	// Section for each analysis heading.
	Section lipgloss.Style

	// Label for field names and column headers.
	Label lipgloss.Style

	// Muted for secondary detail.
	Muted lipgloss.Style

	// Significant marks correlations with p < 0.05.
	Significant lipgloss.Style

	// Warning marks skipped nights and uncalculated results.
	Warning lipgloss.Style

	// Error marks parse failures.
	Error lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Label:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		Significant: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Warning:     lipgloss.NewStyle().Foreground(theme.Warning),
		Error:       lipgloss.NewStyle().Foreground(theme.Error),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:       plain,
		Section:     plain,
		Label:       plain,
		Muted:       plain,
		Significant: plain,
		Warning:     plain,
		Error:       plain,
	}
}

// stylesFor colours output only when it goes to a terminal.
func stylesFor(w io.Writer) *Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewStyles(nil)
	}
	return PlainStyles()
}
