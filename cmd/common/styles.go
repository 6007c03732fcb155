package common

import (
	"fjacquet/spendlog/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the terminal styles of one theme.
type Styles struct {
	Match   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Good    lipgloss.Style
	Warning lipgloss.Style
	Bar     lipgloss.Style
}

// StylesFor returns the styles matching the theme setting.
func StylesFor(theme string) Styles {
	if theme == models.ThemeDark {
		return Styles{
			Match:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#f9e2af")),
			Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
			Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
			Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8")),
			Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")),
		}
	}
	return Styles{
		Match:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#fff3a3")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e66f5")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6c6f85")),
		Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("#40a02b")),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d20f39")),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#209fb5")),
	}
}
