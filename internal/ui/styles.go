package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabUpcoming lipgloss.Style
	Indicator   lipgloss.Style
	Content     lipgloss.Style
	Title       lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Dim         lipgloss.Style
	Palette     lipgloss.Style
	PaletteSel  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1),
		TabUpcoming: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Padding(0, 1),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Content: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Palette: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		PaletteSel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true),
	}
}
