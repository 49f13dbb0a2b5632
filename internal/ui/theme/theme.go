// Package theme holds the terminal styles used by the CLI. Colors are
// downsampled or stripped when the output is not a terminal.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liftlog/internal/progression"
)

// Color palette
var (
	Primary   = lipgloss.Color("#F97316") // Orange
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

var rarityColors = map[progression.Rarity]lipgloss.Style{
	progression.RarityCommon:    lipgloss.NewStyle().Foreground(TextDim),
	progression.RarityRare:      lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	progression.RarityEpic:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7")),
	progression.RarityLegendary: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")).Bold(true),
}

// Rarity returns the style for an achievement rarity.
func Rarity(r progression.Rarity) lipgloss.Style {
	if s, ok := rarityColors[r]; ok {
		return s
	}
	return Dim
}
