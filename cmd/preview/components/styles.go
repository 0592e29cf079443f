package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

// Layer palette, cycled by layer index
var LayerColors = []lipgloss.Color{
	lipgloss.Color("#C0C0C0"),
	lipgloss.Color("#04B575"),
	lipgloss.Color("#FFD700"),
	lipgloss.Color("#F25D94"),
	lipgloss.Color("#00BFFF"),
	lipgloss.Color("#FFA500"),
}

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1).
			Width(30)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	EmptyCellStyle = lipgloss.NewStyle().
			Foreground(DarkGray)
)

// Grid symbols
const (
	FloorSymbol = "█"
	EmptySymbol = "·"
)

// LayerColor returns the palette colour for the layer at index i.
func LayerColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return LayerColors[i%len(LayerColors)]
}
