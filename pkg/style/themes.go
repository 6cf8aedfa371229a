package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color adapts to light and dark terminals.
var (
	// Outcomes
	MovedColor   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	SkippedColor = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFB74D"}
	FailedColor  = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}

	// Vault paths and rule patterns
	PathColor    = lipgloss.AdaptiveColor{Light: "#5E35B1", Dark: "#B39DDB"}
	PatternColor = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}

	HeadingColor = lipgloss.AdaptiveColor{Light: "#1B1B1B", Dark: "#FAFAFA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	SurfaceColor = lipgloss.AdaptiveColor{Light: "#F1F1F1", Dark: "#262626"}
	BorderColor  = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#424242"}
)
