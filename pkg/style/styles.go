package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(MovedColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(FailedColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(SkippedColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(PatternColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PatternColor).
			Background(SurfaceColor).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Indicator marks
const (
	SuccessMark = "✓"
	ErrorMark   = "✗"
	WarningMark = "!"
)

// SuccessIndicator renders the success mark
func SuccessIndicator() string { return SuccessStyle.Render(SuccessMark) }

// ErrorIndicator renders the error mark
func ErrorIndicator() string { return ErrorStyle.Render(ErrorMark) }

// WarningIndicator renders the warning mark
func WarningIndicator() string { return WarningStyle.Render(WarningMark) }

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// Bold renders s in bold
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// DisableColor turns off lipgloss and pterm styling, for output that is
// not a terminal
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}
