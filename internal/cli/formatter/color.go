package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthColor returns the style corresponding to a plan health level.
func HealthColor(h domain.HealthLevel) lipgloss.Style {
	switch h {
	case domain.HealthCritical, domain.HealthOffTrack:
		return StyleRed
	case domain.HealthAtRisk:
		return StyleYellow
	case domain.HealthOnTrack:
		return StyleGreen
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored health indicator such as "● ON TRACK".
func HealthIndicator(h domain.HealthLevel) string {
	switch h {
	case domain.HealthCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.HealthOffTrack:
		return StyleRed.Render("● OFF TRACK")
	case domain.HealthAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.HealthOnTrack:
		return StyleGreen.Render("● ON TRACK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// ZoneIndicator returns a colored training-load zone indicator.
func ZoneIndicator(z domain.LoadZone) string {
	switch z {
	case domain.ZoneOverload:
		return StyleRed.Render("▲ OVERLOAD")
	case domain.ZoneHigh:
		return StyleYellow.Render("● HIGH")
	case domain.ZoneOptimal:
		return StyleGreen.Render("● OPTIMAL")
	default:
		return StyleDim.Render(string(z))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
