package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for a plan status.
func StatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanActive:
		return StyleGreen.Render("● Active")
	case domain.PlanPaused:
		return StyleYellow.Render("○ Paused")
	case domain.PlanCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.PlanAbandoned:
		return StyleDim.Render("✖ Abandoned")
	default:
		return StyleDim.Render(string(status))
	}
}

// DriftBadge returns a styled drift-direction label.
func DriftBadge(direction domain.DriftDirection) string {
	switch direction {
	case domain.DriftTDEEHigher:
		return StyleGreen.Render("▲ BURNING MORE") + Dim(" — adaptive TDEE above plan")
	case domain.DriftTDEELower:
		return StyleRed.Render("▼ BURNING LESS") + Dim(" — adaptive TDEE below plan")
	default:
		return StyleDim.Render(string(direction))
	}
}

// RelativeDateFrom returns a human-friendly relative date string from a
// reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// FormatKg renders a weight with one decimal place.
func FormatKg(kg float64) string {
	return fmt.Sprintf("%.1f kg", kg)
}

// FormatKcal renders an energy value rounded to whole kcal.
func FormatKcal(kcal float64) string {
	return fmt.Sprintf("%.0f kcal", kcal)
}

// FormatSigned renders a signed kg delta such as "+0.4 kg" or "-1.2 kg".
func FormatSigned(kg float64) string {
	return fmt.Sprintf("%+.1f kg", kg)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// PadRight pads s with spaces to the given visible width.
func PadRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
