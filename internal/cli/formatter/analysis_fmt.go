package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// FormatAnalysis formats a dual-track analysis into the status dashboard.
func FormatAnalysis(v *contract.AnalysisView) string {
	var b strings.Builder

	b.WriteString(HealthIndicator(domain.HealthLevel(v.Status)))
	b.WriteString(Dim("  as of " + v.AnalysisDate))
	b.WriteString("\n\n")

	// Planned vs actual track.
	b.WriteString(Dim("Planned   ") + StyleFg.Render(FormatKg(v.PlannedWeightKg)) + "\n")
	b.WriteString(Dim("Actual    ") + Bold(FormatKg(v.ActualWeightKg)))
	b.WriteString(varianceLabel(v.VarianceKg, v.VariancePercent, v.ToleranceExceeded))
	b.WriteString("\n")
	b.WriteString(Dim("Tolerance ") + StyleFg.Render(fmt.Sprintf("±%.1f%%", v.TolerancePercent)) + "\n\n")

	// Trend line.
	b.WriteString(Dim("Trend     "))
	if v.Trend.Status == string(analysis.TrendFitted) {
		b.WriteString(Bold(fmt.Sprintf("%+.2f kg/week", v.Trend.SlopePerWeek)))
		b.WriteString(Dim(fmt.Sprintf("  (r²=%.2f over %dd)", v.Trend.R2, v.Trend.Days)))
	} else {
		b.WriteString(Dim("not enough data yet"))
	}
	b.WriteString("\n")

	if v.TrendDiverging && v.DivergenceMessage != "" {
		b.WriteString(StyleYellow.Render("  ⚠ "+v.DivergenceMessage) + "\n")
	}

	// Landing projection.
	b.WriteString(Dim("Landing   "))
	if v.LandingPoint.Status == string(analysis.LandingProjected) {
		b.WriteString(Bold(FormatKg(v.LandingPoint.WeightKg)))
		if parsed, err := time.Parse("2006-01-02", v.LandingPoint.Date); err == nil {
			b.WriteString(Dim(" around " + RelativeDate(parsed)))
		}
		if v.LandingPoint.OnTrackForGoal {
			b.WriteString("  " + StyleGreen.Render("reaches goal"))
		} else {
			b.WriteString("  " + StyleYellow.Render(FormatSigned(v.LandingPoint.VarianceFromGoalKg)+" from goal"))
		}
	} else {
		b.WriteString(Dim("not enough data yet"))
	}
	b.WriteString("\n")

	if v.RecalibrationNeeded {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("Recalibration suggested") + "\n")
		b.WriteString(formatOptions(v.Options))
	}

	return RenderBox("Status", b.String())
}

func varianceLabel(varianceKg, variancePct float64, exceeded bool) string {
	label := fmt.Sprintf("  %s (%.1f%%)", FormatSigned(varianceKg), variancePct)
	if exceeded {
		return StyleRed.Render(label)
	}
	return Dim(label)
}

func formatOptions(set contract.OptionSetView) string {
	switch set.Status {
	case string(analysis.OptionsPending):
		return Dim("Options pending — log a few more days for a stable trend.") + "\n"
	case string(analysis.OptionsNotNeeded):
		return ""
	}

	var b strings.Builder
	for _, opt := range set.Options {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StylePurple.Render(opt.Type),
			feasibilityPill(domain.Feasibility(opt.Feasibility)),
			Dim(opt.Impact),
		))
	}
	return b.String()
}

func feasibilityPill(f domain.Feasibility) string {
	switch f {
	case domain.FeasibilityAchievable:
		return StyleGreen.Render("[achievable]")
	case domain.FeasibilityModerate:
		return StyleYellow.Render("[moderate]")
	case domain.FeasibilityAmbitious:
		return StyleRed.Render("[ambitious]")
	default:
		return Dim("[" + string(f) + "]")
	}
}
