package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// FormatPlanList formats plans as a summary table.
func FormatPlanList(plans []contract.PlanView) string {
	headers := []string{"ID", "STATUS", "START", "GOAL", "WEEKS", "PACE", "STARTED"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		started := Dim(p.StartDate)
		if parsed, err := time.Parse("2006-01-02", p.StartDate); err == nil {
			started = StyleFg.Render(RelativeDate(parsed))
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			StatusPill(domain.PlanStatus(p.Status)),
			FormatKg(p.StartWeightKg),
			Bold(FormatKg(p.GoalWeightKg)),
			fmt.Sprintf("%d", p.DurationWeeks),
			FormatSigned(p.RequiredWeeklyChangeKg) + Dim("/wk"),
			started,
		})
	}

	return RenderTable(headers, rows)
}

// FormatPlan formats one plan with its weekly target schedule.
func FormatPlan(p contract.PlanView) string {
	var b strings.Builder

	b.WriteString(Bold(fmt.Sprintf("%s → %s over %d weeks",
		FormatKg(p.StartWeightKg), FormatKg(p.GoalWeightKg), p.DurationWeeks)))
	b.WriteString("\n")
	b.WriteString(StatusPill(domain.PlanStatus(p.Status)))
	if p.Status == string(domain.PlanActive) {
		b.WriteString(Dim(fmt.Sprintf("  week %d of %d", p.CurrentWeek, p.DurationWeeks)))
	}
	b.WriteString("\n\n")

	b.WriteString(Dim("Plan      ") + TruncID(p.ID) + "\n")
	b.WriteString(Dim("Dates     ") + StyleFg.Render(p.StartDate+" → "+p.EndDate))
	if p.PausedDays > 0 {
		b.WriteString(Dim(fmt.Sprintf("  (%dd paused)", p.PausedDays)))
	}
	b.WriteString("\n")
	b.WriteString(Dim("Pace      ") + Bold(FormatSigned(p.RequiredWeeklyChangeKg)) + Dim("/week") + "\n")
	b.WriteString(Dim("Tolerance ") + StyleFg.Render(fmt.Sprintf("%.1f%%", p.TolerancePercent)) + "\n")

	if len(p.Targets) > 0 {
		b.WriteString("\n")
		b.WriteString(formatTargetTable(p.Targets, p.CurrentWeek))
	}

	return RenderBox("Plan", b.String())
}

func formatTargetTable(targets []contract.TargetView, currentWeek int) string {
	headers := []string{"WK", "DATES", "WEIGHT", "INTAKE", "ACTUAL"}
	rows := make([][]string, 0, len(targets))

	for _, t := range targets {
		week := fmt.Sprintf("%d", t.WeekNumber)
		if t.WeekNumber == currentWeek {
			week = StyleGreen.Render("▸" + week)
		}

		actual := Dim("--")
		if t.ActualAvgWeightKg != nil {
			actual = StyleFg.Render(FormatKg(*t.ActualAvgWeightKg))
		}

		rows = append(rows, []string{
			week,
			Dim(t.StartDate + "–" + t.EndDate[5:]),
			FormatKg(t.ProjectedWeightKg),
			FormatKcal(t.ProjectedIntakeKcal),
			actual,
		})
	}

	return RenderTable(headers, rows)
}
