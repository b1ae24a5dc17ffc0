package formatter

import (
	"fmt"
	"strings"

	"github.com/abramin/Victus-sub005/internal/contract"
)

// FormatSnapshot formats one day's log with its computed layer.
func FormatSnapshot(v contract.SnapshotView) string {
	var b strings.Builder

	b.WriteString(Bold(v.Date))
	b.WriteString(Dim(fmt.Sprintf("  (revision %d)", v.Revision)))
	b.WriteString("\n\n")

	b.WriteString(Dim("Weight    ") + Bold(FormatKg(v.WeightKg)) + "\n")
	if v.IntakeKcal != nil {
		b.WriteString(Dim("Intake    ") + StyleFg.Render(FormatKcal(*v.IntakeKcal)) + "\n")
	}
	if v.BodyFatPercent != nil {
		b.WriteString(Dim("Body fat  ") + StyleFg.Render(fmt.Sprintf("%.1f%%", *v.BodyFatPercent)) + "\n")
	}
	if v.SleepHours != nil {
		b.WriteString(Dim("Sleep     ") + StyleFg.Render(fmt.Sprintf("%.1fh", *v.SleepHours)) + "\n")
	}
	if v.RestingHeartRate != nil {
		b.WriteString(Dim("RHR       ") + StyleFg.Render(fmt.Sprintf("%d bpm", *v.RestingHeartRate)) + "\n")
	}
	if v.Steps != nil {
		b.WriteString(Dim("Steps     ") + StyleFg.Render(fmt.Sprintf("%d", *v.Steps)) + "\n")
	}

	if v.EstimatedTDEE != nil {
		b.WriteString("\n")
		b.WriteString(Dim("Adaptive TDEE  ") + Bold(FormatKcal(*v.EstimatedTDEE)))
		if v.Confidence != nil {
			b.WriteString(Dim(fmt.Sprintf("  (confidence %.0f%%)", *v.Confidence*100)))
		}
		b.WriteString("\n")
	}

	if v.Targets != nil {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("Week %d target  ", v.Targets.WeekNumber)))
		b.WriteString(StyleFg.Render(FormatKg(v.Targets.TargetWeightKg)))
		b.WriteString(Dim(" at "))
		b.WriteString(StyleFg.Render(FormatKcal(v.Targets.TargetIntakeKcal)))
		b.WriteString("\n")
	}

	if v.TrainingSummary.SessionCount > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("Training  "))
		b.WriteString(Bold(fmt.Sprintf("%d session(s)", v.TrainingSummary.SessionCount)))
		b.WriteString(Dim(fmt.Sprintf("  %s, load %.0f, ~%s",
			FormatMinutes(v.TrainingSummary.TotalDurationMin),
			v.TrainingSummary.TotalLoad,
			FormatKcal(v.TrainingSummary.EstimatedKcal))))
		b.WriteString("\n")
		for _, s := range v.ActualSessions {
			line := fmt.Sprintf("  %s %s", StylePurple.Render(s.Type), FormatMinutes(s.DurationMin))
			if s.PerceivedIntensity != nil {
				line += Dim(fmt.Sprintf(" @ RPE %d", *s.PerceivedIntensity))
			}
			b.WriteString(line + "\n")
		}
	}

	return RenderBox("Log "+v.Date, b.String())
}

// FormatSnapshotList formats a date range of logs as a table.
func FormatSnapshotList(snaps []contract.SnapshotView) string {
	headers := []string{"DATE", "WEIGHT", "INTAKE", "TDEE", "TRAINING", "REV"}
	rows := make([][]string, 0, len(snaps))

	for _, v := range snaps {
		intake := Dim("--")
		if v.IntakeKcal != nil {
			intake = StyleFg.Render(FormatKcal(*v.IntakeKcal))
		}
		tdee := Dim("--")
		if v.EstimatedTDEE != nil {
			tdee = StyleFg.Render(FormatKcal(*v.EstimatedTDEE))
		}
		training := Dim("--")
		if v.TrainingSummary.SessionCount > 0 {
			training = StyleFg.Render(FormatMinutes(v.TrainingSummary.TotalDurationMin))
		}
		rows = append(rows, []string{
			Bold(v.Date),
			FormatKg(v.WeightKg),
			intake,
			tdee,
			training,
			Dim(fmt.Sprintf("%d", v.Revision)),
		})
	}

	return RenderTable(headers, rows)
}
