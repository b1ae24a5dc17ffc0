package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abramin/Victus-sub005/internal/contract"
)

func sampleAnalysis() *contract.AnalysisView {
	return &contract.AnalysisView{
		PlanID:           "plan-1",
		AnalysisDate:     "2026-02-28",
		PlannedWeightKg:  78.3,
		ActualWeightKg:   79.6,
		VarianceKg:       1.3,
		VariancePercent:  28.0,
		TolerancePercent: 3.0,
		Status:           "off_track",
		Trend: contract.TrendView{
			Status:       "fitted",
			SlopePerWeek: -0.07,
			R2:           0.91,
			Days:         14,
		},
		LandingPoint: contract.LandingView{
			Status:             "projected",
			WeightKg:           79.3,
			Date:               "2026-04-26",
			VarianceFromGoalKg: 4.3,
			OnTrackForGoal:     false,
		},
		ToleranceExceeded:   true,
		RecalibrationNeeded: true,
		Options: contract.OptionSetView{
			Status: "computed",
			Options: []contract.OptionView{
				{Type: "extend_timeline", Feasibility: "Achievable", NewParameter: "23 weeks", Impact: "11 more weeks at the current pace"},
				{Type: "revise_goal", Feasibility: "Moderate", NewParameter: "79.3 kg", Impact: "accept the projected landing"},
			},
		},
	}
}

func TestFormatAnalysis_OffTrack(t *testing.T) {
	out := FormatAnalysis(sampleAnalysis())

	assert.Contains(t, out, "OFF TRACK")
	assert.Contains(t, out, "78.3 kg")
	assert.Contains(t, out, "79.6 kg")
	assert.Contains(t, out, "+1.3 kg")
	assert.Contains(t, out, "-0.07 kg/week")
	assert.Contains(t, out, "79.3 kg")
	assert.Contains(t, out, "Recalibration suggested")
	assert.Contains(t, out, "extend_timeline")
	assert.Contains(t, out, "revise_goal")
}

func TestFormatAnalysis_InsufficientData(t *testing.T) {
	v := sampleAnalysis()
	v.Status = "on_track"
	v.ToleranceExceeded = false
	v.RecalibrationNeeded = false
	v.Trend = contract.TrendView{Status: "insufficient_data"}
	v.LandingPoint = contract.LandingView{Status: "insufficient_data"}
	v.Options = contract.OptionSetView{Status: "not_needed", Options: []contract.OptionView{}}

	out := FormatAnalysis(v)

	assert.Contains(t, out, "ON TRACK")
	assert.Contains(t, out, "not enough data yet")
	assert.NotContains(t, out, "Recalibration suggested")
}

func TestFormatAnalysis_PendingOptions(t *testing.T) {
	v := sampleAnalysis()
	v.Options = contract.OptionSetView{Status: "pending", Options: []contract.OptionView{}}

	out := FormatAnalysis(v)
	assert.Contains(t, out, "Options pending")
}
