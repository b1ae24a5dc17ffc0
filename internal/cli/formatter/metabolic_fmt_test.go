package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abramin/Victus-sub005/internal/contract"
)

func TestFormatLoad(t *testing.T) {
	resp := &contract.LoadResponse{
		Date: "2026-02-28",
		Days: []contract.DayLoadPoint{
			{Date: "2026-02-22", Load: 0},
			{Date: "2026-02-23", Load: 120},
			{Date: "2026-02-24", Load: 240},
		},
		AcuteLoad:       180,
		ChronicLoad:     120,
		ACR:             1.5,
		Zone:            "high",
		OverloadedToday: false,
	}

	out := FormatLoad(resp)

	assert.Contains(t, out, "180")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "2026-02-22")
	assert.Contains(t, out, "2026-02-24")
	assert.NotContains(t, out, "spikes")
}

func TestFormatLoad_Overloaded(t *testing.T) {
	resp := &contract.LoadResponse{
		Date:            "2026-02-28",
		Days:            []contract.DayLoadPoint{{Date: "2026-02-28", Load: 600}},
		AcuteLoad:       300,
		ChronicLoad:     100,
		ACR:             3.0,
		Zone:            "overload",
		OverloadedToday: true,
	}

	out := FormatLoad(resp)
	assert.Contains(t, out, "OVERLOAD")
	assert.Contains(t, out, "spikes")
}

func TestFormatNotification(t *testing.T) {
	out := FormatNotification(contract.NotificationView{
		ID:            "n-1",
		Direction:     "tdee_higher",
		MagnitudeKcal: 210,
		Message:       "Your body is burning ~210 kcal/day more than your plan assumed.",
		OnsetDate:     "2026-02-15",
		DetectedAt:    "2026-02-28T08:00:00Z",
	})

	assert.Contains(t, out, "BURNING MORE")
	assert.Contains(t, out, "~210 kcal/day")
	assert.Contains(t, out, "2026-02-15")
	assert.Contains(t, out, "tdee dismiss")
}

func TestFormatChart(t *testing.T) {
	w := 79.5
	tdee := 2610.0
	conf := 0.8
	resp := &contract.ChartResponse{
		From: "2026-02-01",
		To:   "2026-02-02",
		Points: []contract.ChartPoint{
			{Date: "2026-02-01", WeightKg: &w, EstimatedTDEE: &tdee, Confidence: &conf, FormulaTDEE: 2656},
			{Date: "2026-02-02", FormulaTDEE: 2656},
		},
		Trend: contract.TrendView{Status: "fitted", SlopePerWeek: -0.35, R2: 0.88, Days: 14},
	}

	out := FormatChart(resp)

	assert.Contains(t, out, "79.5 kg")
	assert.Contains(t, out, "2610 kcal")
	assert.Contains(t, out, "2656 kcal")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "-0.35 kg/week")
	// The day without a snapshot renders dashes, not zeros.
	assert.Contains(t, out, "--")
}
