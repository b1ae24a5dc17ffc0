package analysis

import (
	"testing"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftDays builds n consecutive days ending at asOf with constant planned
// intake and adaptive estimate.
func driftDays(asOf time.Time, n int, intake, adaptive float64) []DriftDay {
	days := make([]DriftDay, n)
	for i := 0; i < n; i++ {
		days[i] = DriftDay{
			Date:              asOf.AddDate(0, 0, -(n - 1 - i)),
			AdaptiveTDEE:      adaptive,
			PlannedIntakeKcal: intake,
		}
	}
	return days
}

var driftAsOf = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

func TestDetectDrift_ShortHistoryIsSilent(t *testing.T) {
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 10, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})
	assert.Equal(t, DriftNone, got.Status)
}

func TestDetectDrift_GapBreaksTheRun(t *testing.T) {
	days := driftDays(driftAsOf, 14, 1700, 2600)
	days = append(days[:7], days[8:]...)

	got := DetectDrift(DriftInput{
		Days:               days,
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})
	assert.Equal(t, DriftNone, got.Status)
}

func TestDetectDrift_WithinToleranceIsSilent(t *testing.T) {
	// implied weekly = (1700-2300)*7/7700 = -0.545; deviation 0.045 < 0.25
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2300),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})
	assert.Equal(t, DriftNone, got.Status)
}

func TestDetectDrift_SustainedDeviationNotifies(t *testing.T) {
	// implied weekly = (1700-2600)*7/7700 = -0.818; deviation -0.318
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})

	require.Equal(t, DriftDetected, got.Status)
	assert.Equal(t, domain.DriftTDEEHigher, got.Direction)
	assert.InDelta(t, 400.0, got.MagnitudeKcal, 1e-9)
	assert.Equal(t, 4, got.MagnitudeBand)
	assert.Equal(t, driftAsOf.AddDate(0, 0, -13), got.OnsetDate)
	assert.Equal(t, "tdee_higher/b4/2026-04-07", got.EpisodeKey)
	assert.Contains(t, got.Message, "faster")
}

func TestDetectDrift_LowerDirection(t *testing.T) {
	// adaptive below baseline: eating at plan but losing slower than planned
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 1900),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})

	require.Equal(t, DriftDetected, got.Status)
	assert.Equal(t, domain.DriftTDEELower, got.Direction)
	assert.Equal(t, 3, got.MagnitudeBand)
	assert.Contains(t, got.Message, "slower")
}

func TestDetectDrift_OnsetExtendsThroughLongerRuns(t *testing.T) {
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 20, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})

	require.Equal(t, DriftDetected, got.Status)
	assert.Equal(t, driftAsOf.AddDate(0, 0, -19), got.OnsetDate)
}

func TestDetectDrift_DismissedEpisodeIsSuppressed(t *testing.T) {
	in := DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		Prior: &EpisodeRef{
			Direction:     domain.DriftTDEEHigher,
			MagnitudeBand: 4,
			OnsetDate:     driftAsOf.AddDate(0, 0, -13),
			Dismissed:     true,
		},
		AsOf: driftAsOf,
	}
	got := DetectDrift(in)

	assert.Equal(t, DriftSuppressed, got.Status)
	assert.Equal(t, domain.DriftTDEEHigher, got.Direction)
}

func TestDetectDrift_UndismissedPriorDoesNotSuppress(t *testing.T) {
	in := DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		Prior: &EpisodeRef{
			Direction:     domain.DriftTDEEHigher,
			MagnitudeBand: 4,
			OnsetDate:     driftAsOf.AddDate(0, 0, -13),
		},
		AsOf: driftAsOf,
	}
	assert.Equal(t, DriftDetected, DetectDrift(in).Status)
}

func TestDetectDrift_WorsenedBandNotifiesAgain(t *testing.T) {
	// dismissed at band 4; condition worsened to band 6
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2800),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		Prior: &EpisodeRef{
			Direction:     domain.DriftTDEEHigher,
			MagnitudeBand: 4,
			OnsetDate:     driftAsOf.AddDate(0, 0, -13),
			Dismissed:     true,
		},
		AsOf: driftAsOf,
	})

	require.Equal(t, DriftDetected, got.Status)
	assert.Equal(t, 6, got.MagnitudeBand)
}

func TestDetectDrift_NewOnsetNotifiesAgain(t *testing.T) {
	// the dismissed episode started earlier and cleared; this run re-onset
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 2600),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		Prior: &EpisodeRef{
			Direction:     domain.DriftTDEEHigher,
			MagnitudeBand: 4,
			OnsetDate:     driftAsOf.AddDate(0, 0, -60),
			Dismissed:     true,
		},
		AsOf: driftAsOf,
	})
	assert.Equal(t, DriftDetected, got.Status)
}

func TestDetectDrift_OppositeDirectionNotifiesAgain(t *testing.T) {
	got := DetectDrift(DriftInput{
		Days:               driftDays(driftAsOf, 14, 1700, 1900),
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		Prior: &EpisodeRef{
			Direction:     domain.DriftTDEEHigher,
			MagnitudeBand: 3,
			OnsetDate:     driftAsOf.AddDate(0, 0, -13),
			Dismissed:     true,
		},
		AsOf: driftAsOf,
	})
	assert.Equal(t, DriftDetected, got.Status)
}

func TestDetectDrift_MixedSignsAreSilent(t *testing.T) {
	days := driftDays(driftAsOf, 14, 1700, 2600)
	// one day swings to the opposite side of the goal trajectory
	days[5].AdaptiveTDEE = 1000

	got := DetectDrift(DriftInput{
		Days:               days,
		FormulaBaseline:    2200,
		GoalWeeklyChangeKg: -0.5,
		AsOf:               driftAsOf,
	})
	assert.Equal(t, DriftNone, got.Status)
}
