package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func testPlan() *NutritionPlan {
	return &NutritionPlan{
		ID:            "plan-1",
		StartDate:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartWeightKg: 82,
		GoalWeightKg:  76,
		DurationWeeks: 12,
		Status:        PlanActive,
	}
}

func TestValidate_DurationBounds(t *testing.T) {
	cases := []struct {
		weeks int
		ok    bool
	}{
		{3, false},
		{4, true},
		{104, true},
		{105, false},
	}
	for _, tc := range cases {
		p := testPlan()
		p.DurationWeeks = tc.weeks
		err := p.Validate()
		if tc.ok {
			assert.NoError(t, err, "weeks=%d", tc.weeks)
		} else {
			assert.Error(t, err, "weeks=%d", tc.weeks)
		}
	}
}

func TestValidate_GoalMustDiffer(t *testing.T) {
	p := testPlan()
	p.GoalWeightKg = p.StartWeightKg
	require.Error(t, p.Validate())
}

func TestRequiredWeeklyChange_SignMatchesDirection(t *testing.T) {
	loss := testPlan()
	assert.Negative(t, loss.RequiredWeeklyChangeKg())
	assert.True(t, loss.IsWeightLoss())
	assert.InDelta(t, -0.5, loss.RequiredWeeklyChangeKg(), 1e-9)

	gain := testPlan()
	gain.StartWeightKg = 60
	gain.GoalWeightKg = 66
	assert.Positive(t, gain.RequiredWeeklyChangeKg())
	assert.False(t, gain.IsWeightLoss())
}

func TestCurrentWeek_DerivedFromElapsedDays(t *testing.T) {
	p := testPlan()
	assert.Equal(t, 1, p.CurrentWeek(p.StartDate))
	assert.Equal(t, 1, p.CurrentWeek(p.StartDate.AddDate(0, 0, 6)))
	assert.Equal(t, 2, p.CurrentWeek(p.StartDate.AddDate(0, 0, 7)))
	assert.Equal(t, 3, p.CurrentWeek(p.StartDate.AddDate(0, 0, 15)))
}

func TestCurrentWeek_ClampedToDuration(t *testing.T) {
	p := testPlan()
	assert.Equal(t, 12, p.CurrentWeek(p.StartDate.AddDate(0, 0, 400)))
	assert.Equal(t, 1, p.CurrentWeek(p.StartDate.AddDate(0, 0, -10)))
}

func TestPauseResume_ExcludesPausedTime(t *testing.T) {
	p := testPlan()
	pauseAt := p.StartDate.AddDate(0, 0, 10)
	require.NoError(t, p.Pause(pauseAt))
	assert.Equal(t, PlanPaused, p.Status)

	// Ten days into the pause, plan time has not moved.
	during := pauseAt.AddDate(0, 0, 10)
	assert.Equal(t, 10, p.ElapsedPlanDays(during))

	require.NoError(t, p.Resume(during))
	assert.Equal(t, PlanActive, p.Status)
	assert.Equal(t, 10, p.PausedDays)
	assert.Nil(t, p.PausedAt)

	// A week after resuming, plan time picks up where it left off.
	assert.Equal(t, 17, p.ElapsedPlanDays(during.AddDate(0, 0, 7)))
}

func TestEndDate_SlidesWithPause(t *testing.T) {
	p := testPlan()
	plainEnd := p.EndDate(p.StartDate)
	assert.Equal(t, p.StartDate.AddDate(0, 0, 84), plainEnd)

	pauseAt := p.StartDate.AddDate(0, 0, 14)
	require.NoError(t, p.Pause(pauseAt))
	require.NoError(t, p.Resume(pauseAt.AddDate(0, 0, 5)))
	assert.Equal(t, plainEnd.AddDate(0, 0, 5), p.EndDate(testNow))
}

func TestPause_OnlyFromActive(t *testing.T) {
	p := testPlan()
	require.NoError(t, p.Pause(testNow))
	err := p.Pause(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paused")
}

func TestResume_OnlyFromPaused(t *testing.T) {
	p := testPlan()
	err := p.Resume(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active")
}

func TestCompleteAbandon_TerminalStates(t *testing.T) {
	p := testPlan()
	require.NoError(t, p.Complete(testNow))
	assert.Equal(t, PlanCompleted, p.Status)
	assert.True(t, p.Status.IsTerminal())

	require.Error(t, p.Abandon(testNow), "terminal plans reject further transitions")
	require.Error(t, p.Pause(testNow))

	q := testPlan()
	require.NoError(t, q.Pause(testNow))
	require.NoError(t, q.Abandon(testNow), "paused plans can be abandoned")
	assert.Equal(t, PlanAbandoned, q.Status)
}

func TestRemainingWeeks(t *testing.T) {
	p := testPlan()
	assert.Equal(t, 11, p.RemainingWeeks(p.StartDate))
	assert.Equal(t, 0, p.RemainingWeeks(p.StartDate.AddDate(0, 0, 200)))
}
