package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanService_Create(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanActive, plan.Status)
	assert.Equal(t, domain.DefaultTolerancePercent, plan.TolerancePercent)
	require.Len(t, plan.Targets, 12)

	// Trajectory is linear from start to goal.
	assert.InDelta(t, 75, plan.Targets[11].ProjectedWeightKg, 1e-9)
	assert.InDelta(t, 80-5.0/12, plan.Targets[0].ProjectedWeightKg, 1e-9)
	// A loss plan prescribes eating below the projected TDEE.
	assert.Less(t, plan.Targets[0].ProjectedIntakeKcal, plan.Targets[0].ProjectedTDEE)

	stored, err := e.plans.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Targets, 12)
}

func TestPlanService_Create_DurationBounds(t *testing.T) {
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
		t.Run(fmt.Sprintf("%d_weeks", tc.weeks), func(t *testing.T) {
			e := newEnv(t)
			svc := e.planService(day(2026, 2, 1))

			_, err := svc.Create(context.Background(), contract.CreatePlanRequest{
				StartDate:     "2026-02-01",
				StartWeightKg: 80,
				GoalWeightKg:  75,
				DurationWeeks: tc.weeks,
			})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				se, found := AsServiceError(err)
				require.True(t, found)
				assert.Equal(t, CodeValidation, se.Code)
			}
		})
	}
}

func TestPlanService_Create_SecondActiveConflicts(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	req := contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestPlanService_Lifecycle(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 10))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)

	paused, err := svc.Pause(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPaused, paused.Status)
	require.NotNil(t, paused.PausedAt)

	// Pausing twice is a lifecycle conflict.
	_, err = svc.Pause(ctx, plan.ID)
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)

	svc.now = fixedClock(day(2026, 2, 17))
	resumed, err := svc.Resume(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanActive, resumed.Status)
	assert.Equal(t, 7, resumed.PausedDays)

	completed, err := svc.Complete(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanCompleted, completed.Status)

	_, err = svc.Resume(ctx, plan.ID)
	se, found = AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestPlanService_GetByID_NotFound(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))

	_, err := svc.GetByID(context.Background(), "missing")
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeNotFound, se.Code)
}

func TestPlanService_Recalibrate_ExtendTimeline(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)

	// Four weeks in, weight has barely moved: well off the planned trajectory.
	for i := 0; i < 14; i++ {
		d := day(2026, 2, 15).AddDate(0, 0, i)
		log := testutil.NewTestLog(d, 80-0.01*float64(i))
		require.NoError(t, e.logs.Create(ctx, log))
	}

	updated, err := svc.Recalibrate(ctx, contract.RecalibrateRequest{
		PlanID:     plan.ID,
		OptionType: string(domain.OptionExtendTimeline),
		Date:       "2026-02-28",
	})
	require.NoError(t, err)
	assert.Greater(t, updated.DurationWeeks, 12)
	assert.Len(t, updated.Targets, updated.DurationWeeks)

	records, err := e.recals.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OptionExtendTimeline, records[0].OptionType)
}

func TestPlanService_Recalibrate_ReviseGoal(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)

	for i := 0; i < 14; i++ {
		d := day(2026, 2, 15).AddDate(0, 0, i)
		require.NoError(t, e.logs.Create(ctx, testutil.NewTestLog(d, 80-0.01*float64(i))))
	}

	updated, err := svc.Recalibrate(ctx, contract.RecalibrateRequest{
		PlanID:     plan.ID,
		OptionType: string(domain.OptionReviseGoal),
		Date:       "2026-02-28",
	})
	require.NoError(t, err)
	// The goal moves to the projected landing weight, near current weight.
	assert.Greater(t, updated.GoalWeightKg, 75.0)
	assert.Less(t, updated.GoalWeightKg, 80.5)
}

func TestPlanService_Recalibrate_InsufficientTrend(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)

	// Two observations cannot fit a trend; the option set stays pending even
	// though the variance is gross.
	require.NoError(t, e.logs.Create(ctx, testutil.NewTestLog(day(2026, 2, 27), 80)))
	require.NoError(t, e.logs.Create(ctx, testutil.NewTestLog(day(2026, 2, 28), 80)))

	_, err = svc.Recalibrate(ctx, contract.RecalibrateRequest{
		PlanID:     plan.ID,
		OptionType: string(domain.OptionExtendTimeline),
		Date:       "2026-02-28",
	})
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestPlanService_Recalibrate_UnknownOption(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))

	_, err := svc.Recalibrate(context.Background(), contract.RecalibrateRequest{
		PlanID:     "whatever",
		OptionType: "wish_harder",
	})
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeValidation, se.Code)
}

func TestPlanService_Recalibrate_InactivePlan(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithPlanStatus(domain.PlanCompleted))
	require.NoError(t, e.plans.Create(ctx, plan))

	_, err := svc.Recalibrate(ctx, contract.RecalibrateRequest{
		PlanID:     plan.ID,
		OptionType: string(domain.OptionKeepCurrent),
	})
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestPlanService_Delete(t *testing.T) {
	e := newEnv(t)
	svc := e.planService(day(2026, 2, 1))
	ctx := context.Background()

	plan, err := svc.Create(ctx, contract.CreatePlanRequest{
		StartDate:     "2026-02-01",
		StartWeightKg: 80,
		GoalWeightKg:  75,
		DurationWeeks: 12,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, plan.ID))

	err = svc.Delete(ctx, plan.ID)
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeNotFound, se.Code)
}
