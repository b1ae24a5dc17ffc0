package repository

import (
	"context"
	"testing"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(
		testutil.WithPlanStart(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		testutil.WithWeights(82, 76),
		testutil.WithDuration(16),
	)
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.SaveTargets(ctx, testutil.NewTestTargets(plan, 2600)))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, "2026-01-05", fetched.StartDate.Format("2006-01-02"))
	assert.Equal(t, 82.0, fetched.StartWeightKg)
	assert.Equal(t, 76.0, fetched.GoalWeightKg)
	assert.Equal(t, 16, fetched.DurationWeeks)
	assert.Equal(t, domain.PlanActive, fetched.Status)
	require.Len(t, fetched.Targets, 16)
	assert.Equal(t, 1, fetched.Targets[0].WeekNumber)
	assert.Equal(t, "2026-01-05", fetched.Targets[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-01-11", fetched.Targets[0].EndDate.Format("2006-01-02"))
	assert.InDelta(t, 81.625, fetched.Targets[0].ProjectedWeightKg, 1e-9)
	assert.Nil(t, fetched.Targets[0].ActualAvgWeightKg)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_GetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	completed := testutil.NewTestPlan(testutil.WithPlanStatus(domain.PlanCompleted))
	require.NoError(t, repo.Create(ctx, completed))
	active := testutil.NewTestPlan()
	require.NoError(t, repo.Create(ctx, active))

	fetched, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active.ID, fetched.ID)
}

func TestPlanRepo_GetActive_NoneActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	abandoned := testutil.NewTestPlan(testutil.WithPlanStatus(domain.PlanAbandoned))
	require.NoError(t, repo.Create(ctx, abandoned))

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_Create_SecondActivePlanRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan()))

	err := repo.Create(ctx, testutil.NewTestPlan())
	require.Error(t, err)
}

func TestPlanRepo_List_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	older := testutil.NewTestPlan(
		testutil.WithPlanStart(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)),
		testutil.WithPlanStatus(domain.PlanCompleted),
	)
	require.NoError(t, repo.Create(ctx, older))
	newer := testutil.NewTestPlan(
		testutil.WithPlanStart(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, repo.Create(ctx, newer))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, newer.ID, plans[0].ID)
	assert.Equal(t, older.ID, plans[1].ID)
	// List returns plan rows only; targets are loaded on Get.
	assert.Empty(t, plans[0].Targets)
}

func TestPlanRepo_Update_PauseRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, repo.Create(ctx, plan))

	pausedAt := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	plan.Status = domain.PlanPaused
	plan.PausedAt = &pausedAt
	plan.PausedDays = 4
	plan.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPaused, fetched.Status)
	require.NotNil(t, fetched.PausedAt)
	assert.True(t, fetched.PausedAt.Equal(pausedAt))
	assert.Equal(t, 4, fetched.PausedDays)

	plan.Status = domain.PlanActive
	plan.PausedAt = nil
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err = repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.PausedAt)
}

func TestPlanRepo_SaveTargets_UpsertsActuals(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithDuration(4))
	require.NoError(t, repo.Create(ctx, plan))
	targets := testutil.NewTestTargets(plan, 2500)
	require.NoError(t, repo.SaveTargets(ctx, targets))

	avgWeight := 79.4
	avgIntake := 2100.0
	targets[0].ActualAvgWeightKg = &avgWeight
	targets[0].ActualAvgIntakeKcal = &avgIntake
	require.NoError(t, repo.SaveTargets(ctx, targets[:1]))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Targets, 4)
	require.NotNil(t, fetched.Targets[0].ActualAvgWeightKg)
	assert.Equal(t, 79.4, *fetched.Targets[0].ActualAvgWeightKg)
	require.NotNil(t, fetched.Targets[0].ActualAvgIntakeKcal)
	assert.Equal(t, 2100.0, *fetched.Targets[0].ActualAvgIntakeKcal)
	assert.Nil(t, fetched.Targets[1].ActualAvgWeightKg)
}

func TestPlanRepo_DeleteTargetsFrom(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithDuration(8))
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.SaveTargets(ctx, testutil.NewTestTargets(plan, 2500)))

	require.NoError(t, repo.DeleteTargetsFrom(ctx, plan.ID, 5))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Targets, 4)
	assert.Equal(t, 4, fetched.Targets[3].WeekNumber)
}

func TestPlanRepo_Delete_CascadesTargets(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(testutil.WithDuration(4))
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.SaveTargets(ctx, testutil.NewTestTargets(plan, 2500)))

	require.NoError(t, repo.Delete(ctx, plan.ID))

	_, err := repo.GetByID(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM weekly_targets WHERE plan_id = ?`, plan.ID).Scan(&count))
	assert.Equal(t, 0, count)
}
