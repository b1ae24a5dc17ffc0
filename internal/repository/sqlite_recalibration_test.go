package repository

import (
	"context"
	"testing"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalibrationRepo_CreateAndListByPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	plans := NewSQLitePlanRepo(db)
	repo := NewSQLiteRecalibrationRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, plans.Create(ctx, plan))

	first := &domain.RecalibrationRecord{
		ID:           uuid.New().String(),
		PlanID:       plan.ID,
		OptionType:   domain.OptionIncreaseDeficit,
		NewParameter: "2050 kcal/day",
		Impact:       "Reaches 75.0 kg in the remaining 6 weeks",
		AppliedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.RecalibrationRecord{
		ID:         uuid.New().String(),
		PlanID:     plan.ID,
		OptionType: domain.OptionExtendTimeline,
		AppliedAt:  time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, second))

	records, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.OptionIncreaseDeficit, records[0].OptionType)
	assert.Equal(t, "2050 kcal/day", records[0].NewParameter)
	assert.Equal(t, domain.OptionExtendTimeline, records[1].OptionType)
	assert.True(t, records[1].AppliedAt.After(records[0].AppliedAt))
}

func TestRecalibrationRepo_ListByPlan_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRecalibrationRepo(db)
	ctx := context.Background()

	records, err := repo.ListByPlan(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecalibrationRepo_DeletedWithPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	plans := NewSQLitePlanRepo(db)
	repo := NewSQLiteRecalibrationRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, plans.Create(ctx, plan))
	require.NoError(t, repo.Create(ctx, &domain.RecalibrationRecord{
		ID:         uuid.New().String(),
		PlanID:     plan.ID,
		OptionType: domain.OptionKeepCurrent,
		AppliedAt:  time.Now().UTC(),
	}))

	require.NoError(t, plans.Delete(ctx, plan.ID))

	records, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
