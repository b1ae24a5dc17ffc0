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

func snapshotFor(log *domain.DailyLog, revision int) *domain.DailyLogSnapshot {
	return &domain.DailyLogSnapshot{
		Log:        *log,
		Revision:   revision,
		ComputedAt: time.Now().UTC(),
	}
}

func TestSnapshotRepo_SaveAndLatestByDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	log := testutil.NewTestLog(date, 77.2, testutil.WithIntake(2200))
	require.NoError(t, logs.Create(ctx, log))

	tdee := 2480.0
	confidence := 0.82
	snap := snapshotFor(log, 1)
	snap.EstimatedTDEE = &tdee
	snap.Confidence = &confidence
	snap.Targets = &domain.CalculatedTargets{
		PlanID:           "plan-1",
		WeekNumber:       3,
		TargetWeightKg:   77.5,
		TargetIntakeKcal: 2100,
	}
	snap.TrainingSummary = domain.TrainingSummary{
		SessionCount:     2,
		TotalDurationMin: 75,
		TotalLoad:        14.5,
		EstimatedKcal:    610,
	}
	require.NoError(t, repo.Save(ctx, snap))

	fetched, err := repo.LatestByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.Revision)
	assert.Equal(t, log.ID, fetched.Log.ID)
	assert.Equal(t, 77.2, fetched.Log.WeightKg)
	require.NotNil(t, fetched.Log.IntakeKcal)
	assert.Equal(t, 2200.0, *fetched.Log.IntakeKcal)
	require.NotNil(t, fetched.EstimatedTDEE)
	assert.Equal(t, 2480.0, *fetched.EstimatedTDEE)
	require.NotNil(t, fetched.Confidence)
	assert.Equal(t, 0.82, *fetched.Confidence)
	require.NotNil(t, fetched.Targets)
	assert.Equal(t, "plan-1", fetched.Targets.PlanID)
	assert.Equal(t, 3, fetched.Targets.WeekNumber)
	assert.Equal(t, 2, fetched.TrainingSummary.SessionCount)
	assert.Equal(t, 14.5, fetched.TrainingSummary.TotalLoad)
}

func TestSnapshotRepo_InsufficientEstimateRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	log := testutil.NewTestLog(date, 77.0)
	require.NoError(t, logs.Create(ctx, log))
	require.NoError(t, repo.Save(ctx, snapshotFor(log, 1)))

	fetched, err := repo.LatestByDate(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, fetched.EstimatedTDEE)
	assert.Nil(t, fetched.Confidence)
	assert.Nil(t, fetched.Targets)

	var status string
	require.NoError(t, db.QueryRow(
		`SELECT estimate_status FROM log_snapshots WHERE log_date = '2026-05-05'`).Scan(&status))
	assert.Equal(t, "insufficient_data", status)
}

func TestSnapshotRepo_LatestByDate_ResolvesHighestRevision(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)
	log := testutil.NewTestLog(date, 76.8)
	require.NoError(t, logs.Create(ctx, log))

	first := snapshotFor(log, 1)
	first.TrainingSummary.SessionCount = 1
	require.NoError(t, repo.Save(ctx, first))

	second := snapshotFor(log, 2)
	second.TrainingSummary.SessionCount = 3
	require.NoError(t, repo.Save(ctx, second))

	fetched, err := repo.LatestByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Revision)
	assert.Equal(t, 3, fetched.TrainingSummary.SessionCount)

	// Earlier revisions are preserved, not overwritten.
	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM log_snapshots WHERE log_date = '2026-05-06'`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSnapshotRepo_Save_DuplicateRevisionRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC)
	log := testutil.NewTestLog(date, 76.5)
	require.NoError(t, logs.Create(ctx, log))

	require.NoError(t, repo.Save(ctx, snapshotFor(log, 1)))
	require.Error(t, repo.Save(ctx, snapshotFor(log, 1)))
}

func TestSnapshotRepo_LatestRevision(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)

	rev, err := repo.LatestRevision(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 0, rev)

	log := testutil.NewTestLog(date, 76.2)
	require.NoError(t, logs.Create(ctx, log))
	require.NoError(t, repo.Save(ctx, snapshotFor(log, 1)))
	require.NoError(t, repo.Save(ctx, snapshotFor(log, 2)))

	rev, err = repo.LatestRevision(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)
}

func TestSnapshotRepo_LatestByDate_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	_, err := repo.LatestByDate(ctx, time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepo_LatestInRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	logs := NewSQLiteLogRepo(db)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	for day := 10; day <= 12; day++ {
		date := time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC)
		log := testutil.NewTestLog(date, 76.0)
		require.NoError(t, logs.Create(ctx, log))
		require.NoError(t, repo.Save(ctx, snapshotFor(log, 1)))
		if day == 11 {
			recomputed := snapshotFor(log, 2)
			recomputed.TrainingSummary.TotalLoad = 9.9
			require.NoError(t, repo.Save(ctx, recomputed))
		}
	}

	snaps, err := repo.LatestInRange(ctx,
		time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "2026-05-10", snaps[0].Log.Date.Format("2006-01-02"))
	assert.Equal(t, 1, snaps[0].Revision)
	assert.Equal(t, "2026-05-11", snaps[1].Log.Date.Format("2006-01-02"))
	assert.Equal(t, 2, snaps[1].Revision)
	assert.Equal(t, 9.9, snaps[1].TrainingSummary.TotalLoad)
}
