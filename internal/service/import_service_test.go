package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abramin/Victus-sub005/internal/importer"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Source: "legacy-tracker",
		Logs: []importer.LogImport{
			{Date: "2026-02-01", WeightKg: 80.2, IntakeKcal: floatPtr(2100)},
			{
				Date:     "2026-02-02",
				WeightKg: 80.0,
				ActualSessions: []importer.SessionImport{
					{Type: "running", DurationMin: 35, PerceivedIntensity: intPtr(6)},
				},
			},
			{Date: "2026-02-03", WeightKg: 79.9, Steps: intPtr(9000)},
		},
	}
}

func TestImportService_ImportFromSchema(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.uow, e.cat)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, importSchema())
	require.NoError(t, err)
	assert.Equal(t, 3, result.LogCount)
	assert.Equal(t, "2026-02-01", result.FirstDate.Format("2006-01-02"))
	assert.Equal(t, "2026-02-03", result.LastDate.Format("2006-01-02"))

	// Every imported date got its log and a snapshot.
	for _, date := range []string{"2026-02-01", "2026-02-02", "2026-02-03"} {
		snap, err := e.logService(day(2026, 2, 3)).GetByDate(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Revision)
	}

	// The training day's snapshot carries the computed load.
	snap, err := e.logService(day(2026, 2, 3)).GetByDate(ctx, "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TrainingSummary.SessionCount)
	assert.Greater(t, snap.TrainingSummary.TotalLoad, 0.0)
}

func TestImportService_ImportLogs_FromFile(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.uow, e.cat)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"source": "legacy-tracker",
		"logs": [
			{"date": "2026-02-01", "weight_kg": 80.2},
			{"date": "2026-02-02", "weight_kg": 80.0}
		]
	}`), 0o644))

	result, err := svc.ImportLogs(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.LogCount)
}

func TestImportService_RejectsInvalidSchema(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.uow, e.cat)

	schema := importSchema()
	schema.Logs[1].ActualSessions[0].Type = "juggling"
	schema.Logs[2].WeightKg = -4

	_, err := svc.ImportFromSchema(context.Background(), schema)
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeValidation, se.Code)
	// All problems are reported at once, not just the first.
	assert.Contains(t, se.Message, "juggling")
	assert.Contains(t, se.Message, "weight")
}

func TestImportService_DuplicateDateRollsBack(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.uow, e.cat)
	ctx := context.Background()

	// The middle date already exists.
	require.NoError(t, e.logs.Create(ctx, testutil.NewTestLog(day(2026, 2, 2), 81)))

	_, err := svc.ImportFromSchema(ctx, importSchema())
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeConflict, se.Code)

	// Nothing from the import survived, including dates before the conflict.
	_, err = e.logs.GetByDate(ctx, day(2026, 2, 1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = e.logs.GetByDate(ctx, day(2026, 2, 3))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImportService_MidImportFailureRollsBack(t *testing.T) {
	e := newEnv(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: e.database, FailOn: 3, Err: boom}
	svc := NewImportService(uow, e.cat)
	ctx := context.Background()

	_, err := svc.ImportFromSchema(ctx, importSchema())
	require.ErrorIs(t, err, boom)

	for _, d := range []int{1, 2, 3} {
		_, err := e.logs.GetByDate(ctx, day(2026, 2, d))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestImportService_EmptyImport(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.uow, e.cat)

	_, err := svc.ImportFromSchema(context.Background(), &importer.ImportSchema{Source: "x"})
	se, found := AsServiceError(err)
	require.True(t, found)
	assert.Equal(t, CodeValidation, se.Code)
}
