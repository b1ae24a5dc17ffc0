package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/abramin/Victus-sub005/internal/testutil"
	"github.com/stretchr/testify/require"
)

// env wires the service layer's collaborators over an in-memory database.
type env struct {
	database  *sql.DB
	uow       db.UnitOfWork
	cat       *catalog.Catalog
	plans     repository.PlanRepo
	profiles  repository.ProfileRepo
	logs      repository.LogRepo
	snapshots repository.SnapshotRepo
	notifs    repository.NotificationRepo
	recals    repository.RecalibrationRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	cat, err := catalog.Load()
	require.NoError(t, err)
	return &env{
		database:  database,
		uow:       testutil.NewTestUoW(database),
		cat:       cat,
		plans:     repository.NewSQLitePlanRepo(database),
		profiles:  repository.NewSQLiteProfileRepo(database),
		logs:      repository.NewSQLiteLogRepo(database),
		snapshots: repository.NewSQLiteSnapshotRepo(database),
		notifs:    repository.NewSQLiteNotificationRepo(database),
		recals:    repository.NewSQLiteRecalibrationRepo(database),
	}
}

func (e *env) planService(now time.Time) *planService {
	svc := NewPlanService(e.plans, e.profiles, e.logs, e.recals, e.uow).(*planService)
	svc.now = fixedClock(now)
	return svc
}

func (e *env) logService(now time.Time) *logService {
	svc := NewLogService(e.logs, e.snapshots, e.plans, e.uow, e.cat).(*logService)
	svc.now = fixedClock(now)
	return svc
}

func (e *env) metabolicService(now time.Time) *metabolicService {
	svc := NewMetabolicService(e.snapshots, e.plans, e.profiles, e.notifs).(*metabolicService)
	svc.now = fixedClock(now)
	return svc
}

func (e *env) analysisService(now time.Time) *analysisService {
	svc := NewAnalysisService(e.plans, e.logs, e.cat).(*analysisService)
	svc.now = fixedClock(now)
	return svc
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
