package service

import (
	"context"
	"errors"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/google/uuid"
)

type logService struct {
	logs      repository.LogRepo
	snapshots repository.SnapshotRepo
	plans     repository.PlanRepo
	uow       db.UnitOfWork
	cat       *catalog.Catalog
	observer  UseCaseObserver
	now       func() time.Time
}

// NewLogService creates the daily-log use cases. Every write recomputes the
// date's snapshot as a new revision.
func NewLogService(
	logs repository.LogRepo,
	snapshots repository.SnapshotRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	cat *catalog.Catalog,
	observers ...UseCaseObserver,
) LogService {
	return &logService{
		logs:      logs,
		snapshots: snapshots,
		plans:     plans,
		uow:       uow,
		cat:       cat,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *logService) Create(ctx context.Context, req contract.CreateLogRequest) (snap *domain.DailyLogSnapshot, err error) {
	start := s.now()
	defer func() {
		reportUseCase(ctx, s.observer, "log_create", start, map[string]any{"date": req.Date}, err)
	}()

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, Validationf("%v", err)
	}

	now := s.now()
	log := &domain.DailyLog{
		ID:               uuid.New().String(),
		Date:             date,
		WeightKg:         req.WeightKg,
		IntakeKcal:       req.IntakeKcal,
		BodyFatPercent:   req.BodyFatPercent,
		RestingHeartRate: req.RestingHeartRate,
		SleepHours:       req.SleepHours,
		Steps:            req.Steps,
		ActiveCalories:   req.ActiveCalories,
		PlannedSessions:  app.SessionsFromPayloads(req.PlannedSessions),
		ActualSessions:   app.SessionsFromPayloads(req.ActualSessions),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.validateLog(log); err != nil {
		return nil, err
	}

	if _, err := s.logs.GetByDate(ctx, date); err == nil {
		return nil, Conflictf("a log already exists for %s", req.Date)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteLogRepo(tx).Create(ctx, log); err != nil {
			return err
		}
		snap, err = recomputeSnapshot(ctx, log, tx, s.cat, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *logService) Update(ctx context.Context, req contract.CreateLogRequest) (snap *domain.DailyLogSnapshot, err error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, Validationf("%v", err)
	}

	existing, err := s.logs.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	log := &domain.DailyLog{
		ID:               existing.ID,
		Date:             date,
		WeightKg:         req.WeightKg,
		IntakeKcal:       req.IntakeKcal,
		BodyFatPercent:   req.BodyFatPercent,
		RestingHeartRate: req.RestingHeartRate,
		SleepHours:       req.SleepHours,
		Steps:            req.Steps,
		ActiveCalories:   req.ActiveCalories,
		PlannedSessions:  app.SessionsFromPayloads(req.PlannedSessions),
		ActualSessions:   app.SessionsFromPayloads(req.ActualSessions),
		CreatedAt:        existing.CreatedAt,
		UpdatedAt:        now,
	}
	if err := s.validateLog(log); err != nil {
		return nil, err
	}

	return s.writeAndRecompute(ctx, log, now)
}

func (s *logService) PatchTraining(ctx context.Context, req contract.TrainingPatchRequest) (*domain.DailyLogSnapshot, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	log, err := s.logs.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	sessions := app.SessionsFromPayloads(req.ActualSessions)
	if err := validateSessions("actual", sessions, s.cat); err != nil {
		return nil, err
	}

	now := s.now()
	log.ActualSessions = sessions
	log.UpdatedAt = now
	return s.writeAndRecompute(ctx, log, now)
}

// SyncPatch merges externally-synced metrics into a log. Absent (nil) fields
// keep the previously-known values; they are never overwritten with nulls. A
// sync for a date with no log yet creates one, provided it carries a weight.
func (s *logService) SyncPatch(ctx context.Context, req contract.SyncPatchRequest) (*domain.DailyLogSnapshot, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, Validationf("%v", err)
	}

	now := s.now()
	log, err := s.logs.GetByDate(ctx, date)
	switch {
	case err == nil:
		if req.WeightKg != nil {
			log.WeightKg = *req.WeightKg
		}
		log.BodyFatPercent = domain.CoalesceFloat64Ptr(req.BodyFatPercent, log.BodyFatPercent)
		log.RestingHeartRate = domain.CoalesceIntPtr(req.RestingHeartRate, log.RestingHeartRate)
		log.SleepHours = domain.CoalesceFloat64Ptr(req.SleepHours, log.SleepHours)
		log.Steps = domain.CoalesceIntPtr(req.Steps, log.Steps)
		log.ActiveCalories = domain.CoalesceIntPtr(req.ActiveCalories, log.ActiveCalories)
		log.UpdatedAt = now
	case errors.Is(err, repository.ErrNotFound):
		if req.WeightKg == nil {
			return nil, Validationf("no log exists for %s and the sync payload carries no weight to create one", req.Date)
		}
		log = &domain.DailyLog{
			ID:               uuid.New().String(),
			Date:             date,
			WeightKg:         *req.WeightKg,
			BodyFatPercent:   req.BodyFatPercent,
			RestingHeartRate: req.RestingHeartRate,
			SleepHours:       req.SleepHours,
			Steps:            req.Steps,
			ActiveCalories:   req.ActiveCalories,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.validateLog(log); err != nil {
			return nil, err
		}
		var snap *domain.DailyLogSnapshot
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteLogRepo(tx).Create(ctx, log); err != nil {
				return err
			}
			snap, err = recomputeSnapshot(ctx, log, tx, s.cat, now)
			return err
		})
		if err != nil {
			return nil, err
		}
		return snap, nil
	default:
		return nil, err
	}

	if err := s.validateLog(log); err != nil {
		return nil, err
	}
	return s.writeAndRecompute(ctx, log, now)
}

func (s *logService) GetByDate(ctx context.Context, date string) (*domain.DailyLogSnapshot, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	return s.snapshots.LatestByDate(ctx, d)
}

func (s *logService) Range(ctx context.Context, from, to string) ([]*domain.DailyLogSnapshot, error) {
	fromDate, err := domain.ParseDate(from)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	toDate, err := domain.ParseDate(to)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	if toDate.Before(fromDate) {
		return nil, Validationf("range end %s is before start %s", to, from)
	}
	return s.snapshots.LatestInRange(ctx, fromDate, toDate)
}

func (s *logService) validateLog(log *domain.DailyLog) error {
	if err := log.Validate(); err != nil {
		return Validationf("%v", err)
	}
	if err := validateSessions("planned", log.PlannedSessions, s.cat); err != nil {
		return err
	}
	return validateSessions("actual", log.ActualSessions, s.cat)
}

func (s *logService) writeAndRecompute(ctx context.Context, log *domain.DailyLog, now time.Time) (*domain.DailyLogSnapshot, error) {
	var snap *domain.DailyLogSnapshot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteLogRepo(tx).Update(ctx, log); err != nil {
			return err
		}
		var err error
		snap, err = recomputeSnapshot(ctx, log, tx, s.cat, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// recomputeSnapshot derives the computed view for a log's date and stores it
// as the next revision. Earlier revisions are superseded, never mutated.
func recomputeSnapshot(ctx context.Context, log *domain.DailyLog, tx db.DBTX, cat *catalog.Catalog, now time.Time) (*domain.DailyLogSnapshot, error) {
	logs := repository.NewSQLiteLogRepo(tx)
	snapshots := repository.NewSQLiteSnapshotRepo(tx)
	plans := repository.NewSQLitePlanRepo(tx)

	window, err := logs.Range(ctx, log.Date.AddDate(0, 0, -(analysis.EstimateWindowDays-1)), log.Date)
	if err != nil {
		return nil, err
	}
	estimate := analysis.EstimateTDEE(dayRecords(window), log.Date)

	snap := &domain.DailyLogSnapshot{
		Log:             *log,
		TrainingSummary: analysis.SummarizeDay(log.ActualSessions, cat, log.WeightKg),
		ComputedAt:      now,
	}
	if estimate.Computed() {
		tdee := estimate.TDEE
		confidence := estimate.Confidence
		snap.EstimatedTDEE = &tdee
		snap.Confidence = &confidence
	}

	plan, err := plans.GetActive(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err == nil && planCovering(plan, log.Date) {
		targets := &domain.CalculatedTargets{
			PlanID:         plan.ID,
			WeekNumber:     plan.CurrentWeek(log.Date),
			TargetWeightKg: analysis.PlannedWeightAt(*plan, log.Date),
		}
		if weekly, ok := targetForDate(plan, log.Date); ok {
			targets.TargetIntakeKcal = weekly.ProjectedIntakeKcal
		}
		snap.Targets = targets
	}

	latest, err := snapshots.LatestRevision(ctx, log.Date)
	if err != nil {
		return nil, err
	}
	snap.Revision = latest + 1

	if err := snapshots.Save(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
