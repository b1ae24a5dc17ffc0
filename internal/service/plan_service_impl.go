package service

import (
	"context"
	"errors"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	profiles repository.ProfileRepo
	logs     repository.LogRepo
	recals   repository.RecalibrationRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewPlanService creates the plan lifecycle use cases.
func NewPlanService(
	plans repository.PlanRepo,
	profiles repository.ProfileRepo,
	logs repository.LogRepo,
	recals repository.RecalibrationRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:    plans,
		profiles: profiles,
		logs:     logs,
		recals:   recals,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *planService) Create(ctx context.Context, req contract.CreatePlanRequest) (plan *domain.NutritionPlan, err error) {
	start := s.now()
	defer func() {
		reportUseCase(ctx, s.observer, "plan_create", start, map[string]any{"duration_weeks": req.DurationWeeks}, err)
	}()

	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, Validationf("%v", err)
	}

	tolerance := domain.DefaultTolerancePercent
	if req.TolerancePercent != nil {
		if *req.TolerancePercent <= 0 || *req.TolerancePercent >= 100 {
			return nil, Validationf("tolerance percent must be in (0, 100), got %.1f", *req.TolerancePercent)
		}
		tolerance = *req.TolerancePercent
	}

	now := s.now()
	plan = &domain.NutritionPlan{
		ID:               uuid.New().String(),
		StartDate:        startDate,
		StartWeightKg:    req.StartWeightKg,
		GoalWeightKg:     req.GoalWeightKg,
		DurationWeeks:    req.DurationWeeks,
		TolerancePercent: tolerance,
		Status:           domain.PlanActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := plan.Validate(); err != nil {
		return nil, Validationf("%v", err)
	}

	if _, err := s.plans.GetActive(ctx); err == nil {
		return nil, Conflictf("an active plan already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	plan.Targets = buildTargets(plan, profile, 1, plan.StartWeightKg)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.Create(ctx, plan); err != nil {
			return err
		}
		return txPlans.SaveTargets(ctx, plan.Targets)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) GetActive(ctx context.Context) (*domain.NutritionPlan, error) {
	return s.plans.GetActive(ctx)
}

func (s *planService) List(ctx context.Context) ([]*domain.NutritionPlan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Complete(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	return s.transition(ctx, id, (*domain.NutritionPlan).Complete)
}

func (s *planService) Abandon(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	return s.transition(ctx, id, (*domain.NutritionPlan).Abandon)
}

func (s *planService) Pause(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	return s.transition(ctx, id, (*domain.NutritionPlan).Pause)
}

func (s *planService) Resume(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	return s.transition(ctx, id, (*domain.NutritionPlan).Resume)
}

// transition applies a domain lifecycle method and persists the result.
// Lifecycle violations surface as conflicts.
func (s *planService) transition(ctx context.Context, id string, apply func(*domain.NutritionPlan, time.Time) error) (*domain.NutritionPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(plan, s.now()); err != nil {
		return nil, Conflictf("%v", err)
	}
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Recalibrate(ctx context.Context, req contract.RecalibrateRequest) (updated *domain.NutritionPlan, err error) {
	start := s.now()
	defer func() {
		reportUseCase(ctx, s.observer, "plan_recalibrate", start, map[string]any{"option": req.OptionType}, err)
	}()

	if !domain.ValidOptionTypes[req.OptionType] {
		return nil, Validationf("unknown recalibration option %q", req.OptionType)
	}
	date, err := resolveDate(req.Date, s.now)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanActive {
		return nil, Conflictf("cannot recalibrate a %s plan", plan.Status)
	}

	history, err := s.logs.Range(ctx, plan.StartDate, date)
	if err != nil {
		return nil, err
	}
	result := analysis.AnalyzePlan(analysis.AnalysisInput{
		Plan:         *plan,
		Weights:      weightPoints(history),
		AnalysisDate: date,
	})
	if result.Options.Status == analysis.OptionsPending {
		return nil, Conflictf("recalibration options are not yet computable: not enough trend data")
	}

	var chosen *analysis.Option
	for i := range result.Options.Options {
		if string(result.Options.Options[i].Type) == req.OptionType {
			chosen = &result.Options.Options[i]
			break
		}
	}
	if chosen == nil {
		return nil, Validationf("option %q is not available for this plan right now", req.OptionType)
	}

	now := s.now()
	switch chosen.Type {
	case domain.OptionReviseGoal:
		plan.GoalWeightKg = chosen.NewGoalWeightKg
	case domain.OptionExtendTimeline:
		plan.DurationWeeks += chosen.ExtraWeeks
	}
	plan.UpdatedAt = now

	var newTargets []domain.WeeklyTarget
	nextWeek := plan.CurrentWeek(date) + 1
	if chosen.Type != domain.OptionKeepCurrent && nextWeek <= plan.DurationWeeks {
		profile, err := s.profiles.Get(ctx)
		if err != nil {
			return nil, err
		}
		newTargets = buildTargets(plan, profile, nextWeek, result.ActualWeightKg)
	}

	record := &domain.RecalibrationRecord{
		ID:           uuid.New().String(),
		PlanID:       plan.ID,
		OptionType:   chosen.Type,
		NewParameter: chosen.NewParameter,
		Impact:       chosen.Impact,
		AppliedAt:    now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.Update(ctx, plan); err != nil {
			return err
		}
		if len(newTargets) > 0 {
			if err := txPlans.DeleteTargetsFrom(ctx, plan.ID, nextWeek); err != nil {
				return err
			}
			if err := txPlans.SaveTargets(ctx, newTargets); err != nil {
				return err
			}
		}
		return repository.NewSQLiteRecalibrationRepo(tx).Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return s.plans.GetByID(ctx, plan.ID)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	if _, err := s.plans.GetByID(ctx, id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
