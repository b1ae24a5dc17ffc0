package service

import (
	"context"
	"errors"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/google/uuid"
)

const (
	// chartDefaultDays is the chart range when the caller gives no start.
	chartDefaultDays = 28
	// driftLookbackDays bounds how far back the onset of an episode is
	// traced. It exceeds the detection window so a long-running deviation
	// keeps a stable onset date.
	driftLookbackDays = 60
)

type metabolicService struct {
	snapshots     repository.SnapshotRepo
	plans         repository.PlanRepo
	profiles      repository.ProfileRepo
	notifications repository.NotificationRepo
	observer      UseCaseObserver
	now           func() time.Time
}

// NewMetabolicService creates the adaptive-TDEE use cases: the chart series
// and drift notification lifecycle.
func NewMetabolicService(
	snapshots repository.SnapshotRepo,
	plans repository.PlanRepo,
	profiles repository.ProfileRepo,
	notifications repository.NotificationRepo,
	observers ...UseCaseObserver,
) MetabolicService {
	return &metabolicService{
		snapshots:     snapshots,
		plans:         plans,
		profiles:      profiles,
		notifications: notifications,
		observer:      useCaseObserverOrNoop(observers),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *metabolicService) Chart(ctx context.Context, req contract.ChartRequest) (*contract.ChartResponse, error) {
	to, err := resolveDate(req.To, s.now)
	if err != nil {
		return nil, err
	}
	var from time.Time
	if req.From == "" {
		from = to.AddDate(0, 0, -(chartDefaultDays - 1))
	} else {
		from, err = domain.ParseDate(req.From)
		if err != nil {
			return nil, Validationf("%v", err)
		}
	}
	if to.Before(from) {
		return nil, Validationf("chart range end %s is before start %s", domain.FormatDate(to), domain.FormatDate(from))
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	snaps, err := s.snapshots.LatestInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]contract.ChartPoint, 0, len(snaps))
	weights := make([]analysis.WeightPoint, 0, len(snaps))
	for _, snap := range snaps {
		weight := snap.Log.WeightKg
		points = append(points, contract.ChartPoint{
			Date:          domain.FormatDate(snap.Log.Date),
			WeightKg:      &weight,
			EstimatedTDEE: snap.EstimatedTDEE,
			Confidence:    snap.Confidence,
			FormulaTDEE:   analysis.FormulaTDEE(*profile, weight, snap.Log.BodyFatPercent, snap.Log.Date),
		})
		weights = append(weights, analysis.WeightPoint{Date: snap.Log.Date, WeightKg: weight})
	}

	trend := analysis.FitTrend(weights)
	return &contract.ChartResponse{
		From:   domain.FormatDate(from),
		To:     domain.FormatDate(to),
		Points: points,
		Trend: contract.TrendView{
			Status:       string(trend.Status),
			SlopePerWeek: trend.SlopePerWeek,
			R2:           trend.R2,
			Days:         trend.Days,
		},
	}, nil
}

// Notification runs drift detection as of the given date and reconciles the
// outcome with the stored episode: a persisting detected episode is returned
// as-is, a new one is persisted first, and none/suppressed yields nil.
func (s *metabolicService) Notification(ctx context.Context, dateArg string) (n *domain.DriftNotification, err error) {
	start := s.now()
	defer func() {
		reportUseCase(ctx, s.observer, "drift_check", start, map[string]any{"date": dateArg}, err)
	}()

	date, err := resolveDate(dateArg, s.now)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	snaps, err := s.snapshots.LatestInRange(ctx, date.AddDate(0, 0, -(driftLookbackDays-1)), date)
	if err != nil {
		return nil, err
	}

	days := make([]analysis.DriftDay, 0, len(snaps))
	var latestWeight float64
	var latestBodyFat *float64
	for _, snap := range snaps {
		latestWeight = snap.Log.WeightKg
		latestBodyFat = snap.Log.BodyFatPercent
		if snap.EstimatedTDEE == nil {
			continue
		}
		weekly, ok := targetForDate(plan, snap.Log.Date)
		if !ok {
			continue
		}
		days = append(days, analysis.DriftDay{
			Date:              snap.Log.Date,
			AdaptiveTDEE:      *snap.EstimatedTDEE,
			PlannedIntakeKcal: weekly.ProjectedIntakeKcal,
		})
	}
	if latestWeight == 0 {
		return nil, nil
	}

	prior, err := s.notifications.Latest(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	var priorRef *analysis.EpisodeRef
	if prior != nil {
		priorRef = &analysis.EpisodeRef{
			Direction:     prior.Direction,
			MagnitudeBand: prior.MagnitudeBand,
			OnsetDate:     prior.OnsetDate,
			Dismissed:     prior.Dismissed(),
		}
	}

	result := analysis.DetectDrift(analysis.DriftInput{
		Days:               days,
		FormulaBaseline:    analysis.FormulaTDEE(*profile, latestWeight, latestBodyFat, date),
		GoalWeeklyChangeKg: plan.RequiredWeeklyChangeKg(),
		Prior:              priorRef,
		AsOf:               date,
	})
	if result.Status != analysis.DriftDetected {
		return nil, nil
	}

	if prior != nil && !prior.Dismissed() && prior.EpisodeKey == result.EpisodeKey {
		return prior, nil
	}

	n = &domain.DriftNotification{
		ID:            uuid.New().String(),
		EpisodeKey:    result.EpisodeKey,
		Direction:     result.Direction,
		MagnitudeKcal: result.MagnitudeKcal,
		MagnitudeBand: result.MagnitudeBand,
		OnsetDate:     result.OnsetDate,
		Message:       result.Message,
		DetectedAt:    s.now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Dismiss marks the latest episode dismissed. Dismissing with no notification,
// or one already dismissed, is a no-op.
func (s *metabolicService) Dismiss(ctx context.Context) error {
	latest, err := s.notifications.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if latest.Dismissed() {
		return nil
	}
	return s.notifications.Dismiss(ctx, latest.ID, s.now())
}
