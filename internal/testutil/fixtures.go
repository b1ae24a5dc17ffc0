package testutil

import (
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/google/uuid"
)

// Plan options
type PlanOption func(*domain.NutritionPlan)

func WithPlanStart(d time.Time) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.StartDate = domain.DateOf(d)
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.Status = s
	}
}

func WithWeights(startKg, goalKg float64) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.StartWeightKg = startKg
		p.GoalWeightKg = goalKg
	}
}

func WithDuration(weeks int) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.DurationWeeks = weeks
	}
}

func WithTolerance(pct float64) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.TolerancePercent = pct
	}
}

func WithTargets(targets []domain.WeeklyTarget) PlanOption {
	return func(p *domain.NutritionPlan) {
		for i := range targets {
			targets[i].PlanID = p.ID
		}
		p.Targets = targets
	}
}

func WithPause(at time.Time, bankedDays int) PlanOption {
	return func(p *domain.NutritionPlan) {
		p.Status = domain.PlanPaused
		p.PausedAt = &at
		p.PausedDays = bankedDays
	}
}

func NewTestPlan(opts ...PlanOption) *domain.NutritionPlan {
	now := time.Now().UTC()
	p := &domain.NutritionPlan{
		ID:               uuid.New().String(),
		StartDate:        domain.DateOf(now.AddDate(0, 0, -28)),
		StartWeightKg:    80,
		GoalWeightKg:     75,
		DurationWeeks:    12,
		TolerancePercent: domain.DefaultTolerancePercent,
		Status:           domain.PlanActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestTargets builds a linear weekly trajectory for the plan, the same
// shape the plan service generates at creation time.
func NewTestTargets(p *domain.NutritionPlan, tdee float64) []domain.WeeklyTarget {
	weekly := p.RequiredWeeklyChangeKg()
	targets := make([]domain.WeeklyTarget, 0, p.DurationWeeks)
	for week := 1; week <= p.DurationWeeks; week++ {
		start := p.StartDate.AddDate(0, 0, (week-1)*7)
		targets = append(targets, domain.WeeklyTarget{
			PlanID:              p.ID,
			WeekNumber:          week,
			StartDate:           start,
			EndDate:             start.AddDate(0, 0, 6),
			ProjectedWeightKg:   p.StartWeightKg + weekly*float64(week),
			ProjectedTDEE:       tdee,
			ProjectedIntakeKcal: tdee + weekly*analysis.EnergyPerKg/7,
		})
	}
	return targets
}

// Session options
type SessionOption func(*domain.TrainingSession)

func WithRPE(rpe int) SessionOption {
	return func(s *domain.TrainingSession) {
		s.PerceivedIntensity = &rpe
	}
}

func WithSessionNotes(notes string) SessionOption {
	return func(s *domain.TrainingSession) {
		s.Notes = notes
	}
}

func NewTestSession(trainingType string, minutes int, opts ...SessionOption) domain.TrainingSession {
	s := domain.TrainingSession{
		Type:        trainingType,
		DurationMin: minutes,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Daily log options
type LogOption func(*domain.DailyLog)

func WithIntake(kcal float64) LogOption {
	return func(l *domain.DailyLog) {
		l.IntakeKcal = &kcal
	}
}

func WithBodyFat(pct float64) LogOption {
	return func(l *domain.DailyLog) {
		l.BodyFatPercent = &pct
	}
}

func WithRestingHR(bpm int) LogOption {
	return func(l *domain.DailyLog) {
		l.RestingHeartRate = &bpm
	}
}

func WithSleep(hours float64) LogOption {
	return func(l *domain.DailyLog) {
		l.SleepHours = &hours
	}
}

func WithSteps(n int) LogOption {
	return func(l *domain.DailyLog) {
		l.Steps = &n
	}
}

func WithActiveCalories(kcal int) LogOption {
	return func(l *domain.DailyLog) {
		l.ActiveCalories = &kcal
	}
}

func WithPlannedSessions(sessions ...domain.TrainingSession) LogOption {
	return func(l *domain.DailyLog) {
		l.PlannedSessions = sessions
	}
}

func WithActualSessions(sessions ...domain.TrainingSession) LogOption {
	return func(l *domain.DailyLog) {
		l.ActualSessions = sessions
	}
}

func NewTestLog(date time.Time, weightKg float64, opts ...LogOption) *domain.DailyLog {
	now := time.Now().UTC()
	l := &domain.DailyLog{
		ID:        uuid.New().String(),
		Date:      domain.DateOf(date),
		WeightKg:  weightKg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Drift notification options
type NotificationOption func(*domain.DriftNotification)

func WithDismissedAt(at time.Time) NotificationOption {
	return func(n *domain.DriftNotification) {
		n.DismissedAt = &at
	}
}

func WithDetectedAt(at time.Time) NotificationOption {
	return func(n *domain.DriftNotification) {
		n.DetectedAt = at
	}
}

func WithMagnitude(kcal float64) NotificationOption {
	return func(n *domain.DriftNotification) {
		n.MagnitudeKcal = kcal
	}
}

func NewTestNotification(direction domain.DriftDirection, band int, onset time.Time, opts ...NotificationOption) *domain.DriftNotification {
	n := &domain.DriftNotification{
		ID:            uuid.New().String(),
		EpisodeKey:    analysis.EpisodeKey(direction, band, onset),
		Direction:     direction,
		MagnitudeKcal: float64(band) * 100,
		MagnitudeBand: band,
		OnsetDate:     domain.DateOf(onset),
		DetectedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
