package domain

import (
	"fmt"
	"math"
	"time"
)

// Duration bounds for a nutrition plan, in weeks.
const (
	MinDurationWeeks = 4
	MaxDurationWeeks = 104
)

// DefaultTolerancePercent is the plan-health variance tolerance applied when
// a plan does not configure its own.
const DefaultTolerancePercent = 3.0

type NutritionPlan struct {
	ID               string
	StartDate        time.Time
	StartWeightKg    float64
	GoalWeightKg     float64
	DurationWeeks    int
	TolerancePercent float64
	Status           PlanStatus
	PausedAt         *time.Time
	PausedDays       int
	Targets          []WeeklyTarget
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WeeklyTarget is one week of a plan's projected trajectory. Actual aggregates
// are filled in once the week has logs.
type WeeklyTarget struct {
	PlanID              string
	WeekNumber          int
	StartDate           time.Time
	EndDate             time.Time
	ProjectedWeightKg   float64
	ProjectedTDEE       float64
	ProjectedIntakeKcal float64
	ActualAvgWeightKg   *float64
	ActualAvgIntakeKcal *float64
	ActualAvgTDEE       *float64
}

// Validate checks the plan's structural invariants.
func (p *NutritionPlan) Validate() error {
	if p.DurationWeeks < MinDurationWeeks || p.DurationWeeks > MaxDurationWeeks {
		return fmt.Errorf("duration must be between %d and %d weeks, got %d",
			MinDurationWeeks, MaxDurationWeeks, p.DurationWeeks)
	}
	if p.StartWeightKg <= 0 {
		return fmt.Errorf("start weight must be positive, got %.1f", p.StartWeightKg)
	}
	if p.GoalWeightKg <= 0 {
		return fmt.Errorf("goal weight must be positive, got %.1f", p.GoalWeightKg)
	}
	if p.GoalWeightKg == p.StartWeightKg {
		return fmt.Errorf("goal weight must differ from start weight")
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	return nil
}

// RequiredWeeklyChangeKg is the weekly rate the plan demands. Negative for a
// weight-loss plan, positive for a gain plan.
func (p *NutritionPlan) RequiredWeeklyChangeKg() float64 {
	return (p.GoalWeightKg - p.StartWeightKg) / float64(p.DurationWeeks)
}

// IsWeightLoss reports whether the plan moves weight downward.
func (p *NutritionPlan) IsWeightLoss() bool {
	return p.GoalWeightKg < p.StartWeightKg
}

// TotalChangeKg is the magnitude of the planned change.
func (p *NutritionPlan) TotalChangeKg() float64 {
	return math.Abs(p.GoalWeightKg - p.StartWeightKg)
}

// Tolerance returns the configured variance tolerance, falling back to the
// product default when unset.
func (p *NutritionPlan) Tolerance() float64 {
	if p.TolerancePercent <= 0 {
		return DefaultTolerancePercent
	}
	return p.TolerancePercent
}

// pausedDaysAsOf counts total paused days including an open pause.
func (p *NutritionPlan) pausedDaysAsOf(asOf time.Time) int {
	total := p.PausedDays
	if p.Status == PlanPaused && p.PausedAt != nil {
		if d := DaysBetween(*p.PausedAt, asOf); d > 0 {
			total += d
		}
	}
	return total
}

// ElapsedPlanDays counts plan-time days from the start to asOf, excluding
// paused time. Never negative.
func (p *NutritionPlan) ElapsedPlanDays(asOf time.Time) int {
	elapsed := DaysBetween(p.StartDate, asOf) - p.pausedDaysAsOf(asOf)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// CurrentWeek derives the 1-based plan week at asOf, clamped to the plan's
// duration.
func (p *NutritionPlan) CurrentWeek(asOf time.Time) int {
	week := p.ElapsedPlanDays(asOf)/7 + 1
	if week < 1 {
		return 1
	}
	if week > p.DurationWeeks {
		return p.DurationWeeks
	}
	return week
}

// RemainingWeeks counts full plan weeks left at asOf.
func (p *NutritionPlan) RemainingWeeks(asOf time.Time) int {
	remaining := p.DurationWeeks - p.CurrentWeek(asOf)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EndDate is the calendar date the plan finishes, shifted out by any paused
// time accrued up to asOf.
func (p *NutritionPlan) EndDate(asOf time.Time) time.Time {
	return p.StartDate.AddDate(0, 0, p.DurationWeeks*7+p.pausedDaysAsOf(asOf))
}

// Pause suspends an active plan. Paused time does not count toward plan weeks.
func (p *NutritionPlan) Pause(now time.Time) error {
	if p.Status != PlanActive {
		return fmt.Errorf("cannot pause a %s plan", p.Status)
	}
	paused := DateOf(now)
	p.Status = PlanPaused
	p.PausedAt = &paused
	p.UpdatedAt = now
	return nil
}

// Resume reactivates a paused plan, banking the paused days.
func (p *NutritionPlan) Resume(now time.Time) error {
	if p.Status != PlanPaused {
		return fmt.Errorf("cannot resume a %s plan", p.Status)
	}
	if p.PausedAt != nil {
		if d := DaysBetween(*p.PausedAt, now); d > 0 {
			p.PausedDays += d
		}
	}
	p.Status = PlanActive
	p.PausedAt = nil
	p.UpdatedAt = now
	return nil
}

// Complete marks the plan finished. Allowed from active or paused.
func (p *NutritionPlan) Complete(now time.Time) error {
	if p.Status.IsTerminal() {
		return fmt.Errorf("plan is already %s", p.Status)
	}
	p.Status = PlanCompleted
	p.PausedAt = nil
	p.UpdatedAt = now
	return nil
}

// Abandon marks the plan given up. Allowed from active or paused.
func (p *NutritionPlan) Abandon(now time.Time) error {
	if p.Status.IsTerminal() {
		return fmt.Errorf("plan is already %s", p.Status)
	}
	p.Status = PlanAbandoned
	p.PausedAt = nil
	p.UpdatedAt = now
	return nil
}
