package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
)

const (
	// TrendWindowDays bounds the weight series fed to the plan trend fit.
	TrendWindowDays = 28
	// LandingOnTrackKg and LandingAtRiskKg split the landing-point variance
	// into the health ladder. Boundaries belong to the lower-severity class.
	LandingOnTrackKg = 1.0
	LandingAtRiskKg  = 3.0
	// divergenceMinSlopeKg keeps a flat trend from reading as divergence.
	divergenceMinSlopeKg = 0.05
)

type LandingStatus string

const (
	LandingProjected        LandingStatus = "projected"
	LandingInsufficientData LandingStatus = "insufficient_data"
)

// LandingPoint is the trend-extrapolated weight at the plan's end date. The
// projection fields are meaningful only when Status is LandingProjected; an
// absent projection is a normal result.
type LandingPoint struct {
	Status             LandingStatus
	WeightKg           float64
	Date               time.Time
	VarianceFromGoalKg float64
	OnTrackForGoal     bool
}

// Projected reports whether the landing point carries a usable projection.
func (l LandingPoint) Projected() bool {
	return l.Status == LandingProjected
}

// AnalysisInput is the snapshot a dual-track analysis runs over. Weights are
// the plan's logged observations; AnalysisDate is always explicit so results
// replay deterministically.
type AnalysisInput struct {
	Plan         domain.NutritionPlan
	Weights      []WeightPoint
	AnalysisDate time.Time
}

// DualTrackResult compares the planned trajectory against the observed one
// as of a single analysis date.
type DualTrackResult struct {
	PlanID              string
	AnalysisDate        time.Time
	PlannedWeightKg     float64
	ActualWeightKg      float64
	VarianceKg          float64
	VariancePercent     float64
	TolerancePercent    float64
	ToleranceExceeded   bool
	TrendDiverging      bool
	DivergenceMessage   string
	Trend               TrendResult
	Landing             LandingPoint
	Status              domain.HealthLevel
	RecalibrationNeeded bool
	Options             OptionSet
}

// AnalyzePlan runs the dual-track analysis: planned vs actual weight,
// variance, trend divergence, landing-point projection, health status, and
// recalibration options. Pure; all history arrives in the input.
func AnalyzePlan(in AnalysisInput) DualTrackResult {
	plan := in.Plan
	asOf := domain.DateOf(in.AnalysisDate)

	planned := PlannedWeightAt(plan, asOf)
	actual, actualDate, hasActual := latestWeightAt(in.Weights, asOf)
	if !hasActual {
		actual = plan.StartWeightKg
		actualDate = plan.StartDate
	}

	variance := actual - planned
	totalChange := plan.TotalChangeKg()
	if totalChange == 0 {
		totalChange = 1
	}
	variancePercent := math.Abs(variance) / totalChange * 100
	tolerance := plan.Tolerance()

	trend := FitTrend(recentWeights(in.Weights, asOf, TrendWindowDays))

	required := plan.RequiredWeeklyChangeKg()
	diverging := false
	divergenceMsg := ""
	if trend.Fitted() &&
		math.Abs(trend.SlopePerWeek) > divergenceMinSlopeKg &&
		opposes(trend.SlopePerWeek, required) {
		diverging = true
		divergenceMsg = fmt.Sprintf(
			"Plan expects %+.2f kg/week but the recent trend is %+.2f kg/week.",
			required, trend.SlopePerWeek)
	}

	landing := projectLanding(plan, trend, actual, actualDate, asOf)

	status := classify(diverging, landing)
	toleranceExceeded := variancePercent > tolerance

	options := GenerateOptions(OptionInput{
		Plan:           plan,
		Landing:        landing,
		RemainingWeeks: plan.RemainingWeeks(asOf),
		Required:       toleranceExceeded || statusNeedsRecalibration(status),
	})
	needed := statusNeedsRecalibration(status) && options.Status != OptionsNotNeeded

	return DualTrackResult{
		PlanID:              plan.ID,
		AnalysisDate:        asOf,
		PlannedWeightKg:     planned,
		ActualWeightKg:      actual,
		VarianceKg:          variance,
		VariancePercent:     variancePercent,
		TolerancePercent:    tolerance,
		ToleranceExceeded:   toleranceExceeded,
		TrendDiverging:      diverging,
		DivergenceMessage:   divergenceMsg,
		Trend:               trend,
		Landing:             landing,
		Status:              status,
		RecalibrationNeeded: needed,
		Options:             options,
	}
}

// PlannedWeightAt interpolates the plan's weekly targets to a date. Targets
// are consulted rather than the global linear formula because recalibration
// can regenerate the remaining weeks at a different rate. Before the start
// it is the start weight; past the end it is the final target.
func PlannedWeightAt(plan domain.NutritionPlan, asOf time.Time) float64 {
	elapsed := plan.ElapsedPlanDays(asOf)
	if elapsed <= 0 {
		return plan.StartWeightKg
	}
	if elapsed >= plan.DurationWeeks*7 {
		return targetWeight(plan, plan.DurationWeeks)
	}
	week := elapsed / 7
	frac := float64(elapsed%7) / 7
	from := plan.StartWeightKg
	if week > 0 {
		from = targetWeight(plan, week)
	}
	to := targetWeight(plan, week+1)
	return from + (to-from)*frac
}

// targetWeight returns the projected weight at the end of a plan week,
// falling back to the linear trajectory when no stored target exists.
func targetWeight(plan domain.NutritionPlan, week int) float64 {
	for _, t := range plan.Targets {
		if t.WeekNumber == week {
			return t.ProjectedWeightKg
		}
	}
	return plan.StartWeightKg + plan.RequiredWeeklyChangeKg()*float64(week)
}

func latestWeightAt(points []WeightPoint, asOf time.Time) (float64, time.Time, bool) {
	var (
		best     WeightPoint
		found    bool
		bestDate time.Time
	)
	for _, p := range points {
		d := domain.DateOf(p.Date)
		if d.After(asOf) {
			continue
		}
		if !found || d.After(bestDate) {
			best = p
			bestDate = d
			found = true
		}
	}
	return best.WeightKg, bestDate, found
}

func recentWeights(points []WeightPoint, asOf time.Time, windowDays int) []WeightPoint {
	cutoff := asOf.AddDate(0, 0, -(windowDays - 1))
	out := make([]WeightPoint, 0, len(points))
	for _, p := range points {
		d := domain.DateOf(p.Date)
		if d.Before(cutoff) || d.After(asOf) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func projectLanding(plan domain.NutritionPlan, trend TrendResult, actual float64, actualDate, asOf time.Time) LandingPoint {
	if !trend.Fitted() {
		return LandingPoint{Status: LandingInsufficientData}
	}
	end := domain.DateOf(plan.EndDate(asOf))
	projected := actual + trend.SlopePerDay*float64(domain.DaysBetween(actualDate, end))
	variance := math.Abs(projected - plan.GoalWeightKg)
	return LandingPoint{
		Status:             LandingProjected,
		WeightKg:           projected,
		Date:               end,
		VarianceFromGoalKg: variance,
		OnTrackForGoal:     variance < LandingOnTrackKg,
	}
}

// classify applies the status ladder in priority order. A missing landing
// point defaults to the neutral state, not a warning.
func classify(diverging bool, landing LandingPoint) domain.HealthLevel {
	switch {
	case diverging:
		return domain.HealthCritical
	case !landing.Projected():
		return domain.HealthOnTrack
	case landing.VarianceFromGoalKg < LandingOnTrackKg:
		return domain.HealthOnTrack
	case landing.VarianceFromGoalKg <= LandingAtRiskKg:
		return domain.HealthAtRisk
	default:
		return domain.HealthOffTrack
	}
}

func statusNeedsRecalibration(s domain.HealthLevel) bool {
	return s == domain.HealthAtRisk || s == domain.HealthOffTrack || s == domain.HealthCritical
}

func opposes(a, b float64) bool {
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}
