package service

import (
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// resolveDate parses a YYYY-MM-DD argument, resolving an empty string to
// today per the injected clock. Analyses downstream always receive the
// resolved explicit date.
func resolveDate(s string, now func() time.Time) (time.Time, error) {
	if s == "" {
		return domain.DateOf(now()), nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, Validationf("%v", err)
	}
	return d, nil
}

// buildTargets generates the weekly trajectory for weeks [fromWeek, duration],
// linear from anchorWeightKg to the plan's goal. Projected TDEE comes from
// the profile formula at each week's projected weight; projected intake adds
// the energy equivalent of the weekly change.
func buildTargets(plan *domain.NutritionPlan, profile *domain.UserProfile, fromWeek int, anchorWeightKg float64) []domain.WeeklyTarget {
	remaining := plan.DurationWeeks - fromWeek + 1
	if remaining <= 0 {
		return nil
	}
	weeklyChange := (plan.GoalWeightKg - anchorWeightKg) / float64(remaining)

	targets := make([]domain.WeeklyTarget, 0, remaining)
	for week := fromWeek; week <= plan.DurationWeeks; week++ {
		start := plan.StartDate.AddDate(0, 0, (week-1)*7)
		projWeight := anchorWeightKg + weeklyChange*float64(week-fromWeek+1)
		projTDEE := analysis.FormulaTDEE(*profile, projWeight, nil, start)
		targets = append(targets, domain.WeeklyTarget{
			PlanID:              plan.ID,
			WeekNumber:          week,
			StartDate:           start,
			EndDate:             start.AddDate(0, 0, 6),
			ProjectedWeightKg:   projWeight,
			ProjectedTDEE:       projTDEE,
			ProjectedIntakeKcal: projTDEE + weeklyChange*analysis.EnergyPerKg/7,
		})
	}
	return targets
}

// targetForDate finds the plan's weekly target covering a date.
func targetForDate(plan *domain.NutritionPlan, date time.Time) (domain.WeeklyTarget, bool) {
	week := plan.CurrentWeek(date)
	for _, t := range plan.Targets {
		if t.WeekNumber == week {
			return t, true
		}
	}
	return domain.WeeklyTarget{}, false
}

// weightPoints extracts dated weight observations from logs.
func weightPoints(logs []*domain.DailyLog) []analysis.WeightPoint {
	points := make([]analysis.WeightPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, analysis.WeightPoint{Date: l.Date, WeightKg: l.WeightKg})
	}
	return points
}

// dayRecords extracts the metabolic estimator's per-day inputs from logs.
func dayRecords(logs []*domain.DailyLog) []analysis.DayRecord {
	records := make([]analysis.DayRecord, 0, len(logs))
	for _, l := range logs {
		weight := l.WeightKg
		records = append(records, analysis.DayRecord{
			Date:       l.Date,
			WeightKg:   &weight,
			IntakeKcal: l.IntakeKcal,
		})
	}
	return records
}

// validateSessions rejects sessions whose type is not in the catalog or whose
// fields are out of range, before they reach storage or the load math.
func validateSessions(kind string, sessions []domain.TrainingSession, cat *catalog.Catalog) error {
	for i, s := range sessions {
		if err := s.Validate(); err != nil {
			return Validationf("%s session %d: %v", kind, i+1, err)
		}
		if !cat.Valid(s.Type) {
			return Validationf("%s session %d: unknown training type %q", kind, i+1, s.Type)
		}
	}
	return nil
}

// planCovering reports whether the plan's trajectory applies to a date.
func planCovering(plan *domain.NutritionPlan, date time.Time) bool {
	if plan == nil {
		return false
	}
	return !date.Before(domain.DateOf(plan.StartDate))
}
