package analysis

import (
	"fmt"
	"math"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// Feasibility bands for recalibration options.
const (
	kcalAchievableMax  = 250.0
	kcalModerateMax    = 500.0
	weeksAchievableMax = 2
	weeksModerateMax   = 6
	// borderlineBandKg widens each status boundary; inside it keep_current
	// is always offered.
	borderlineBandKg = 0.5
)

type OptionSetStatus string

const (
	// OptionsComputed carries a non-empty option list.
	OptionsComputed OptionSetStatus = "computed"
	// OptionsPending means an adjustment looks needed but there is not yet
	// enough data to compute one. Distinct from an empty list on purpose.
	OptionsPending OptionSetStatus = "pending"
	// OptionsNotNeeded means the analysis did not call for options.
	OptionsNotNeeded OptionSetStatus = "not_needed"
)

// OptionSet is the tagged result of option generation.
type OptionSet struct {
	Status  OptionSetStatus
	Options []Option
}

// Option is one recalibration choice. The numeric fields carry what applying
// the option changes, so callers never parse the display strings.
type Option struct {
	Type            domain.OptionType
	Feasibility     domain.Feasibility
	NewParameter    string
	Impact          string
	DailyKcalDelta  int
	ExtraWeeks      int
	NewGoalWeightKg float64
}

// OptionInput feeds the generator. Required reflects the analyzer's verdict
// that some adjustment is called for; without it the set is NotNeeded.
type OptionInput struct {
	Plan           domain.NutritionPlan
	Landing        LandingPoint
	RemainingWeeks int
	Required       bool
}

// GenerateOptions produces the bounded adjustment set for an analysis.
// With a landing point it computes up to four options; without one it can
// only report Pending, so consumers can tell "nothing to do" apart from
// "something to do, not yet computable".
func GenerateOptions(in OptionInput) OptionSet {
	if !in.Required {
		return OptionSet{Status: OptionsNotNeeded}
	}
	if !in.Landing.Projected() {
		return OptionSet{Status: OptionsPending}
	}

	plan := in.Plan
	variance := in.Landing.VarianceFromGoalKg
	options := make([]Option, 0, 4)

	if opt, ok := intakeOption(plan, in.Landing, in.RemainingWeeks); ok {
		options = append(options, opt)
	}
	if opt, ok := extendOption(plan, in.Landing); ok {
		options = append(options, opt)
	}
	options = append(options, reviseGoalOption(plan, in.Landing))

	if len(options) < 2 || nearStatusBoundary(variance) {
		options = append(options, keepCurrentOption())
	}

	return OptionSet{Status: OptionsComputed, Options: options}
}

// intakeOption closes the projected gap within the remaining weeks by
// shifting daily intake. Framing follows the needed direction of
// correction: a landing above goal means eat less, below goal means eat
// more, regardless of whether the plan loses or gains.
func intakeOption(plan domain.NutritionPlan, landing LandingPoint, remainingWeeks int) (Option, bool) {
	if remainingWeeks <= 0 {
		return Option{}, false
	}
	additionalWeekly := landing.VarianceFromGoalKg / float64(remainingWeeks)
	kcal := roundTo50(additionalWeekly * EnergyPerKg / 7)
	if kcal == 0 {
		return Option{}, false
	}

	eatLess := landing.WeightKg > plan.GoalWeightKg
	opt := Option{
		Feasibility: kcalFeasibility(float64(kcal)),
	}
	if eatLess {
		opt.Type = domain.OptionIncreaseDeficit
		opt.DailyKcalDelta = -kcal
		opt.NewParameter = fmt.Sprintf("Reduce daily intake by %d kcal", kcal)
		opt.Impact = fmt.Sprintf("Reaches %.1f kg in the remaining %d weeks", plan.GoalWeightKg, remainingWeeks)
	} else {
		opt.Type = domain.OptionDecreaseDeficit
		opt.DailyKcalDelta = kcal
		opt.NewParameter = fmt.Sprintf("Increase daily intake by %d kcal", kcal)
		opt.Impact = fmt.Sprintf("Reaches %.1f kg in the remaining %d weeks", plan.GoalWeightKg, remainingWeeks)
	}
	return opt, true
}

// extendOption holds intake and adds weeks so the original weekly rate still
// reaches the goal from the projected landing point.
func extendOption(plan domain.NutritionPlan, landing LandingPoint) (Option, bool) {
	rate := math.Abs(plan.RequiredWeeklyChangeKg())
	if rate == 0 {
		return Option{}, false
	}
	extra := int(math.Ceil(landing.VarianceFromGoalKg / rate))
	if extra < 1 {
		return Option{}, false
	}
	if plan.DurationWeeks+extra > domain.MaxDurationWeeks {
		return Option{}, false
	}
	newEnd := landing.Date.AddDate(0, 0, extra*7)
	return Option{
		Type:         domain.OptionExtendTimeline,
		Feasibility:  weeksFeasibility(extra),
		NewParameter: fmt.Sprintf("Extend plan by %d weeks (%d total)", extra, plan.DurationWeeks+extra),
		Impact:       fmt.Sprintf("Keeps current intake; goal date moves to %s", domain.FormatDate(newEnd)),
		ExtraWeeks:   extra,
	}, true
}

// reviseGoalOption shifts the target to the projected landing point.
func reviseGoalOption(plan domain.NutritionPlan, landing LandingPoint) Option {
	newGoal := math.Round(landing.WeightKg*10) / 10
	return Option{
		Type:            domain.OptionReviseGoal,
		Feasibility:     domain.FeasibilityAchievable,
		NewParameter:    fmt.Sprintf("Adjust goal to %.1f kg", newGoal),
		Impact:          "Keeps current intake and timeline",
		NewGoalWeightKg: newGoal,
	}
}

func keepCurrentOption() Option {
	return Option{
		Type:         domain.OptionKeepCurrent,
		Feasibility:  domain.FeasibilityAchievable,
		NewParameter: "No change",
		Impact:       "Continue with the current plan and re-assess next week",
	}
}

// roundTo50 snaps a kcal adjustment to the nearest practical 50-kcal step.
func roundTo50(v float64) int {
	return int(math.Round(v/50) * 50)
}

func kcalFeasibility(kcal float64) domain.Feasibility {
	switch {
	case kcal <= kcalAchievableMax:
		return domain.FeasibilityAchievable
	case kcal <= kcalModerateMax:
		return domain.FeasibilityModerate
	default:
		return domain.FeasibilityAmbitious
	}
}

func weeksFeasibility(weeks int) domain.Feasibility {
	switch {
	case weeks <= weeksAchievableMax:
		return domain.FeasibilityAchievable
	case weeks <= weeksModerateMax:
		return domain.FeasibilityModerate
	default:
		return domain.FeasibilityAmbitious
	}
}

// nearStatusBoundary reports whether the landing variance sits close enough
// to a status boundary that keeping the current plan is a defensible choice.
func nearStatusBoundary(varianceKg float64) bool {
	return math.Abs(varianceKg-LandingOnTrackKg) <= borderlineBandKg ||
		math.Abs(varianceKg-LandingAtRiskKg) <= borderlineBandKg
}
