package domain

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanPaused    PlanStatus = "paused"
	PlanCompleted PlanStatus = "completed"
	PlanAbandoned PlanStatus = "abandoned"
)

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s PlanStatus) IsTerminal() bool {
	return s == PlanCompleted || s == PlanAbandoned
}

type HealthLevel string

const (
	HealthOnTrack  HealthLevel = "on_track"
	HealthAtRisk   HealthLevel = "at_risk"
	HealthOffTrack HealthLevel = "off_track"
	HealthCritical HealthLevel = "critical"
)

type LoadZone string

const (
	ZoneOptimal  LoadZone = "optimal"
	ZoneHigh     LoadZone = "high"
	ZoneOverload LoadZone = "overload"
)

type OptionType string

const (
	OptionIncreaseDeficit OptionType = "increase_deficit"
	OptionDecreaseDeficit OptionType = "decrease_deficit"
	OptionExtendTimeline  OptionType = "extend_timeline"
	OptionReviseGoal      OptionType = "revise_goal"
	OptionKeepCurrent     OptionType = "keep_current"
)

// ValidOptionTypes is the canonical set of recalibration option strings
// accepted by the recalibrate operation.
var ValidOptionTypes = map[string]bool{
	"increase_deficit": true, "decrease_deficit": true,
	"extend_timeline": true, "revise_goal": true, "keep_current": true,
}

type Feasibility string

const (
	FeasibilityAchievable Feasibility = "Achievable"
	FeasibilityModerate   Feasibility = "Moderate"
	FeasibilityAmbitious  Feasibility = "Ambitious"
)

type DriftDirection string

const (
	DriftTDEEHigher DriftDirection = "tdee_higher"
	DriftTDEELower  DriftDirection = "tdee_lower"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ValidActivityLevels is the canonical set of accepted activity level strings.
var ValidActivityLevels = map[string]bool{
	"sedentary": true, "light": true, "moderate": true,
	"active": true, "very_active": true,
}

type BMRFormula string

const (
	FormulaMifflinStJeor  BMRFormula = "mifflin_st_jeor"
	FormulaHarrisBenedict BMRFormula = "harris_benedict"
	FormulaKatchMcArdle   BMRFormula = "katch_mcardle"
)

// ValidBMRFormulas is the canonical set of accepted BMR formula strings.
var ValidBMRFormulas = map[string]bool{
	"mifflin_st_jeor": true, "harris_benedict": true, "katch_mcardle": true,
}

type TrainingCategory string

const (
	CategoryCardio   TrainingCategory = "cardio"
	CategoryStrength TrainingCategory = "strength"
	CategoryMobility TrainingCategory = "mobility"
	CategorySport    TrainingCategory = "sport"
	CategoryRest     TrainingCategory = "rest"
)

// RestType is the sentinel training type for rest days. Rest sessions carry
// zero duration and contribute zero load.
const RestType = "rest"
