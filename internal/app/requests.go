// Package app holds the use-case DTOs shared by the HTTP API and the CLI:
// request shapes arriving at the service layer and view shapes leaving it.
// Dates travel as YYYY-MM-DD strings at this boundary; the services parse and
// validate them.
package app

// CreatePlanRequest carries the fields needed to start a nutrition plan.
type CreatePlanRequest struct {
	StartDate        string   `json:"startDate"`
	StartWeightKg    float64  `json:"startWeightKg"`
	GoalWeightKg     float64  `json:"goalWeightKg"`
	DurationWeeks    int      `json:"durationWeeks"`
	TolerancePercent *float64 `json:"tolerancePercent,omitempty"`
}

// RecalibrateRequest applies one generated option to a plan.
type RecalibrateRequest struct {
	PlanID     string `json:"-"`
	OptionType string `json:"optionType"`
	// Date pins the analysis the option is derived from; empty means the
	// caller's today, resolved before the request reaches the core.
	Date string `json:"date,omitempty"`
}

// AnalysisRequest asks for a dual-track analysis. An empty PlanID targets the
// active plan; an empty Date is resolved to the caller's today at the boundary.
type AnalysisRequest struct {
	PlanID string
	Date   string
}

// CreateLogRequest carries a submitted daily log. Weight is required; every
// other field is optional.
type CreateLogRequest struct {
	Date             string           `json:"date"`
	WeightKg         float64          `json:"weightKg"`
	IntakeKcal       *float64         `json:"intakeKcal,omitempty"`
	BodyFatPercent   *float64         `json:"bodyFatPercent,omitempty"`
	RestingHeartRate *int             `json:"restingHeartRate,omitempty"`
	SleepHours       *float64         `json:"sleepHours,omitempty"`
	Steps            *int             `json:"steps,omitempty"`
	ActiveCalories   *int             `json:"activeCalories,omitempty"`
	PlannedSessions  []SessionPayload `json:"plannedSessions,omitempty"`
	ActualSessions   []SessionPayload `json:"actualSessions,omitempty"`
}

// SessionPayload is one training session as submitted or rendered.
type SessionPayload struct {
	Type               string `json:"type"`
	DurationMin        int    `json:"durationMin"`
	PerceivedIntensity *int   `json:"perceivedIntensity,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// SyncPatchRequest is the companion sync client's partial update. Absent
// fields are nil and must never overwrite previously-known values.
type SyncPatchRequest struct {
	Date             string   `json:"-"`
	WeightKg         *float64 `json:"weightKg,omitempty"`
	BodyFatPercent   *float64 `json:"bodyFatPercent,omitempty"`
	RestingHeartRate *int     `json:"restingHeartRate,omitempty"`
	SleepHours       *float64 `json:"sleepHours,omitempty"`
	Steps            *int     `json:"steps,omitempty"`
	ActiveCalories   *int     `json:"activeCalories,omitempty"`
}

// TrainingPatchRequest replaces a log's actual sessions.
type TrainingPatchRequest struct {
	Date           string           `json:"-"`
	ActualSessions []SessionPayload `json:"actualSessions"`
}

// UpdateProfileRequest carries the profile fields behind the formula TDEE.
type UpdateProfileRequest struct {
	Sex           string  `json:"sex"`
	BirthDate     string  `json:"birthDate"`
	HeightCm      float64 `json:"heightCm"`
	ActivityLevel string  `json:"activityLevel"`
	BMRFormula    string  `json:"bmrFormula,omitempty"`
}

// ChartRequest bounds the metabolic chart series.
type ChartRequest struct {
	From string
	To   string
}

// LoadRequest asks for the training-load picture as of a date.
type LoadRequest struct {
	Date string
	Days int
}
