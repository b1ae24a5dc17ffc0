package app

import (
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// PlanView is the external shape of a nutrition plan.
type PlanView struct {
	ID                     string       `json:"id"`
	StartDate              string       `json:"startDate"`
	EndDate                string       `json:"endDate"`
	StartWeightKg          float64      `json:"startWeightKg"`
	GoalWeightKg           float64      `json:"goalWeightKg"`
	DurationWeeks          int          `json:"durationWeeks"`
	TolerancePercent       float64      `json:"tolerancePercent"`
	RequiredWeeklyChangeKg float64      `json:"requiredWeeklyChangeKg"`
	Status                 string       `json:"status"`
	CurrentWeek            int          `json:"currentWeek"`
	PausedDays             int          `json:"pausedDays"`
	Targets                []TargetView `json:"targets,omitempty"`
	CreatedAt              string       `json:"createdAt"`
}

// TargetView is one plan week's projected and observed aggregates.
type TargetView struct {
	WeekNumber          int      `json:"weekNumber"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	ProjectedWeightKg   float64  `json:"projectedWeightKg"`
	ProjectedTDEE       float64  `json:"projectedTDEE"`
	ProjectedIntakeKcal float64  `json:"projectedIntakeKcal"`
	ActualAvgWeightKg   *float64 `json:"actualAvgWeightKg,omitempty"`
	ActualAvgIntakeKcal *float64 `json:"actualAvgIntakeKcal,omitempty"`
	ActualAvgTDEE       *float64 `json:"actualAvgTDEE,omitempty"`
}

// NewPlanView renders a plan as of a date (currentWeek and endDate depend on
// accrued paused time).
func NewPlanView(p *domain.NutritionPlan, asOf time.Time) PlanView {
	v := PlanView{
		ID:                     p.ID,
		StartDate:              domain.FormatDate(p.StartDate),
		EndDate:                domain.FormatDate(p.EndDate(asOf)),
		StartWeightKg:          p.StartWeightKg,
		GoalWeightKg:           p.GoalWeightKg,
		DurationWeeks:          p.DurationWeeks,
		TolerancePercent:       p.Tolerance(),
		RequiredWeeklyChangeKg: p.RequiredWeeklyChangeKg(),
		Status:                 string(p.Status),
		CurrentWeek:            p.CurrentWeek(asOf),
		PausedDays:             p.PausedDays,
		CreatedAt:              p.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range p.Targets {
		v.Targets = append(v.Targets, TargetView{
			WeekNumber:          t.WeekNumber,
			StartDate:           domain.FormatDate(t.StartDate),
			EndDate:             domain.FormatDate(t.EndDate),
			ProjectedWeightKg:   t.ProjectedWeightKg,
			ProjectedTDEE:       t.ProjectedTDEE,
			ProjectedIntakeKcal: t.ProjectedIntakeKcal,
			ActualAvgWeightKg:   t.ActualAvgWeightKg,
			ActualAvgIntakeKcal: t.ActualAvgIntakeKcal,
			ActualAvgTDEE:       t.ActualAvgTDEE,
		})
	}
	return v
}

// CalculatedTargetsView carries the plan-derived targets for a log date.
type CalculatedTargetsView struct {
	PlanID           string  `json:"planId"`
	WeekNumber       int     `json:"weekNumber"`
	TargetWeightKg   float64 `json:"targetWeightKg"`
	TargetIntakeKcal float64 `json:"targetIntakeKcal"`
}

// TrainingSummaryView aggregates a day's actual sessions.
type TrainingSummaryView struct {
	SessionCount     int     `json:"sessionCount"`
	TotalDurationMin int     `json:"totalDurationMin"`
	TotalLoad        float64 `json:"totalLoad"`
	EstimatedKcal    float64 `json:"estimatedKcal"`
}

// SnapshotView is the computed view of one daily log: the submitted fields
// plus the non-destructively added computed ones.
type SnapshotView struct {
	Date             string                 `json:"date"`
	WeightKg         float64                `json:"weightKg"`
	IntakeKcal       *float64               `json:"intakeKcal,omitempty"`
	BodyFatPercent   *float64               `json:"bodyFatPercent,omitempty"`
	RestingHeartRate *int                   `json:"restingHeartRate,omitempty"`
	SleepHours       *float64               `json:"sleepHours,omitempty"`
	Steps            *int                   `json:"steps,omitempty"`
	ActiveCalories   *int                   `json:"activeCalories,omitempty"`
	PlannedSessions  []SessionPayload       `json:"plannedSessions"`
	ActualSessions   []SessionPayload       `json:"actualSessions"`
	EstimatedTDEE    *float64               `json:"estimatedTDEE,omitempty"`
	Confidence       *float64               `json:"confidence,omitempty"`
	Targets          *CalculatedTargetsView `json:"calculatedTargets,omitempty"`
	TrainingSummary  TrainingSummaryView    `json:"trainingSummary"`
	Revision         int                    `json:"revision"`
}

// NewSnapshotView renders a stored snapshot.
func NewSnapshotView(s *domain.DailyLogSnapshot) SnapshotView {
	v := SnapshotView{
		Date:             domain.FormatDate(s.Log.Date),
		WeightKg:         s.Log.WeightKg,
		IntakeKcal:       s.Log.IntakeKcal,
		BodyFatPercent:   s.Log.BodyFatPercent,
		RestingHeartRate: s.Log.RestingHeartRate,
		SleepHours:       s.Log.SleepHours,
		Steps:            s.Log.Steps,
		ActiveCalories:   s.Log.ActiveCalories,
		PlannedSessions:  NewSessionPayloads(s.Log.PlannedSessions),
		ActualSessions:   NewSessionPayloads(s.Log.ActualSessions),
		EstimatedTDEE:    s.EstimatedTDEE,
		Confidence:       s.Confidence,
		TrainingSummary: TrainingSummaryView{
			SessionCount:     s.TrainingSummary.SessionCount,
			TotalDurationMin: s.TrainingSummary.TotalDurationMin,
			TotalLoad:        s.TrainingSummary.TotalLoad,
			EstimatedKcal:    s.TrainingSummary.EstimatedKcal,
		},
		Revision: s.Revision,
	}
	if s.Targets != nil {
		v.Targets = &CalculatedTargetsView{
			PlanID:           s.Targets.PlanID,
			WeekNumber:       s.Targets.WeekNumber,
			TargetWeightKg:   s.Targets.TargetWeightKg,
			TargetIntakeKcal: s.Targets.TargetIntakeKcal,
		}
	}
	return v
}

// NewSessionPayloads converts domain sessions to their payload shape. The
// result is never nil so JSON renders an empty array, not null.
func NewSessionPayloads(sessions []domain.TrainingSession) []SessionPayload {
	out := make([]SessionPayload, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionPayload{
			Type:               s.Type,
			DurationMin:        s.DurationMin,
			PerceivedIntensity: s.PerceivedIntensity,
			Notes:              s.Notes,
		})
	}
	return out
}

// SessionsFromPayloads converts submitted payloads to domain sessions.
func SessionsFromPayloads(payloads []SessionPayload) []domain.TrainingSession {
	out := make([]domain.TrainingSession, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, domain.TrainingSession{
			Type:               p.Type,
			DurationMin:        p.DurationMin,
			PerceivedIntensity: p.PerceivedIntensity,
			Notes:              p.Notes,
		})
	}
	return out
}

// TrendView is the fitted (or explicitly unfitted) weight trend.
type TrendView struct {
	Status       string  `json:"status"`
	SlopePerWeek float64 `json:"slopePerWeekKg"`
	R2           float64 `json:"r2"`
	Days         int     `json:"days"`
}

// LandingView is the tagged landing-point projection.
type LandingView struct {
	Status             string  `json:"status"`
	WeightKg           float64 `json:"weightKg,omitempty"`
	Date               string  `json:"date,omitempty"`
	VarianceFromGoalKg float64 `json:"varianceFromGoalKg,omitempty"`
	OnTrackForGoal     bool    `json:"onTrackForGoal,omitempty"`
}

// OptionView is one recalibration option.
type OptionView struct {
	Type         string `json:"type"`
	Feasibility  string `json:"feasibility"`
	NewParameter string `json:"newParameter"`
	Impact       string `json:"impact"`
}

// OptionSetView is the tagged option set: computed options, an explicit
// pending state, or not needed at all.
type OptionSetView struct {
	Status  string       `json:"status"`
	Options []OptionView `json:"options"`
}

// AnalysisView is the dual-track analysis payload.
type AnalysisView struct {
	PlanID              string        `json:"planId"`
	AnalysisDate        string        `json:"analysisDate"`
	PlannedWeightKg     float64       `json:"plannedWeightKg"`
	ActualWeightKg      float64       `json:"actualWeightKg"`
	VarianceKg          float64       `json:"varianceKg"`
	VariancePercent     float64       `json:"variancePercent"`
	TolerancePercent    float64       `json:"tolerancePercent"`
	ToleranceExceeded   bool          `json:"toleranceExceeded"`
	TrendDiverging      bool          `json:"trendDiverging"`
	DivergenceMessage   string        `json:"divergenceMessage,omitempty"`
	Trend               TrendView     `json:"trend"`
	LandingPoint        LandingView   `json:"landingPoint"`
	Status              string        `json:"status"`
	RecalibrationNeeded bool          `json:"recalibrationNeeded"`
	Options             OptionSetView `json:"options"`
}

// NewAnalysisView renders a core analysis result.
func NewAnalysisView(r analysis.DualTrackResult) AnalysisView {
	v := AnalysisView{
		PlanID:              r.PlanID,
		AnalysisDate:        domain.FormatDate(r.AnalysisDate),
		PlannedWeightKg:     r.PlannedWeightKg,
		ActualWeightKg:      r.ActualWeightKg,
		VarianceKg:          r.VarianceKg,
		VariancePercent:     r.VariancePercent,
		TolerancePercent:    r.TolerancePercent,
		ToleranceExceeded:   r.ToleranceExceeded,
		TrendDiverging:      r.TrendDiverging,
		DivergenceMessage:   r.DivergenceMessage,
		Status:              string(r.Status),
		RecalibrationNeeded: r.RecalibrationNeeded,
		Trend: TrendView{
			Status:       string(r.Trend.Status),
			SlopePerWeek: r.Trend.SlopePerWeek,
			R2:           r.Trend.R2,
			Days:         r.Trend.Days,
		},
		LandingPoint: LandingView{Status: string(r.Landing.Status)},
		Options:      OptionSetView{Status: string(r.Options.Status), Options: []OptionView{}},
	}
	if r.Landing.Projected() {
		v.LandingPoint = LandingView{
			Status:             string(r.Landing.Status),
			WeightKg:           r.Landing.WeightKg,
			Date:               domain.FormatDate(r.Landing.Date),
			VarianceFromGoalKg: r.Landing.VarianceFromGoalKg,
			OnTrackForGoal:     r.Landing.OnTrackForGoal,
		}
	}
	for _, opt := range r.Options.Options {
		v.Options.Options = append(v.Options.Options, OptionView{
			Type:         string(opt.Type),
			Feasibility:  string(opt.Feasibility),
			NewParameter: opt.NewParameter,
			Impact:       opt.Impact,
		})
	}
	return v
}

// NotificationView is the active drift notification payload.
type NotificationView struct {
	ID            string  `json:"id"`
	Direction     string  `json:"direction"`
	MagnitudeKcal float64 `json:"magnitudeKcal"`
	Message       string  `json:"message"`
	OnsetDate     string  `json:"onsetDate"`
	DetectedAt    string  `json:"detectedAt"`
}

// NewNotificationView renders a drift notification.
func NewNotificationView(n *domain.DriftNotification) NotificationView {
	return NotificationView{
		ID:            n.ID,
		Direction:     string(n.Direction),
		MagnitudeKcal: n.MagnitudeKcal,
		Message:       n.Message,
		OnsetDate:     domain.FormatDate(n.OnsetDate),
		DetectedAt:    n.DetectedAt.UTC().Format(time.RFC3339),
	}
}

// ProfileView is the external shape of the user profile.
type ProfileView struct {
	Sex           string  `json:"sex"`
	BirthDate     string  `json:"birthDate"`
	HeightCm      float64 `json:"heightCm"`
	ActivityLevel string  `json:"activityLevel"`
	BMRFormula    string  `json:"bmrFormula"`
}

// NewProfileView renders a profile.
func NewProfileView(p *domain.UserProfile) ProfileView {
	return ProfileView{
		Sex:           string(p.Sex),
		BirthDate:     domain.FormatDate(p.BirthDate),
		HeightCm:      p.HeightCm,
		ActivityLevel: string(p.ActivityLevel),
		BMRFormula:    string(p.BMRFormula),
	}
}

// ChartPoint is one day of the metabolic chart series.
type ChartPoint struct {
	Date          string   `json:"date"`
	WeightKg      *float64 `json:"weightKg,omitempty"`
	EstimatedTDEE *float64 `json:"estimatedTDEE,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	FormulaTDEE   float64  `json:"formulaTDEE"`
}

// ChartResponse is the metabolic chart payload: the per-day series plus the
// fitted weight trend line when one exists.
type ChartResponse struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points []ChartPoint `json:"points"`
	Trend  TrendView    `json:"trend"`
}

// DayLoadPoint is one day of the training-load series.
type DayLoadPoint struct {
	Date string  `json:"date"`
	Load float64 `json:"load"`
}

// LoadResponse is the training-load picture as of a date.
type LoadResponse struct {
	Date            string         `json:"date"`
	Days            []DayLoadPoint `json:"days"`
	AcuteLoad       float64        `json:"acuteLoad"`
	ChronicLoad     float64        `json:"chronicLoad"`
	ACR             float64        `json:"acr"`
	Zone            string         `json:"zone"`
	OverloadedToday bool           `json:"overloadedToday"`
}
