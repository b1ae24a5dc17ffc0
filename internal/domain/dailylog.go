package domain

import (
	"fmt"
	"time"
)

// TrainingSession is one logged or planned block of training on a day.
type TrainingSession struct {
	Type               string
	DurationMin        int
	PerceivedIntensity *int
	Notes              string
}

// Validate checks session fields that do not require the training catalog.
// Catalog membership of Type is checked by the service layer.
func (s TrainingSession) Validate() error {
	if s.Type == "" {
		return fmt.Errorf("training type is required")
	}
	if s.DurationMin < 0 {
		return fmt.Errorf("duration must be >= 0, got %d", s.DurationMin)
	}
	if s.Type == RestType && s.DurationMin != 0 {
		return fmt.Errorf("rest sessions must have zero duration, got %d", s.DurationMin)
	}
	if s.PerceivedIntensity != nil {
		if *s.PerceivedIntensity < 1 || *s.PerceivedIntensity > 10 {
			return fmt.Errorf("perceived intensity must be 1-10, got %d", *s.PerceivedIntensity)
		}
	}
	return nil
}

// DailyLog holds one calendar day of submitted measurements and sessions.
// The date is the unique key; computed fields live on the snapshot, not here.
type DailyLog struct {
	ID               string
	Date             time.Time
	WeightKg         float64
	IntakeKcal       *float64
	BodyFatPercent   *float64
	RestingHeartRate *int
	SleepHours       *float64
	Steps            *int
	ActiveCalories   *int
	PlannedSessions  []TrainingSession
	ActualSessions   []TrainingSession
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks submitted log fields.
func (l *DailyLog) Validate() error {
	if l.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if l.WeightKg <= 0 {
		return fmt.Errorf("weight must be positive, got %.1f", l.WeightKg)
	}
	if l.IntakeKcal != nil && *l.IntakeKcal < 0 {
		return fmt.Errorf("intake must be >= 0, got %.0f", *l.IntakeKcal)
	}
	if l.BodyFatPercent != nil && (*l.BodyFatPercent <= 0 || *l.BodyFatPercent >= 100) {
		return fmt.Errorf("body fat percent must be in (0, 100), got %.1f", *l.BodyFatPercent)
	}
	if l.SleepHours != nil && (*l.SleepHours < 0 || *l.SleepHours > 24) {
		return fmt.Errorf("sleep hours must be in [0, 24], got %.1f", *l.SleepHours)
	}
	if l.RestingHeartRate != nil && *l.RestingHeartRate <= 0 {
		return fmt.Errorf("resting heart rate must be positive, got %d", *l.RestingHeartRate)
	}
	if l.Steps != nil && *l.Steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", *l.Steps)
	}
	if l.ActiveCalories != nil && *l.ActiveCalories < 0 {
		return fmt.Errorf("active calories must be >= 0, got %d", *l.ActiveCalories)
	}
	for i, s := range l.PlannedSessions {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("planned session %d: %w", i+1, err)
		}
	}
	for i, s := range l.ActualSessions {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("actual session %d: %w", i+1, err)
		}
	}
	return nil
}

// TrainingSummary aggregates a day's actual sessions.
type TrainingSummary struct {
	SessionCount     int
	TotalDurationMin int
	TotalLoad        float64
	EstimatedKcal    float64
}

// CalculatedTargets carries the plan-derived targets for a log's date. Zero
// when no plan covers the date.
type CalculatedTargets struct {
	PlanID           string
	WeekNumber       int
	TargetWeightKg   float64
	TargetIntakeKcal float64
}

// DailyLogSnapshot is the computed view of a log for one date. Snapshots are
// immutable per revision: recomputation after an input change stores revision
// n+1 and supersedes, never mutates, earlier revisions.
type DailyLogSnapshot struct {
	Log             DailyLog
	Revision        int
	EstimatedTDEE   *float64
	Confidence      *float64
	Targets         *CalculatedTargets
	TrainingSummary TrainingSummary
	ComputedAt      time.Time
}
