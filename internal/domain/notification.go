package domain

import "time"

// DriftNotification is one detected metabolic drift episode. EpisodeKey
// identifies the condition (direction + magnitude band + onset date) so that
// dismissal suppresses exactly this episode and nothing else.
type DriftNotification struct {
	ID            string
	EpisodeKey    string
	Direction     DriftDirection
	MagnitudeKcal float64
	MagnitudeBand int
	OnsetDate     time.Time
	Message       string
	DetectedAt    time.Time
	DismissedAt   *time.Time
}

// Dismissed reports whether the episode has been dismissed.
func (n *DriftNotification) Dismissed() bool {
	return n.DismissedAt != nil
}

// RecalibrationRecord is the audit entry written when a recalibration option
// is applied to a plan.
type RecalibrationRecord struct {
	ID           string
	PlanID       string
	OptionType   OptionType
	NewParameter string
	Impact       string
	AppliedAt    time.Time
}
