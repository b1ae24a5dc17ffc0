package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
)

const (
	// DriftWindowDays is how many consecutive days a deviation must hold
	// before it counts as drift. A single noisy day never notifies.
	DriftWindowDays = 14
	// DefaultDriftToleranceKg is the allowed weekly-trajectory deviation.
	DefaultDriftToleranceKg = 0.25
	// driftBandKcal is the width of one magnitude band.
	driftBandKcal = 100.0
)

// DriftDay is one day's drift inputs: the adaptive estimate for that day and
// the intake the plan prescribed for it.
type DriftDay struct {
	Date              time.Time
	AdaptiveTDEE      float64
	PlannedIntakeKcal float64
}

// EpisodeRef identifies a previously detected episode, carried into the
// detector so dismissal bookkeeping stays outside the pure core.
type EpisodeRef struct {
	Direction     domain.DriftDirection
	MagnitudeBand int
	OnsetDate     time.Time
	Dismissed     bool
}

// DriftInput is a detection snapshot. Days may arrive unsorted and with
// gaps; only an unbroken run of calendar days ending at AsOf can sustain
// a drift signal.
type DriftInput struct {
	Days               []DriftDay
	FormulaBaseline    float64
	GoalWeeklyChangeKg float64
	ToleranceKg        float64
	Prior              *EpisodeRef
	AsOf               time.Time
}

type DriftStatus string

const (
	DriftNone       DriftStatus = "none"
	DriftDetected   DriftStatus = "detected"
	DriftSuppressed DriftStatus = "suppressed"
)

// DriftResult is the detection outcome. Episode fields are meaningful for
// both Detected and Suppressed; Suppressed means the condition holds but the
// user already dismissed this episode.
type DriftResult struct {
	Status        DriftStatus
	Direction     domain.DriftDirection
	MagnitudeKcal float64
	MagnitudeBand int
	OnsetDate     time.Time
	EpisodeKey    string
	Message       string
}

// EpisodeKey builds the stable identity of a drift episode.
func EpisodeKey(direction domain.DriftDirection, band int, onset time.Time) string {
	return fmt.Sprintf("%s/b%d/%s", direction, band, domain.FormatDate(onset))
}

// DetectDrift decides whether the adaptive estimate has drifted from the
// formula baseline. Drift requires DriftWindowDays consecutive days ending
// at AsOf whose implied weekly trajectory departs from the goal trajectory
// by more than ToleranceKg, all in the same direction.
//
// The implied trajectory for a day is (plannedIntake - adaptiveTDEE)*7/7700
// kg per week. Insufficient or broken history yields DriftNone, never a
// false signal.
func DetectDrift(in DriftInput) DriftResult {
	tolerance := in.ToleranceKg
	if tolerance <= 0 {
		tolerance = DefaultDriftToleranceKg
	}

	byDate := make(map[time.Time]DriftDay, len(in.Days))
	for _, d := range in.Days {
		byDate[domain.DateOf(d.Date)] = d
	}

	end := domain.DateOf(in.AsOf)
	window := make([]DriftDay, 0, DriftWindowDays)
	for i := DriftWindowDays - 1; i >= 0; i-- {
		d, ok := byDate[end.AddDate(0, 0, -i)]
		if !ok {
			return DriftResult{Status: DriftNone}
		}
		window = append(window, d)
	}

	sign := 0
	for _, d := range window {
		dev := impliedWeeklyChange(d) - in.GoalWeeklyChangeKg
		if math.Abs(dev) <= tolerance {
			return DriftResult{Status: DriftNone}
		}
		s := 1
		if dev < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return DriftResult{Status: DriftNone}
		}
	}

	onset := driftOnset(byDate, end, in.GoalWeeklyChangeKg, tolerance, sign)

	var sumAbs, sumDelta float64
	for _, d := range window {
		sumAbs += math.Abs(d.AdaptiveTDEE - in.FormulaBaseline)
		sumDelta += d.AdaptiveTDEE - in.FormulaBaseline
	}
	magnitude := sumAbs / float64(len(window))
	direction := domain.DriftTDEEHigher
	if sumDelta < 0 {
		direction = domain.DriftTDEELower
	}
	band := int(math.Ceil(magnitude / driftBandKcal))
	if band < 1 {
		band = 1
	}

	result := DriftResult{
		Status:        DriftDetected,
		Direction:     direction,
		MagnitudeKcal: magnitude,
		MagnitudeBand: band,
		OnsetDate:     onset,
		EpisodeKey:    EpisodeKey(direction, band, onset),
		Message:       driftMessage(direction, magnitude),
	}
	if suppressedByPrior(result, in.Prior) {
		result.Status = DriftSuppressed
	}
	return result
}

// driftOnset walks back from the window start to the first day of the
// unbroken run that sustains the deviation, so the episode key stays stable
// while the same condition persists.
func driftOnset(byDate map[time.Time]DriftDay, end time.Time, goal, tolerance float64, sign int) time.Time {
	onset := end.AddDate(0, 0, -(DriftWindowDays - 1))
	for cursor := onset.AddDate(0, 0, -1); ; cursor = cursor.AddDate(0, 0, -1) {
		d, ok := byDate[cursor]
		if !ok {
			return onset
		}
		dev := impliedWeeklyChange(d) - goal
		if math.Abs(dev) <= tolerance {
			return onset
		}
		if (dev < 0) != (sign < 0) {
			return onset
		}
		onset = cursor
	}
}

// suppressedByPrior applies episode-scoped dismissal: a dismissed episode
// silences the same condition (same direction, same onset, band no worse),
// while a worsened band, flipped direction, or re-onset after clearing is a
// new episode and notifies again.
func suppressedByPrior(current DriftResult, prior *EpisodeRef) bool {
	if prior == nil || !prior.Dismissed {
		return false
	}
	if current.Direction != prior.Direction {
		return false
	}
	if !domain.DateOf(current.OnsetDate).Equal(domain.DateOf(prior.OnsetDate)) {
		return false
	}
	return current.MagnitudeBand <= prior.MagnitudeBand
}

func impliedWeeklyChange(d DriftDay) float64 {
	return (d.PlannedIntakeKcal - d.AdaptiveTDEE) * 7 / EnergyPerKg
}

func driftMessage(direction domain.DriftDirection, magnitudeKcal float64) string {
	rounded := int(math.Round(magnitudeKcal/50) * 50)
	if direction == domain.DriftTDEEHigher {
		return fmt.Sprintf("Your metabolism appears ~%d kcal/day faster than the formula estimate. Targets may be too conservative.", rounded)
	}
	return fmt.Sprintf("Your metabolism appears ~%d kcal/day slower than the formula estimate. Targets may be too aggressive.", rounded)
}
