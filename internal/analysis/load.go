// Package analysis is the pure computational core: training load, weight
// trend fitting, adaptive TDEE estimation, drift detection, dual-track plan
// analysis and recalibration options. Nothing here performs I/O, reads a
// clock, or keeps state between calls; every function is deterministic over
// its inputs and an explicit analysis date.
package analysis

import (
	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// DefaultRPE is assumed when a session carries no perceived intensity.
const DefaultRPE = 5

// Thresholds for the acute:chronic workload ratio and overload detection.
const (
	acrOptimalCeiling  = 1.3
	acrHighCeiling     = 1.5
	overloadMultiplier = 1.5
)

// SessionLoad converts one session into a scalar load:
// loadScore x (duration in hours) x (rpe relative to a moderate 3).
// Zero-duration sessions (rest) always score 0 regardless of rpe.
func SessionLoad(loadScore float64, durationMin, rpe int) float64 {
	if durationMin <= 0 {
		return 0
	}
	if rpe <= 0 {
		rpe = DefaultRPE
	}
	return loadScore * (float64(durationMin) / 60.0) * (float64(rpe) / 3.0)
}

// DayLoad sums session loads for a day's sessions. Types missing from the
// catalog contribute nothing; the service layer rejects them before logging.
func DayLoad(sessions []domain.TrainingSession, cat *catalog.Catalog) float64 {
	var total float64
	for _, s := range sessions {
		entry, ok := cat.Lookup(s.Type)
		if !ok {
			continue
		}
		total += SessionLoad(entry.LoadScore, s.DurationMin, domain.IntFromPtrWithDefault(DefaultRPE, s.PerceivedIntensity))
	}
	return total
}

// SessionKcal estimates energy burned by one session from its MET value:
// met x weight (kg) x duration (hours).
func SessionKcal(met, weightKg float64, durationMin int) float64 {
	if durationMin <= 0 || met <= 0 || weightKg <= 0 {
		return 0
	}
	return met * weightKg * float64(durationMin) / 60.0
}

// SummarizeDay aggregates a day's actual sessions into the snapshot summary.
func SummarizeDay(sessions []domain.TrainingSession, cat *catalog.Catalog, weightKg float64) domain.TrainingSummary {
	summary := domain.TrainingSummary{SessionCount: len(sessions)}
	for _, s := range sessions {
		summary.TotalDurationMin += s.DurationMin
		entry, ok := cat.Lookup(s.Type)
		if !ok {
			continue
		}
		rpe := domain.IntFromPtrWithDefault(DefaultRPE, s.PerceivedIntensity)
		summary.TotalLoad += SessionLoad(entry.LoadScore, s.DurationMin, rpe)
		summary.EstimatedKcal += SessionKcal(entry.METValue, weightKg, s.DurationMin)
	}
	return summary
}

// AcuteLoad is the mean of the most recent 7 daily loads (fewer if the
// history is shorter). Empty history yields 0.
func AcuteLoad(history []float64) float64 {
	return meanLast(history, 7)
}

// ChronicLoad is the mean of the most recent 28 daily loads. With fewer than
// 7 days of history there is no chronic baseline yet and the result is 0.
func ChronicLoad(history []float64) float64 {
	if len(history) < 7 {
		return 0
	}
	return meanLast(history, 28)
}

// ACR is the acute:chronic workload ratio. A zero chronic baseline yields a
// neutral 1.0 rather than dividing by zero.
func ACR(acute, chronic float64) float64 {
	if chronic == 0 {
		return 1.0
	}
	return acute / chronic
}

// Zone classifies an ACR value. Boundary values belong to the lower zone.
func Zone(acr float64) domain.LoadZone {
	switch {
	case acr <= acrOptimalCeiling:
		return domain.ZoneOptimal
	case acr <= acrHighCeiling:
		return domain.ZoneHigh
	default:
		return domain.ZoneOverload
	}
}

// Overloaded reports whether a single day's load spikes past the chronic
// baseline. No baseline => never overloaded.
func Overloaded(dayLoad, chronic float64) bool {
	if chronic == 0 {
		return false
	}
	return dayLoad > chronic*overloadMultiplier
}

func meanLast(history []float64, n int) float64 {
	if len(history) == 0 {
		return 0
	}
	if n > len(history) {
		n = len(history)
	}
	var sum float64
	for _, v := range history[len(history)-n:] {
		sum += v
	}
	return sum / float64(n)
}
