package analysis

import (
	"sort"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// EnergyPerKg is the energy content of one kilogram of body mass change.
const EnergyPerKg = 7700.0

const (
	// EstimateWindowDays bounds the rolling window for the adaptive estimate.
	EstimateWindowDays = 14
	// MinEstimateDays is the fewest qualifying days that produce an estimate.
	MinEstimateDays = 7
	// winsorBandKcal caps a single day's distance from the window median so
	// one extreme intake entry cannot dominate the rolling estimate.
	winsorBandKcal = 800.0
)

var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// BMR computes basal metabolic rate in kcal/day for the given formula.
// Katch-McArdle needs body fat; without it the Mifflin-St Jeor value is
// returned instead.
func BMR(formula domain.BMRFormula, sex domain.Sex, weightKg, heightCm float64, ageYears int, bodyFatPercent *float64) float64 {
	age := float64(ageYears)
	switch formula {
	case domain.FormulaHarrisBenedict:
		if sex == domain.SexMale {
			return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
		}
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
	case domain.FormulaKatchMcArdle:
		if bodyFatPercent != nil {
			leanMassKg := weightKg * (1 - *bodyFatPercent/100)
			return 370 + 21.6*leanMassKg
		}
		fallthrough
	default:
		base := 10*weightKg + 6.25*heightCm - 5*age
		if sex == domain.SexMale {
			return base + 5
		}
		return base - 161
	}
}

// FormulaTDEE is the profile-derived baseline: BMR scaled by the activity
// multiplier. It is the drift reference point, not the adaptive estimate.
func FormulaTDEE(p domain.UserProfile, weightKg float64, bodyFatPercent *float64, asOf time.Time) float64 {
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers[domain.ActivitySedentary]
	}
	return BMR(p.BMRFormula, p.Sex, weightKg, p.HeightCm, p.AgeYears(asOf), bodyFatPercent) * mult
}

// DayRecord is one day's metabolic inputs. A day qualifies for estimation
// only when both weight and intake were logged.
type DayRecord struct {
	Date       time.Time
	WeightKg   *float64
	IntakeKcal *float64
}

type EstimateStatus string

const (
	EstimateComputed         EstimateStatus = "computed"
	EstimateInsufficientData EstimateStatus = "insufficient_data"
)

// TDEEEstimate is the adaptive estimate for a single as-of date. The value
// fields are meaningful only when Status is EstimateComputed.
type TDEEEstimate struct {
	Status         EstimateStatus
	TDEE           float64
	Confidence     float64
	QualifyingDays int
	WinsorizedDays int
}

// Computed reports whether the estimate carries a usable value.
func (e TDEEEstimate) Computed() bool {
	return e.Status == EstimateComputed
}

// EstimateTDEE derives the adaptive TDEE from the energy-balance identity
// over the EstimateWindowDays calendar days ending at asOf. Each qualifying
// day implies TDEE_i = intake_i - slopePerDay*EnergyPerKg, where the slope
// comes from the window's weight trend. The implied series is winsorized at
// the window median +/- winsorBandKcal before averaging.
//
// Confidence = coverage * consistency: coverage is qualifying days over the
// full window, consistency shrinks as more days needed capping.
func EstimateTDEE(days []DayRecord, asOf time.Time) TDEEEstimate {
	windowStart := domain.DateOf(asOf).AddDate(0, 0, -(EstimateWindowDays - 1))
	end := domain.DateOf(asOf)

	type sample struct {
		date   time.Time
		weight float64
		intake float64
	}
	byDate := make(map[time.Time]sample)
	for _, d := range days {
		if d.WeightKg == nil || d.IntakeKcal == nil {
			continue
		}
		date := domain.DateOf(d.Date)
		if date.Before(windowStart) || date.After(end) {
			continue
		}
		byDate[date] = sample{date: date, weight: *d.WeightKg, intake: *d.IntakeKcal}
	}
	if len(byDate) < MinEstimateDays {
		return TDEEEstimate{Status: EstimateInsufficientData, QualifyingDays: len(byDate)}
	}

	samples := make([]sample, 0, len(byDate))
	for _, s := range byDate {
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].date.Before(samples[j].date) })

	points := make([]WeightPoint, len(samples))
	for i, s := range samples {
		points[i] = WeightPoint{Date: s.date, WeightKg: s.weight}
	}
	trend := FitTrend(points)
	if !trend.Fitted() {
		return TDEEEstimate{Status: EstimateInsufficientData, QualifyingDays: len(samples)}
	}

	implied := make([]float64, len(samples))
	for i, s := range samples {
		implied[i] = s.intake - trend.SlopePerDay*EnergyPerKg
	}
	winsorized := winsorize(implied, winsorBandKcal)

	var sum float64
	for _, v := range winsorized.values {
		sum += v
	}
	coverage := float64(len(samples)) / float64(EstimateWindowDays)
	consistency := 1 - float64(winsorized.capped)/float64(len(samples))/2

	return TDEEEstimate{
		Status:         EstimateComputed,
		TDEE:           sum / float64(len(winsorized.values)),
		Confidence:     clamp01(coverage * consistency),
		QualifyingDays: len(samples),
		WinsorizedDays: winsorized.capped,
	}
}

type winsorized struct {
	values []float64
	capped int
}

// winsorize clamps each value to the series median +/- band.
func winsorize(values []float64, band float64) winsorized {
	med := median(values)
	out := winsorized{values: make([]float64, len(values))}
	for i, v := range values {
		switch {
		case v > med+band:
			out.values[i] = med + band
			out.capped++
		case v < med-band:
			out.values[i] = med - band
			out.capped++
		default:
			out.values[i] = v
		}
	}
	return out
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
