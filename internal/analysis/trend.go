package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// MinTrendDays is the minimum number of distinct days required before a
// trend is fitted. Below it, consumers must not project anything.
const MinTrendDays = 5

// WeightPoint is one dated weight observation.
type WeightPoint struct {
	Date     time.Time
	WeightKg float64
}

type TrendStatus string

const (
	TrendFitted           TrendStatus = "fitted"
	TrendInsufficientData TrendStatus = "insufficient_data"
)

// TrendResult is the outcome of a linear fit over a weight series. The fit
// fields are meaningful only when Status is TrendFitted; an insufficient
// series is a normal result, not an error.
type TrendResult struct {
	Status       TrendStatus
	SlopePerDay  float64
	SlopePerWeek float64
	Intercept    float64
	R2           float64
	Days         int
	FirstDate    time.Time
	LastDate     time.Time
}

// Fitted reports whether the trend carries a usable fit.
func (r TrendResult) Fitted() bool {
	return r.Status == TrendFitted
}

// ValueAt evaluates the fitted line at an elapsed-day offset from FirstDate.
func (r TrendResult) ValueAt(elapsedDays float64) float64 {
	return r.Intercept + r.SlopePerDay*elapsedDays
}

// FitTrend fits ordinary least squares over (elapsed days, weight). Dates
// are de-duplicated (the later sample for a date wins) and gaps are handled
// by regressing on elapsed days since the first observation, never on index
// position. Fewer than MinTrendDays distinct days => insufficient data.
func FitTrend(points []WeightPoint) TrendResult {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[domain.DateOf(p.Date)] = p.WeightKg
	}
	if len(byDate) < MinTrendDays {
		return TrendResult{Status: TrendInsufficientData, Days: len(byDate)}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	first := dates[0]
	n := float64(len(dates))
	var sx, sy, sxx, syy, sxy float64
	for _, d := range dates {
		x := float64(domain.DaysBetween(first, d))
		y := byDate[d]
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
	}

	denom := n*sxx - sx*sx
	if denom == 0 {
		// All observations on one elapsed day; cannot happen after
		// de-duplication with n >= MinTrendDays, but guard anyway.
		return TrendResult{Status: TrendInsufficientData, Days: len(dates)}
	}
	slope := (n*sxy - sx*sy) / denom
	intercept := (sy - slope*sx) / n

	return TrendResult{
		Status:       TrendFitted,
		SlopePerDay:  slope,
		SlopePerWeek: slope * 7,
		Intercept:    intercept,
		R2:           pearsonR2(n, sx, sy, sxx, syy, sxy),
		Days:         len(dates),
		FirstDate:    first,
		LastDate:     dates[len(dates)-1],
	}
}

// pearsonR2 computes the squared Pearson correlation from running sums.
// A zero denominator (a flat series) yields 0.
func pearsonR2(n, sx, sy, sxx, syy, sxy float64) float64 {
	num := n*sxy - sx*sy
	den := math.Sqrt((n*sxx - sx*sx) * (n*syy - sy*sy))
	if den == 0 {
		return 0
	}
	r := num / den
	return r * r
}
