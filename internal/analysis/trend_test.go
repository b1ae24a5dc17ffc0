package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestFitTrend_InsufficientData(t *testing.T) {
	points := []WeightPoint{
		{Date: day(0), WeightKg: 80},
		{Date: day(1), WeightKg: 79.9},
		{Date: day(2), WeightKg: 79.8},
		{Date: day(3), WeightKg: 79.7},
	}
	got := FitTrend(points)
	assert.Equal(t, TrendInsufficientData, got.Status)
	assert.False(t, got.Fitted())
	assert.Equal(t, 4, got.Days)
}

func TestFitTrend_DuplicateDatesDoNotCount(t *testing.T) {
	points := []WeightPoint{
		{Date: day(0), WeightKg: 80},
		{Date: day(0), WeightKg: 80.2},
		{Date: day(1), WeightKg: 79.9},
		{Date: day(2), WeightKg: 79.8},
		{Date: day(3), WeightKg: 79.7},
	}
	// five samples but only four distinct days
	assert.Equal(t, TrendInsufficientData, FitTrend(points).Status)
}

func TestFitTrend_PerfectLine(t *testing.T) {
	points := make([]WeightPoint, 10)
	for i := range points {
		points[i] = WeightPoint{Date: day(i), WeightKg: 80 - 0.1*float64(i)}
	}
	got := FitTrend(points)

	require.True(t, got.Fitted())
	assert.InDelta(t, -0.1, got.SlopePerDay, 1e-9)
	assert.InDelta(t, -0.7, got.SlopePerWeek, 1e-9)
	assert.InDelta(t, 80.0, got.Intercept, 1e-9)
	assert.InDelta(t, 1.0, got.R2, 1e-9)
	assert.Equal(t, day(0), got.FirstDate)
	assert.Equal(t, day(9), got.LastDate)
}

func TestFitTrend_FlatSeriesHasZeroR2(t *testing.T) {
	points := make([]WeightPoint, 7)
	for i := range points {
		points[i] = WeightPoint{Date: day(i), WeightKg: 81.5}
	}
	got := FitTrend(points)

	require.True(t, got.Fitted())
	assert.Zero(t, got.SlopePerDay)
	assert.Zero(t, got.R2)
}

func TestFitTrend_GapsFitOnElapsedDays(t *testing.T) {
	// Linear in calendar time with irregular sampling. An index-position fit
	// would get the slope wrong; an elapsed-days fit recovers it exactly.
	offsets := []int{0, 1, 2, 10, 20}
	points := make([]WeightPoint, len(offsets))
	for i, off := range offsets {
		points[i] = WeightPoint{Date: day(off), WeightKg: 90 - 0.2*float64(off)}
	}
	got := FitTrend(points)

	require.True(t, got.Fitted())
	assert.InDelta(t, -0.2, got.SlopePerDay, 1e-9)
	assert.InDelta(t, 1.0, got.R2, 1e-9)
}

func TestFitTrend_LaterSampleWinsPerDate(t *testing.T) {
	points := []WeightPoint{
		{Date: day(0), WeightKg: 70},
		{Date: day(1), WeightKg: 71},
		{Date: day(2), WeightKg: 72},
		{Date: day(3), WeightKg: 73},
		{Date: day(4), WeightKg: 100},
		// re-logged with a corrected value; the later sample replaces the typo
		{Date: day(4), WeightKg: 74},
	}
	got := FitTrend(points)
	require.True(t, got.Fitted())
	assert.InDelta(t, 1.0, got.SlopePerDay, 1e-9)
}

func TestTrendResult_ValueAt(t *testing.T) {
	r := TrendResult{Status: TrendFitted, SlopePerDay: -0.1, Intercept: 80}
	assert.InDelta(t, 80.0, r.ValueAt(0), 1e-9)
	assert.InDelta(t, 78.6, r.ValueAt(14), 1e-9)
}

func TestFitTrend_OrderIndependent(t *testing.T) {
	points := []WeightPoint{
		{Date: day(8), WeightKg: 79.2},
		{Date: day(0), WeightKg: 80},
		{Date: day(4), WeightKg: 79.6},
		{Date: day(2), WeightKg: 79.8},
		{Date: day(6), WeightKg: 79.4},
	}
	got := FitTrend(points)
	require.True(t, got.Fitted())
	assert.InDelta(t, -0.1, got.SlopePerDay, 1e-9)
}
