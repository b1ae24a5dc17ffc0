package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abramin/Victus-sub005/internal/domain"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.AddDate(0, 0, 1), "Tomorrow"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"next week", now.AddDate(0, 0, 5), "In 5d"},
		{"next month", now.AddDate(0, 0, 21), "In 3w"},
		{"far future", now.AddDate(0, 0, 90), "In 3mo"},
		{"last week", now.AddDate(0, 0, -6), "6d ago"},
		{"weeks back", now.AddDate(0, 0, -30), "4w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.t, now))
		})
	}
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "79.5 kg", FormatKg(79.54))
	assert.Equal(t, "2042 kcal", FormatKcal(2042.4))
	assert.Equal(t, "+0.4 kg", FormatSigned(0.42))
	assert.Equal(t, "-1.2 kg", FormatSigned(-1.21))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h", FormatMinutes(60))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.PlanActive), "Active")
	assert.Contains(t, StatusPill(domain.PlanPaused), "Paused")
	assert.Contains(t, StatusPill(domain.PlanCompleted), "Completed")
	assert.Contains(t, StatusPill(domain.PlanAbandoned), "Abandoned")
}

func TestHealthIndicator(t *testing.T) {
	assert.Contains(t, HealthIndicator(domain.HealthOnTrack), "ON TRACK")
	assert.Contains(t, HealthIndicator(domain.HealthAtRisk), "AT RISK")
	assert.Contains(t, HealthIndicator(domain.HealthOffTrack), "OFF TRACK")
	assert.Contains(t, HealthIndicator(domain.HealthCritical), "CRITICAL")
}
