package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into domain logs ready for
// persistence, sorted by date. Call ValidateImportSchema first; Convert
// assumes the schema is valid.
func Convert(schema *ImportSchema) ([]*domain.DailyLog, error) {
	now := time.Now().UTC()

	logs := make([]*domain.DailyLog, 0, len(schema.Logs))
	for _, l := range schema.Logs {
		date, err := domain.ParseDate(l.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", l.Date, err)
		}
		logs = append(logs, &domain.DailyLog{
			ID:               uuid.New().String(),
			Date:             date,
			WeightKg:         l.WeightKg,
			IntakeKcal:       l.IntakeKcal,
			BodyFatPercent:   l.BodyFatPercent,
			RestingHeartRate: l.RestingHeartRate,
			SleepHours:       l.SleepHours,
			Steps:            l.Steps,
			ActiveCalories:   l.ActiveCalories,
			PlannedSessions:  convertSessions(l.PlannedSessions),
			ActualSessions:   convertSessions(l.ActualSessions),
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })
	return logs, nil
}

func convertSessions(sessions []SessionImport) []domain.TrainingSession {
	if len(sessions) == 0 {
		return nil
	}
	out := make([]domain.TrainingSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.TrainingSession{
			Type:               s.Type,
			DurationMin:        s.DurationMin,
			PerceivedIntensity: s.PerceivedIntensity,
			Notes:              s.Notes,
		})
	}
	return out
}
