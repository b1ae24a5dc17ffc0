package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// logColumns is the canonical SELECT column list for daily_logs.
const logColumns = `id, date, weight_kg, intake_kcal, body_fat_percent, resting_heart_rate,
		sleep_hours, steps, active_calories, planned_sessions, actual_sessions,
		created_at, updated_at`

// storedSession is the JSON shape of a training session inside the
// planned_sessions / actual_sessions columns.
type storedSession struct {
	Type               string `json:"type"`
	DurationMin        int    `json:"durationMin"`
	PerceivedIntensity *int   `json:"perceivedIntensity,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

func sessionsToJSON(sessions []domain.TrainingSession) (string, error) {
	stored := make([]storedSession, 0, len(sessions))
	for _, s := range sessions {
		stored = append(stored, storedSession{
			Type:               s.Type,
			DurationMin:        s.DurationMin,
			PerceivedIntensity: s.PerceivedIntensity,
			Notes:              s.Notes,
		})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encoding sessions: %w", err)
	}
	return string(raw), nil
}

func sessionsFromJSON(raw string) ([]domain.TrainingSession, error) {
	if raw == "" {
		return nil, nil
	}
	var stored []storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}
	if len(stored) == 0 {
		return nil, nil
	}
	sessions := make([]domain.TrainingSession, 0, len(stored))
	for _, s := range stored {
		sessions = append(sessions, domain.TrainingSession{
			Type:               s.Type,
			DurationMin:        s.DurationMin,
			PerceivedIntensity: s.PerceivedIntensity,
			Notes:              s.Notes,
		})
	}
	return sessions, nil
}

// SQLiteLogRepo implements LogRepo using a SQLite database.
type SQLiteLogRepo struct {
	db db.DBTX
}

// NewSQLiteLogRepo creates a new SQLiteLogRepo.
func NewSQLiteLogRepo(conn db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: conn}
}

func (r *SQLiteLogRepo) Create(ctx context.Context, l *domain.DailyLog) error {
	plannedJSON, err := sessionsToJSON(l.PlannedSessions)
	if err != nil {
		return err
	}
	actualJSON, err := sessionsToJSON(l.ActualSessions)
	if err != nil {
		return err
	}

	query := `INSERT INTO daily_logs (id, date, weight_kg, intake_kcal, body_fat_percent,
		resting_heart_rate, sleep_hours, steps, active_calories, planned_sessions,
		actual_sessions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.Date.Format(dateLayout),
		l.WeightKg,
		nullableFloatToValue(l.IntakeKcal),
		nullableFloatToValue(l.BodyFatPercent),
		nullableIntToValue(l.RestingHeartRate),
		nullableFloatToValue(l.SleepHours),
		nullableIntToValue(l.Steps),
		nullableIntToValue(l.ActiveCalories),
		plannedJSON,
		actualJSON,
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting daily log: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) Update(ctx context.Context, l *domain.DailyLog) error {
	plannedJSON, err := sessionsToJSON(l.PlannedSessions)
	if err != nil {
		return err
	}
	actualJSON, err := sessionsToJSON(l.ActualSessions)
	if err != nil {
		return err
	}

	query := `UPDATE daily_logs SET weight_kg = ?, intake_kcal = ?, body_fat_percent = ?,
		resting_heart_rate = ?, sleep_hours = ?, steps = ?, active_calories = ?,
		planned_sessions = ?, actual_sessions = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		l.WeightKg,
		nullableFloatToValue(l.IntakeKcal),
		nullableFloatToValue(l.BodyFatPercent),
		nullableIntToValue(l.RestingHeartRate),
		nullableFloatToValue(l.SleepHours),
		nullableIntToValue(l.Steps),
		nullableIntToValue(l.ActiveCalories),
		plannedJSON,
		actualJSON,
		l.UpdatedAt.UTC().Format(time.RFC3339),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating daily log: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) GetByDate(ctx context.Context, date time.Time) (*domain.DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE date = ?`
	row := r.db.QueryRowContext(ctx, query, date.Format(dateLayout))
	return r.scanLog(row)
}

func (r *SQLiteLogRepo) Range(ctx context.Context, from, to time.Time) ([]*domain.DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs
		WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing daily logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.DailyLog
	for rows.Next() {
		l, err := r.scanLogFromRows(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily logs: %w", err)
	}
	return logs, nil
}

// scanLog scans a single daily log from a *sql.Row.
func (r *SQLiteLogRepo) scanLog(row *sql.Row) (*domain.DailyLog, error) {
	var l domain.DailyLog
	var dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr string
	var intake, bodyFat, sleep sql.NullFloat64
	var restingHR, steps, activeCal sql.NullInt64

	err := row.Scan(
		&l.ID, &dateStr, &l.WeightKg, &intake, &bodyFat, &restingHR,
		&sleep, &steps, &activeCal, &plannedJSON, &actualJSON,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily log: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily log: %w", err)
	}

	return r.populateLog(&l, dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr,
		intake, bodyFat, sleep, restingHR, steps, activeCal)
}

// scanLogFromRows scans a single daily log from *sql.Rows.
func (r *SQLiteLogRepo) scanLogFromRows(rows *sql.Rows) (*domain.DailyLog, error) {
	var l domain.DailyLog
	var dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr string
	var intake, bodyFat, sleep sql.NullFloat64
	var restingHR, steps, activeCal sql.NullInt64

	err := rows.Scan(
		&l.ID, &dateStr, &l.WeightKg, &intake, &bodyFat, &restingHR,
		&sleep, &steps, &activeCal, &plannedJSON, &actualJSON,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning daily log row: %w", err)
	}

	return r.populateLog(&l, dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr,
		intake, bodyFat, sleep, restingHR, steps, activeCal)
}

func (r *SQLiteLogRepo) populateLog(l *domain.DailyLog,
	dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr string,
	intake, bodyFat, sleep sql.NullFloat64,
	restingHR, steps, activeCal sql.NullInt64,
) (*domain.DailyLog, error) {
	var err error
	l.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	l.IntakeKcal = floatFromNull(intake)
	l.BodyFatPercent = floatFromNull(bodyFat)
	l.SleepHours = floatFromNull(sleep)
	l.RestingHeartRate = intFromNull(restingHR)
	l.Steps = intFromNull(steps)
	l.ActiveCalories = intFromNull(activeCal)

	l.PlannedSessions, err = sessionsFromJSON(plannedJSON)
	if err != nil {
		return nil, err
	}
	l.ActualSessions, err = sessionsFromJSON(actualJSON)
	if err != nil {
		return nil, err
	}

	return l, nil
}
