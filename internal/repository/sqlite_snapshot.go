package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// estimate_status column values. The pointers on the domain snapshot are the
// source of truth; the column makes the tagged state queryable in SQL.
const (
	estimateComputed     = "computed"
	estimateInsufficient = "insufficient_data"
)

// snapshotJoinColumns selects a snapshot row joined with its daily log.
const snapshotJoinColumns = `l.id, l.date, l.weight_kg, l.intake_kcal, l.body_fat_percent,
		l.resting_heart_rate, l.sleep_hours, l.steps, l.active_calories,
		l.planned_sessions, l.actual_sessions, l.created_at, l.updated_at,
		s.revision, s.estimate_status, s.estimated_tdee, s.confidence,
		s.plan_id, s.week_number, s.target_weight_kg, s.target_intake_kcal,
		s.session_count, s.total_duration_min, s.total_load, s.estimated_kcal, s.computed_at`

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
// Snapshots are append-only: recomputation inserts the next revision and
// reads always resolve the highest revision per date.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Save(ctx context.Context, s *domain.DailyLogSnapshot) error {
	status := estimateInsufficient
	if s.EstimatedTDEE != nil {
		status = estimateComputed
	}

	var planID, weekNumber, targetWeight, targetIntake interface{}
	if s.Targets != nil {
		planID = s.Targets.PlanID
		weekNumber = s.Targets.WeekNumber
		targetWeight = s.Targets.TargetWeightKg
		targetIntake = s.Targets.TargetIntakeKcal
	}

	query := `INSERT INTO log_snapshots (log_date, revision, estimate_status, estimated_tdee,
		confidence, plan_id, week_number, target_weight_kg, target_intake_kcal,
		session_count, total_duration_min, total_load, estimated_kcal, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.Log.Date.Format(dateLayout),
		s.Revision,
		status,
		nullableFloatToValue(s.EstimatedTDEE),
		nullableFloatToValue(s.Confidence),
		planID,
		weekNumber,
		targetWeight,
		targetIntake,
		s.TrainingSummary.SessionCount,
		s.TrainingSummary.TotalDurationMin,
		s.TrainingSummary.TotalLoad,
		s.TrainingSummary.EstimatedKcal,
		s.ComputedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting log snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) LatestRevision(ctx context.Context, date time.Time) (int, error) {
	query := `SELECT COALESCE(MAX(revision), 0) FROM log_snapshots WHERE log_date = ?`
	row := r.db.QueryRowContext(ctx, query, date.Format(dateLayout))
	var revision int
	if err := row.Scan(&revision); err != nil {
		return 0, fmt.Errorf("reading latest snapshot revision: %w", err)
	}
	return revision, nil
}

func (r *SQLiteSnapshotRepo) LatestByDate(ctx context.Context, date time.Time) (*domain.DailyLogSnapshot, error) {
	query := `SELECT ` + snapshotJoinColumns + `
		FROM log_snapshots s
		JOIN daily_logs l ON l.date = s.log_date
		WHERE s.log_date = ?
		  AND s.revision = (SELECT MAX(revision) FROM log_snapshots WHERE log_date = s.log_date)`
	row := r.db.QueryRowContext(ctx, query, date.Format(dateLayout))
	return r.scanSnapshot(row)
}

func (r *SQLiteSnapshotRepo) LatestInRange(ctx context.Context, from, to time.Time) ([]*domain.DailyLogSnapshot, error) {
	query := `SELECT ` + snapshotJoinColumns + `
		FROM log_snapshots s
		JOIN daily_logs l ON l.date = s.log_date
		WHERE s.log_date >= ? AND s.log_date <= ?
		  AND s.revision = (SELECT MAX(revision) FROM log_snapshots WHERE log_date = s.log_date)
		ORDER BY s.log_date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing log snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.DailyLogSnapshot
	for rows.Next() {
		s, err := r.scanSnapshotFromRows(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log snapshots: %w", err)
	}
	return snapshots, nil
}

// scanSnapshot scans a joined snapshot row from a *sql.Row.
func (r *SQLiteSnapshotRepo) scanSnapshot(row *sql.Row) (*domain.DailyLogSnapshot, error) {
	var s domain.DailyLogSnapshot
	var dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr string
	var statusStr, computedAtStr string
	var intake, bodyFat, sleep, tdee, confidence, targetWeight, targetIntake sql.NullFloat64
	var restingHR, steps, activeCal, weekNumber sql.NullInt64
	var planID sql.NullString

	err := row.Scan(
		&s.Log.ID, &dateStr, &s.Log.WeightKg, &intake, &bodyFat,
		&restingHR, &sleep, &steps, &activeCal,
		&plannedJSON, &actualJSON, &createdAtStr, &updatedAtStr,
		&s.Revision, &statusStr, &tdee, &confidence,
		&planID, &weekNumber, &targetWeight, &targetIntake,
		&s.TrainingSummary.SessionCount, &s.TrainingSummary.TotalDurationMin,
		&s.TrainingSummary.TotalLoad, &s.TrainingSummary.EstimatedKcal, &computedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log snapshot: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning log snapshot: %w", err)
	}

	return r.populateSnapshot(&s, dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr,
		statusStr, computedAtStr, intake, bodyFat, sleep, tdee, confidence,
		targetWeight, targetIntake, restingHR, steps, activeCal, weekNumber, planID)
}

// scanSnapshotFromRows scans a joined snapshot row from *sql.Rows.
func (r *SQLiteSnapshotRepo) scanSnapshotFromRows(rows *sql.Rows) (*domain.DailyLogSnapshot, error) {
	var s domain.DailyLogSnapshot
	var dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr string
	var statusStr, computedAtStr string
	var intake, bodyFat, sleep, tdee, confidence, targetWeight, targetIntake sql.NullFloat64
	var restingHR, steps, activeCal, weekNumber sql.NullInt64
	var planID sql.NullString

	err := rows.Scan(
		&s.Log.ID, &dateStr, &s.Log.WeightKg, &intake, &bodyFat,
		&restingHR, &sleep, &steps, &activeCal,
		&plannedJSON, &actualJSON, &createdAtStr, &updatedAtStr,
		&s.Revision, &statusStr, &tdee, &confidence,
		&planID, &weekNumber, &targetWeight, &targetIntake,
		&s.TrainingSummary.SessionCount, &s.TrainingSummary.TotalDurationMin,
		&s.TrainingSummary.TotalLoad, &s.TrainingSummary.EstimatedKcal, &computedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning log snapshot row: %w", err)
	}

	return r.populateSnapshot(&s, dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr,
		statusStr, computedAtStr, intake, bodyFat, sleep, tdee, confidence,
		targetWeight, targetIntake, restingHR, steps, activeCal, weekNumber, planID)
}

// populateSnapshot fills in parsed fields on a snapshot after scanning raw values.
func (r *SQLiteSnapshotRepo) populateSnapshot(
	s *domain.DailyLogSnapshot,
	dateStr, plannedJSON, actualJSON, createdAtStr, updatedAtStr, statusStr, computedAtStr string,
	intake, bodyFat, sleep, tdee, confidence, targetWeight, targetIntake sql.NullFloat64,
	restingHR, steps, activeCal, weekNumber sql.NullInt64,
	planID sql.NullString,
) (*domain.DailyLogSnapshot, error) {
	var err error
	s.Log.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	s.Log.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.Log.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	s.ComputedAt, err = time.Parse(time.RFC3339, computedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing computed_at: %w", err)
	}

	s.Log.IntakeKcal = floatFromNull(intake)
	s.Log.BodyFatPercent = floatFromNull(bodyFat)
	s.Log.SleepHours = floatFromNull(sleep)
	s.Log.RestingHeartRate = intFromNull(restingHR)
	s.Log.Steps = intFromNull(steps)
	s.Log.ActiveCalories = intFromNull(activeCal)

	s.Log.PlannedSessions, err = sessionsFromJSON(plannedJSON)
	if err != nil {
		return nil, err
	}
	s.Log.ActualSessions, err = sessionsFromJSON(actualJSON)
	if err != nil {
		return nil, err
	}

	if statusStr == estimateComputed {
		s.EstimatedTDEE = floatFromNull(tdee)
		s.Confidence = floatFromNull(confidence)
	}
	if planID.Valid {
		s.Targets = &domain.CalculatedTargets{
			PlanID:           planID.String,
			WeekNumber:       int(weekNumber.Int64),
			TargetWeightKg:   targetWeight.Float64,
			TargetIntakeKcal: targetIntake.Float64,
		}
	}

	return s, nil
}
