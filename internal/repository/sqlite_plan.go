package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, start_date, start_weight_kg, goal_weight_kg, duration_weeks,
		tolerance_percent, status, paused_at, paused_days, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.NutritionPlan) error {
	query := `INSERT INTO plans (id, start_date, start_weight_kg, goal_weight_kg, duration_weeks,
		tolerance_percent, status, paused_at, paused_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.StartDate.Format(dateLayout),
		p.StartWeightKg,
		p.GoalWeightKg,
		p.DurationWeeks,
		p.TolerancePercent,
		string(p.Status),
		nullableTimeToString(p.PausedAt, time.RFC3339),
		p.PausedDays,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := r.scanPlan(row)
	if err != nil {
		return nil, err
	}
	p.Targets, err = r.loadTargets(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context) (*domain.NutritionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE status = 'active'`
	row := r.db.QueryRowContext(ctx, query)
	p, err := r.scanPlan(row)
	if err != nil {
		return nil, err
	}
	p.Targets, err = r.loadTargets(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.NutritionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY start_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.NutritionPlan
	for rows.Next() {
		p, err := r.scanPlanFromRows(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.NutritionPlan) error {
	query := `UPDATE plans SET start_date = ?, start_weight_kg = ?, goal_weight_kg = ?,
		duration_weeks = ?, tolerance_percent = ?, status = ?, paused_at = ?, paused_days = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.StartDate.Format(dateLayout),
		p.StartWeightKg,
		p.GoalWeightKg,
		p.DurationWeeks,
		p.TolerancePercent,
		string(p.Status),
		nullableTimeToString(p.PausedAt, time.RFC3339),
		p.PausedDays,
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plans WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) SaveTargets(ctx context.Context, targets []domain.WeeklyTarget) error {
	query := `INSERT OR REPLACE INTO weekly_targets
		(plan_id, week_number, start_date, end_date, projected_weight_kg, projected_tdee,
		projected_intake_kcal, actual_avg_weight_kg, actual_avg_intake_kcal, actual_avg_tdee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range targets {
		_, err := r.db.ExecContext(ctx, query,
			t.PlanID,
			t.WeekNumber,
			t.StartDate.Format(dateLayout),
			t.EndDate.Format(dateLayout),
			t.ProjectedWeightKg,
			t.ProjectedTDEE,
			t.ProjectedIntakeKcal,
			nullableFloatToValue(t.ActualAvgWeightKg),
			nullableFloatToValue(t.ActualAvgIntakeKcal),
			nullableFloatToValue(t.ActualAvgTDEE),
		)
		if err != nil {
			return fmt.Errorf("saving weekly target %d: %w", t.WeekNumber, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteTargetsFrom(ctx context.Context, planID string, fromWeek int) error {
	query := `DELETE FROM weekly_targets WHERE plan_id = ? AND week_number >= ?`
	_, err := r.db.ExecContext(ctx, query, planID, fromWeek)
	if err != nil {
		return fmt.Errorf("deleting weekly targets: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) loadTargets(ctx context.Context, planID string) ([]domain.WeeklyTarget, error) {
	query := `SELECT plan_id, week_number, start_date, end_date, projected_weight_kg,
		projected_tdee, projected_intake_kcal, actual_avg_weight_kg, actual_avg_intake_kcal,
		actual_avg_tdee
		FROM weekly_targets WHERE plan_id = ? ORDER BY week_number`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing weekly targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.WeeklyTarget
	for rows.Next() {
		var t domain.WeeklyTarget
		var startDateStr, endDateStr string
		var actualWeight, actualIntake, actualTDEE sql.NullFloat64

		err := rows.Scan(
			&t.PlanID, &t.WeekNumber, &startDateStr, &endDateStr,
			&t.ProjectedWeightKg, &t.ProjectedTDEE, &t.ProjectedIntakeKcal,
			&actualWeight, &actualIntake, &actualTDEE,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning weekly target: %w", err)
		}

		t.StartDate, err = time.Parse(dateLayout, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing target start_date: %w", err)
		}
		t.EndDate, err = time.Parse(dateLayout, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing target end_date: %w", err)
		}
		t.ActualAvgWeightKg = floatFromNull(actualWeight)
		t.ActualAvgIntakeKcal = floatFromNull(actualIntake)
		t.ActualAvgTDEE = floatFromNull(actualTDEE)

		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly targets: %w", err)
	}
	return targets, nil
}

// scanPlan scans a single plan row from a *sql.Row.
func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.NutritionPlan, error) {
	var p domain.NutritionPlan
	var startDateStr, statusStr, createdAtStr, updatedAtStr string
	var pausedAtStr sql.NullString

	err := row.Scan(
		&p.ID, &startDateStr, &p.StartWeightKg, &p.GoalWeightKg, &p.DurationWeeks,
		&p.TolerancePercent, &statusStr, &pausedAtStr, &p.PausedDays,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.Status = domain.PlanStatus(statusStr)

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	p.PausedAt = parseNullableTime(pausedAtStr, time.RFC3339)

	return &p, nil
}

// scanPlanFromRows scans a single plan row from *sql.Rows.
func (r *SQLitePlanRepo) scanPlanFromRows(rows *sql.Rows) (*domain.NutritionPlan, error) {
	var p domain.NutritionPlan
	var startDateStr, statusStr, createdAtStr, updatedAtStr string
	var pausedAtStr sql.NullString

	err := rows.Scan(
		&p.ID, &startDateStr, &p.StartWeightKg, &p.GoalWeightKg, &p.DurationWeeks,
		&p.TolerancePercent, &statusStr, &pausedAtStr, &p.PausedDays,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning plan row: %w", err)
	}

	p.Status = domain.PlanStatus(statusStr)

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	p.PausedAt = parseNullableTime(pausedAtStr, time.RFC3339)

	return &p, nil
}
