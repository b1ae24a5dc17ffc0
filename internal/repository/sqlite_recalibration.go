package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// SQLiteRecalibrationRepo implements RecalibrationRepo using a SQLite database.
type SQLiteRecalibrationRepo struct {
	db db.DBTX
}

// NewSQLiteRecalibrationRepo creates a new SQLiteRecalibrationRepo.
func NewSQLiteRecalibrationRepo(conn db.DBTX) *SQLiteRecalibrationRepo {
	return &SQLiteRecalibrationRepo{db: conn}
}

func (r *SQLiteRecalibrationRepo) Create(ctx context.Context, rec *domain.RecalibrationRecord) error {
	query := `INSERT INTO recalibration_records (id, plan_id, option_type, new_parameter, impact, applied_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PlanID,
		string(rec.OptionType),
		rec.NewParameter,
		rec.Impact,
		rec.AppliedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recalibration record: %w", err)
	}
	return nil
}

func (r *SQLiteRecalibrationRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.RecalibrationRecord, error) {
	query := `SELECT id, plan_id, option_type, new_parameter, impact, applied_at
		FROM recalibration_records WHERE plan_id = ? ORDER BY applied_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing recalibration records: %w", err)
	}
	defer rows.Close()

	var records []*domain.RecalibrationRecord
	for rows.Next() {
		var rec domain.RecalibrationRecord
		var optionTypeStr, appliedAtStr string

		err := rows.Scan(&rec.ID, &rec.PlanID, &optionTypeStr, &rec.NewParameter,
			&rec.Impact, &appliedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning recalibration record: %w", err)
		}

		rec.OptionType = domain.OptionType(optionTypeStr)
		rec.AppliedAt, err = time.Parse(time.RFC3339, appliedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing applied_at: %w", err)
		}

		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recalibration records: %w", err)
	}
	return records, nil
}
