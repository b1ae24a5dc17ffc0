package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, sex, birth_date, height_cm, activity_level, bmr_formula,
		created_at, updated_at
		FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultProfileID)

	var p domain.UserProfile
	var sexStr, birthDateStr, activityStr, formulaStr string
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&p.ID, &sexStr, &birthDateStr, &p.HeightCm,
		&activityStr, &formulaStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.Sex = domain.Sex(sexStr)
	p.ActivityLevel = domain.ActivityLevel(activityStr)
	p.BMRFormula = domain.BMRFormula(formulaStr)

	p.BirthDate, err = time.Parse(dateLayout, birthDateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing birth_date: %w", err)
	}
	// The migration seeds the default row with blank timestamps.
	p.CreatedAt = parseTimeOrZero(createdAtStr, time.RFC3339)
	p.UpdatedAt = parseTimeOrZero(updatedAtStr, time.RFC3339)

	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profile
		(id, sex, birth_date, height_cm, activity_level, bmr_formula, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		string(p.Sex),
		p.BirthDate.Format(dateLayout),
		p.HeightCm,
		string(p.ActivityLevel),
		string(p.BMRFormula),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
