package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// notificationColumns is the canonical SELECT column list for drift_notifications.
const notificationColumns = `id, episode_key, direction, magnitude_kcal, magnitude_band,
		onset_date, message, detected_at, dismissed_at`

// SQLiteNotificationRepo implements NotificationRepo using a SQLite database.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

// NewSQLiteNotificationRepo creates a new SQLiteNotificationRepo.
func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: conn}
}

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.DriftNotification) error {
	query := `INSERT INTO drift_notifications (id, episode_key, direction, magnitude_kcal,
		magnitude_band, onset_date, message, detected_at, dismissed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.EpisodeKey,
		string(n.Direction),
		n.MagnitudeKcal,
		n.MagnitudeBand,
		n.OnsetDate.Format(dateLayout),
		n.Message,
		n.DetectedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(n.DismissedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting drift notification: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) Latest(ctx context.Context) (*domain.DriftNotification, error) {
	query := `SELECT ` + notificationColumns + ` FROM drift_notifications
		ORDER BY detected_at DESC, id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)
	return r.scanNotification(row)
}

func (r *SQLiteNotificationRepo) Dismiss(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE drift_notifications SET dismissed_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("dismissing drift notification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("dismissing drift notification: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("drift notification: %w", ErrNotFound)
	}
	return nil
}

// scanNotification scans a single drift notification from a *sql.Row.
func (r *SQLiteNotificationRepo) scanNotification(row *sql.Row) (*domain.DriftNotification, error) {
	var n domain.DriftNotification
	var directionStr, onsetDateStr, detectedAtStr string
	var dismissedAtStr sql.NullString

	err := row.Scan(
		&n.ID, &n.EpisodeKey, &directionStr, &n.MagnitudeKcal, &n.MagnitudeBand,
		&onsetDateStr, &n.Message, &detectedAtStr, &dismissedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("drift notification: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning drift notification: %w", err)
	}

	n.Direction = domain.DriftDirection(directionStr)

	var parseErr error
	n.OnsetDate, parseErr = time.Parse(dateLayout, onsetDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing onset_date: %w", parseErr)
	}
	n.DetectedAt, parseErr = time.Parse(time.RFC3339, detectedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing detected_at: %w", parseErr)
	}

	n.DismissedAt = parseNullableTime(dismissedAtStr, time.RFC3339)

	return &n, nil
}
