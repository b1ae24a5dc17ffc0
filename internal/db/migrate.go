package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_profile (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		sex            TEXT NOT NULL DEFAULT 'male'
		               CHECK(sex IN ('male','female')),
		birth_date     TEXT NOT NULL DEFAULT '1990-01-01',
		height_cm      REAL NOT NULL DEFAULT 175,
		activity_level TEXT NOT NULL DEFAULT 'moderate'
		               CHECK(activity_level IN ('sedentary','light','moderate','active','very_active')),
		bmr_formula    TEXT NOT NULL DEFAULT 'mifflin_st_jeor'
		               CHECK(bmr_formula IN ('mifflin_st_jeor','harris_benedict','katch_mcardle')),
		created_at     TEXT NOT NULL DEFAULT '',
		updated_at     TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the single profile row
	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS plans (
		id                TEXT PRIMARY KEY,
		start_date        TEXT NOT NULL,
		start_weight_kg   REAL NOT NULL CHECK(start_weight_kg > 0),
		goal_weight_kg    REAL NOT NULL CHECK(goal_weight_kg > 0),
		duration_weeks    INTEGER NOT NULL CHECK(duration_weeks > 0),
		tolerance_percent REAL NOT NULL DEFAULT 3.0,
		status            TEXT NOT NULL DEFAULT 'active'
		                  CHECK(status IN ('active','paused','completed','abandoned')),
		paused_at         TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_status ON plans(status)`,

	// At most one active plan, enforced at the storage level too
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_single_active ON plans(status) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS weekly_targets (
		plan_id                TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		week_number            INTEGER NOT NULL CHECK(week_number > 0),
		start_date             TEXT NOT NULL,
		end_date               TEXT NOT NULL,
		projected_weight_kg    REAL NOT NULL,
		projected_tdee         REAL NOT NULL,
		projected_intake_kcal  REAL NOT NULL,
		actual_avg_weight_kg   REAL,
		actual_avg_intake_kcal REAL,
		actual_avg_tdee        REAL,
		PRIMARY KEY (plan_id, week_number)
	)`,

	`CREATE TABLE IF NOT EXISTS daily_logs (
		id                 TEXT PRIMARY KEY,
		date               TEXT NOT NULL UNIQUE,
		weight_kg          REAL NOT NULL CHECK(weight_kg > 0),
		intake_kcal        REAL,
		body_fat_percent   REAL,
		resting_heart_rate INTEGER,
		sleep_hours        REAL,
		planned_sessions   TEXT NOT NULL DEFAULT '[]',
		actual_sessions    TEXT NOT NULL DEFAULT '[]',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS log_snapshots (
		log_date           TEXT NOT NULL,
		revision           INTEGER NOT NULL CHECK(revision > 0),
		estimate_status    TEXT NOT NULL DEFAULT 'insufficient_data',
		estimated_tdee     REAL,
		confidence         REAL,
		plan_id            TEXT,
		week_number        INTEGER,
		target_weight_kg   REAL,
		target_intake_kcal REAL,
		session_count      INTEGER NOT NULL DEFAULT 0,
		total_duration_min INTEGER NOT NULL DEFAULT 0,
		total_load         REAL NOT NULL DEFAULT 0,
		estimated_kcal     REAL NOT NULL DEFAULT 0,
		computed_at        TEXT NOT NULL,
		PRIMARY KEY (log_date, revision)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_log_snapshots_date ON log_snapshots(log_date)`,

	`CREATE TABLE IF NOT EXISTS drift_notifications (
		id             TEXT PRIMARY KEY,
		episode_key    TEXT NOT NULL UNIQUE,
		direction      TEXT NOT NULL CHECK(direction IN ('tdee_higher','tdee_lower')),
		magnitude_kcal REAL NOT NULL,
		magnitude_band INTEGER NOT NULL,
		onset_date     TEXT NOT NULL,
		message        TEXT NOT NULL DEFAULT '',
		detected_at    TEXT NOT NULL,
		dismissed_at   TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_drift_detected ON drift_notifications(detected_at)`,

	`CREATE TABLE IF NOT EXISTS recalibration_records (
		id            TEXT PRIMARY KEY,
		plan_id       TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		option_type   TEXT NOT NULL,
		new_parameter TEXT NOT NULL DEFAULT '',
		impact        TEXT NOT NULL DEFAULT '',
		applied_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recalibrations_plan ON recalibration_records(plan_id)`,

	// Pause bookkeeping added with pause/resume support
	`ALTER TABLE plans ADD COLUMN paused_days INTEGER NOT NULL DEFAULT 0`,

	// Companion sync client fields added with the sync PATCH endpoint
	`ALTER TABLE daily_logs ADD COLUMN steps INTEGER`,
	`ALTER TABLE daily_logs ADD COLUMN active_calories INTEGER`,
}
