package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abramin/Victus-sub005/internal/domain"
)

// ErrNotFound is the sentinel wrapped by every repository when a requested
// record does not exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.NutritionPlan) error
	GetByID(ctx context.Context, id string) (*domain.NutritionPlan, error)
	GetActive(ctx context.Context) (*domain.NutritionPlan, error)
	List(ctx context.Context) ([]*domain.NutritionPlan, error)
	Update(ctx context.Context, p *domain.NutritionPlan) error
	Delete(ctx context.Context, id string) error
	SaveTargets(ctx context.Context, targets []domain.WeeklyTarget) error
	DeleteTargetsFrom(ctx context.Context, planID string, fromWeek int) error
}

type LogRepo interface {
	Create(ctx context.Context, l *domain.DailyLog) error
	Update(ctx context.Context, l *domain.DailyLog) error
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyLog, error)
	Range(ctx context.Context, from, to time.Time) ([]*domain.DailyLog, error)
}

type SnapshotRepo interface {
	Save(ctx context.Context, s *domain.DailyLogSnapshot) error
	LatestRevision(ctx context.Context, date time.Time) (int, error)
	LatestByDate(ctx context.Context, date time.Time) (*domain.DailyLogSnapshot, error)
	LatestInRange(ctx context.Context, from, to time.Time) ([]*domain.DailyLogSnapshot, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.DriftNotification) error
	Latest(ctx context.Context) (*domain.DriftNotification, error)
	Dismiss(ctx context.Context, id string, at time.Time) error
}

type RecalibrationRepo interface {
	Create(ctx context.Context, rec *domain.RecalibrationRecord) error
	ListByPlan(ctx context.Context, planID string) ([]*domain.RecalibrationRecord, error)
}
