package service

import (
	"context"
	"time"

	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/importer"
)

type ProfileService interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Update(ctx context.Context, req contract.UpdateProfileRequest) (*domain.UserProfile, error)
}

type PlanService interface {
	Create(ctx context.Context, req contract.CreatePlanRequest) (*domain.NutritionPlan, error)
	GetByID(ctx context.Context, id string) (*domain.NutritionPlan, error)
	GetActive(ctx context.Context) (*domain.NutritionPlan, error)
	List(ctx context.Context) ([]*domain.NutritionPlan, error)
	Complete(ctx context.Context, id string) (*domain.NutritionPlan, error)
	Abandon(ctx context.Context, id string) (*domain.NutritionPlan, error)
	Pause(ctx context.Context, id string) (*domain.NutritionPlan, error)
	Resume(ctx context.Context, id string) (*domain.NutritionPlan, error)
	Recalibrate(ctx context.Context, req contract.RecalibrateRequest) (*domain.NutritionPlan, error)
	Delete(ctx context.Context, id string) error
}

type LogService interface {
	Create(ctx context.Context, req contract.CreateLogRequest) (*domain.DailyLogSnapshot, error)
	Update(ctx context.Context, req contract.CreateLogRequest) (*domain.DailyLogSnapshot, error)
	PatchTraining(ctx context.Context, req contract.TrainingPatchRequest) (*domain.DailyLogSnapshot, error)
	SyncPatch(ctx context.Context, req contract.SyncPatchRequest) (*domain.DailyLogSnapshot, error)
	GetByDate(ctx context.Context, date string) (*domain.DailyLogSnapshot, error)
	Range(ctx context.Context, from, to string) ([]*domain.DailyLogSnapshot, error)
}

// ImportResult holds the outcome of a bulk log import.
type ImportResult struct {
	LogCount  int
	FirstDate time.Time
	LastDate  time.Time
}

type ImportService interface {
	ImportLogs(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type AnalysisService interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (*contract.AnalysisView, error)
	TrainingLoad(ctx context.Context, req contract.LoadRequest) (*contract.LoadResponse, error)
}

type MetabolicService interface {
	Chart(ctx context.Context, req contract.ChartRequest) (*contract.ChartResponse, error)
	// Notification runs drift detection as of the given date ("" means today)
	// and returns the active notification, or nil when there is none. A nil
	// notification is a normal outcome, not an error.
	Notification(ctx context.Context, date string) (*domain.DriftNotification, error)
	Dismiss(ctx context.Context) error
}

type CatalogService interface {
	List(ctx context.Context) []catalog.Entry
}
