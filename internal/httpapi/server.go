// Package httpapi exposes the service layer over a gin HTTP/JSON API. All
// routes live under /api; error responses use a uniform envelope
// {"error": message, "code": CODE} mapped from the service error codes.
package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/service"
	"github.com/abramin/Victus-sub005/internal/solver"
)

// Server holds shared dependencies for all route handlers.
type Server struct {
	plans     service.PlanService
	logs      service.LogService
	imports   service.ImportService
	analysis  service.AnalysisService
	metabolic service.MetabolicService
	profiles  service.ProfileService
	catalog   service.CatalogService

	solver        solver.Client
	solverEnabled bool

	logger *slog.Logger
	now    func() time.Time
}

// Deps bundles the collaborators a Server needs.
type Deps struct {
	Plans     service.PlanService
	Logs      service.LogService
	Imports   service.ImportService
	Analysis  service.AnalysisService
	Metabolic service.MetabolicService
	Profiles  service.ProfileService
	Catalog   service.CatalogService

	Solver        solver.Client
	SolverEnabled bool

	Logger *slog.Logger
}

// NewServer creates the API server.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		plans:         deps.Plans,
		logs:          deps.Logs,
		imports:       deps.Imports,
		analysis:      deps.Analysis,
		metabolic:     deps.Metabolic,
		profiles:      deps.Profiles,
		catalog:       deps.Catalog,
		solver:        deps.Solver,
		solverEnabled: deps.SolverEnabled,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Router builds the gin engine with middleware and all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(cors.Default())
	router.SetTrustedProxies(nil)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/plans", s.createPlan)
	api.GET("/plans", s.listPlans)
	api.GET("/plans/active", s.getActivePlan)
	api.GET("/plans/active/analysis", s.analyzeActivePlan)
	api.GET("/plans/:id", s.getPlan)
	api.DELETE("/plans/:id", s.deletePlan)
	api.POST("/plans/:id/complete", s.transitionPlan(s.plans.Complete))
	api.POST("/plans/:id/abandon", s.transitionPlan(s.plans.Abandon))
	api.POST("/plans/:id/pause", s.transitionPlan(s.plans.Pause))
	api.POST("/plans/:id/resume", s.transitionPlan(s.plans.Resume))
	api.POST("/plans/:id/recalibrate", s.recalibratePlan)
	api.GET("/plans/:id/analysis", s.analyzePlan)
	api.GET("/plans/:id/weeks/:week/menu", s.weekMenu)

	api.POST("/logs", s.createLog)
	api.POST("/logs/import", s.importLogs)
	api.GET("/logs", s.listLogs)
	api.PUT("/logs/:date", s.updateLog)
	api.GET("/logs/:date", s.getLog)
	api.PATCH("/logs/:date/training", s.patchTraining)
	api.PATCH("/logs/:date/sync", s.syncPatch)

	api.GET("/metabolic/chart", s.metabolicChart)
	api.GET("/metabolic/notification", s.driftNotification)
	api.POST("/metabolic/notification/dismiss", s.dismissNotification)

	api.GET("/analysis/load", s.trainingLoad)

	api.GET("/catalog/training-types", s.listTrainingTypes)

	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.updateProfile)

	return router
}
