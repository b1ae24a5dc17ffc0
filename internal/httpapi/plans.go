package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/service"
	"github.com/abramin/Victus-sub005/internal/solver"
)

func (s *Server) createPlan(c *gin.Context) {
	var req contract.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}

	plan, err := s.plans.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.NewPlanView(plan, s.now()))
}

func (s *Server) listPlans(c *gin.Context) {
	plans, err := s.plans.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]contract.PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, app.NewPlanView(p, s.now()))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getActivePlan(c *gin.Context) {
	plan, err := s.plans.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewPlanView(plan, s.now()))
}

func (s *Server) getPlan(c *gin.Context) {
	plan, err := s.plans.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewPlanView(plan, s.now()))
}

func (s *Server) deletePlan(c *gin.Context) {
	if err := s.plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// transitionPlan adapts a lifecycle service call into a handler.
func (s *Server) transitionPlan(apply func(ctx context.Context, id string) (*domain.NutritionPlan, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, err := apply(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.NewPlanView(plan, s.now()))
	}
}

func (s *Server) recalibratePlan(c *gin.Context) {
	var req contract.RecalibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}
	req.PlanID = c.Param("id")

	plan, err := s.plans.Recalibrate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewPlanView(plan, s.now()))
}

func (s *Server) analyzeActivePlan(c *gin.Context) {
	s.analyze(c, "")
}

func (s *Server) analyzePlan(c *gin.Context) {
	s.analyze(c, c.Param("id"))
}

func (s *Server) analyze(c *gin.Context, planID string) {
	view, err := s.analysis.Analyze(c.Request.Context(), contract.AnalysisRequest{
		PlanID: planID,
		Date:   c.Query("date"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) trainingLoad(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apiError(c, http.StatusBadRequest, string(service.CodeValidation), "days must be an integer")
			return
		}
		days = n
	}

	resp, err := s.analysis.TrainingLoad(c.Request.Context(), contract.LoadRequest{
		Date: c.Query("date"),
		Days: days,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// weekMenu proxies one plan week's targets to the external menu solver.
func (s *Server) weekMenu(c *gin.Context) {
	if !s.solverEnabled || s.solver == nil {
		apiError(c, http.StatusServiceUnavailable, string(service.CodeUnavailable), "menu solver is not configured")
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "week must be a positive integer")
		return
	}

	plan, err := s.plans.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var target *domain.WeeklyTarget
	for i := range plan.Targets {
		if plan.Targets[i].WeekNumber == week {
			target = &plan.Targets[i]
			break
		}
	}
	if target == nil {
		apiError(c, http.StatusNotFound, string(service.CodeNotFound), "no target for the requested week")
		return
	}

	menu, err := s.solver.Suggest(c.Request.Context(), solver.SuggestRequest{
		WeekNumber:       week,
		TargetIntakeKcal: target.ProjectedIntakeKcal,
		TargetWeightKg:   target.ProjectedWeightKg,
		WeeklyChangeKg:   plan.RequiredWeeklyChangeKg(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}
