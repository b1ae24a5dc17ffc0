package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/importer"
	"github.com/abramin/Victus-sub005/internal/service"
)

func (s *Server) createLog(c *gin.Context) {
	var req contract.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}

	snap, err := s.logs.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.NewSnapshotView(snap))
}

func (s *Server) updateLog(c *gin.Context) {
	var req contract.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}
	req.Date = c.Param("date")

	snap, err := s.logs.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSnapshotView(snap))
}

func (s *Server) getLog(c *gin.Context) {
	snap, err := s.logs.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSnapshotView(snap))
}

func (s *Server) listLogs(c *gin.Context) {
	snaps, err := s.logs.Range(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]contract.SnapshotView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, app.NewSnapshotView(snap))
	}
	c.JSON(http.StatusOK, views)
}

// importLogs accepts a bulk export file body and imports it atomically.
func (s *Server) importLogs(c *gin.Context) {
	var schema importer.ImportSchema
	if err := c.ShouldBindJSON(&schema); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}

	result, err := s.imports.ImportFromSchema(c.Request.Context(), &schema)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"logCount":  result.LogCount,
		"firstDate": domain.FormatDate(result.FirstDate),
		"lastDate":  domain.FormatDate(result.LastDate),
	})
}

func (s *Server) patchTraining(c *gin.Context) {
	var req contract.TrainingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}
	req.Date = c.Param("date")

	snap, err := s.logs.PatchTraining(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSnapshotView(snap))
}

func (s *Server) syncPatch(c *gin.Context) {
	var req contract.SyncPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}
	req.Date = c.Param("date")

	snap, err := s.logs.SyncPatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSnapshotView(snap))
}
