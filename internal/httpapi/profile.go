package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/service"
)

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.profiles.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewProfileView(profile))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req contract.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, string(service.CodeValidation), "invalid request body: "+err.Error())
		return
	}

	profile, err := s.profiles.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewProfileView(profile))
}

func (s *Server) listTrainingTypes(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.List(c.Request.Context()))
}
