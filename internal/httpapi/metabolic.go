package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/contract"
)

func (s *Server) metabolicChart(c *gin.Context) {
	chart, err := s.metabolic.Chart(c.Request.Context(), contract.ChartRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// driftNotification returns the active drift notification, or a JSON null
// when there is none. Absence is a normal outcome, not a 404.
func (s *Server) driftNotification(c *gin.Context) {
	n, err := s.metabolic.Notification(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if n == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, app.NewNotificationView(n))
}

func (s *Server) dismissNotification(c *gin.Context) {
	if err := s.metabolic.Dismiss(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
