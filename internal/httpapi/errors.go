package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abramin/Victus-sub005/internal/service"
	"github.com/abramin/Victus-sub005/internal/solver"
)

// apiError returns the uniform JSON error envelope.
func apiError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}

// respondError maps a service-layer failure onto an HTTP status and envelope.
func respondError(c *gin.Context, err error) {
	if se, ok := service.AsServiceError(err); ok {
		apiError(c, statusFor(se.Code), string(se.Code), se.Message)
		return
	}
	if errors.Is(err, solver.ErrSolverUnavailable) ||
		errors.Is(err, solver.ErrTimeout) ||
		errors.Is(err, solver.ErrRetryExhausted) {
		apiError(c, http.StatusServiceUnavailable, string(service.CodeUnavailable), err.Error())
		return
	}
	apiError(c, http.StatusInternalServerError, "INTERNAL", "internal error")
}

func statusFor(code service.ErrorCode) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusConflict
	case service.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
