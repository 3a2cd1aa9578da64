package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
)

// Common response structures for consistency across all handlers
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type SuccessResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

// RespondOK sends a structured success response
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: message,
		Success: true,
		Data:    data,
	})
}

// RespondError sends a structured error with an explicit status code
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Message: message,
		Success: false,
	})
}

// FailWith translates a service error into the right HTTP status. This is
// the single place the error taxonomy meets HTTP - handlers never pick
// status codes for service errors themselves.
func FailWith(c *gin.Context, err error) {
	var (
		configErr   *apperr.ConfigError
		upstreamErr *apperr.UpstreamError
		storageErr  *apperr.StorageError
	)

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &configErr):
		RespondError(c, http.StatusInternalServerError, configErr.Error())
	case errors.As(err, &upstreamErr):
		RespondError(c, http.StatusBadGateway, "remote store unavailable")
	case errors.As(err, &storageErr):
		RespondError(c, http.StatusInternalServerError, "storage failure")
	default:
		RespondError(c, http.StatusInternalServerError, "internal error")
	}

	// attach the real error to the gin context for the request logger
	_ = c.Error(err)
}
