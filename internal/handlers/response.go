package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// SuccessResponse writes the standard success envelope, merging payload
// keys alongside it.
func SuccessResponse(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{
		"success":    true,
		"message":    message,
		"request_id": c.GetString(middleware.ContextRequestID),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// ErrorResponse writes the standard failure envelope. Raw error detail
// is only attached outside release mode.
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	body := gin.H{
		"success":    false,
		"message":    message,
		"request_id": c.GetString(middleware.ContextRequestID),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		body["error_details"] = err.Error()
	}
	c.JSON(statusCode, body)
}

// HandleServiceError translates the service error taxonomy into HTTP
// responses. Unclassified errors become a generic 500; the detail is
// logged server-side only.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case services.IsConflictError(err):
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case services.IsNotFoundError(err):
		ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case services.IsAuthError(err):
		ErrorResponse(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		logrus.WithError(err).WithField("request_id", c.GetString(middleware.ContextRequestID)).Error("Unhandled service error")
		ErrorResponse(c, http.StatusInternalServerError, "internal server error", err)
	}
}
