package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/telemetry"
	"resume-ats/resume/contract"
)

// ErrNotFound is matched by FromError to produce a 404. Repositories wrap or alias it.
var ErrNotFound = errors.New("not found")

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Status maps an error to its HTTP status and error code.
func Status(err error) (int, string) {
	switch {
	case contract.IsNoContent(err):
		return http.StatusUnprocessableEntity, "no_content"
	case contract.IsExtraction(err):
		return http.StatusUnprocessableEntity, "extraction_failed"
	case contract.IsInvalidInput(err):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// FromError sends the error response Status selects. Internal errors get
// fallback as their message so details stay in the logs.
func FromError(c *gin.Context, err error, fallback string) {
	status, code := Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		telemetry.Error("http.internal_error", map[string]any{"request_id": c.GetString("requestId"), "error": err})
		message = fallback
	}
	var details any
	var invalid contract.InvalidInputError
	if errors.As(err, &invalid) && invalid.Field != "" {
		details = gin.H{"field": invalid.Field}
	}
	Error(c, status, code, message, details)
}
