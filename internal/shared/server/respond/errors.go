package respond

import (
	"github.com/gin-gonic/gin"

	"aidetect-backend/internal/shared/telemetry"
)

// ErrorBody is the standardized failure shape: a message, a stable
// machine-readable code, and an explicit success=false flag.
type ErrorBody struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
	Success   bool   `json:"success"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"error_code": code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		ErrorCode: code,
		Success:   false,
	})
}
