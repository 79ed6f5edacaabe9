package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/utils"
)

// ErrorResponse is the JSON error body for all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// BaseHandler provides shared logging helpers for handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.Request.URL.Path)
	h.logger.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	h.logger.Error(msg, args...)
}
