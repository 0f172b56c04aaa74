package tools

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// Handler serves the registry over HTTP.
type Handler struct {
	Registry *Registry
}

// NewHandler constructs a Handler.
func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

// RegisterRoutes attaches tool routes to the router group. Extra middleware
// runs on invocations only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, callMiddleware ...gin.HandlerFunc) {
	rg.GET("/tools", h.list)
	rg.POST("/tools/:name", append(callMiddleware, h.call)...)
}

type callRequest struct {
	Arguments json.RawMessage `json:"arguments"`
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"tools": h.Registry.List()})
}

func (h *Handler) call(c *gin.Context) {
	name := c.Param("name")
	middleware.SetTool(c, name)

	var req callRequest
	if c.Request.ContentLength != 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body is too large", nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	res, err := h.Registry.Call(c.Request.Context(), name, req.Arguments)
	if err != nil {
		if errors.Is(err, ErrUnknownTool) {
			respond.Error(c, http.StatusNotFound, "tool_not_found", "unknown tool: "+name, gin.H{"tools": h.Registry.Names()})
			return
		}
		respond.FromError(c, err, "tool call failed")
		return
	}
	respond.OK(c, res)
}
