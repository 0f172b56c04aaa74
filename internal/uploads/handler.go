// Package uploads lets clients send resumes straight to the object store and
// then register them as documents.
package uploads

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/documents"
	"resume-ats/internal/extract"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
)

const presignExpires = 15 * time.Minute

var allowedContentTypes = map[string]struct{}{
	extract.MimePDF:  {},
	extract.MimeDOCX: {},
	extract.MimeText: {},
}

// Presigner issues direct-upload URLs for storage keys.
type Presigner interface {
	PresignPut(ctx context.Context, storageKey string, expires time.Duration) (string, error)
}

// Handler serves the presign and complete endpoints.
type Handler struct {
	Presigner      Presigner
	Docs           *documents.Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(presigner Presigner, docs *documents.Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{Presigner: presigner, Docs: docs, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presign)
	rg.POST("/uploads/complete", h.complete)
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	StorageKey       string `json:"storageKey"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(req.ContentType, ";")[0]))

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.SizeBytes <= 0 || req.SizeBytes > h.MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", gin.H{"limitBytes": h.MaxUploadBytes})
		return
	}

	key, err := object.NewKey(middleware.UserIDFromContext(c), req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	url, err := h.Presigner.PresignPut(c.Request.Context(), key, presignExpires)
	if err != nil {
		telemetry.Error("uploads.presign_failed", map[string]any{
			"error":        err,
			"key":          key,
			"content_type": contentType,
			"size_bytes":   req.SizeBytes,
			"request_id":   middleware.RequestIDFromContext(c),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.OK(c, presignResponse{
		UploadURL:        url,
		StorageKey:       key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}

type completeRequest struct {
	StorageKey string `json:"storageKey"`
	FileName   string `json:"fileName"`
}

func (h *Handler) complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Docs.Ingest(c.Request.Context(), middleware.UserIDFromContext(c), req.StorageKey, strings.TrimSpace(req.FileName), h.MaxUploadBytes)
	if err != nil {
		respond.FromError(c, err, "failed to register upload")
		return
	}
	c.Set("documentId", doc.ID)
	respond.Created(c, documents.ToResponse(doc))
}
