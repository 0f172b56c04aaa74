package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/internal/documents"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/storage/object/local"
	"resume-ats/internal/shared/util"
)

type fakePresigner struct {
	keys    []string
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPut(_ context.Context, key string, expires time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.expires = expires
	return "https://uploads.example.test/" + key + "?signed=1", nil
}

type testEnv struct {
	router    *gin.Engine
	presigner *fakePresigner
	store     object.ObjectStore
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := local.New(t.TempDir())
	docs := &documents.Service{Store: store, Repo: documents.NewMemoryRepo()}
	presigner := &fakePresigner{}

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(nil, true))
	NewHandler(presigner, docs, 1<<20).RegisterRoutes(api)
	return testEnv{router: router, presigner: presigner, store: store}
}

func (e testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "uploader")
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func TestPresignThenComplete(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/uploads/presign", map[string]any{
		"fileName":    "resume.txt",
		"contentType": "text/plain; charset=utf-8",
		"sizeBytes":   64,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var presigned presignResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &presigned))
	assert.True(t, strings.HasPrefix(presigned.StorageKey, util.OwnerKey("guest:uploader")+"/"))
	assert.True(t, strings.HasSuffix(presigned.StorageKey, "_resume.txt"))
	assert.Contains(t, presigned.UploadURL, presigned.StorageKey)
	assert.Equal(t, int64(900), presigned.ExpiresInSeconds)
	assert.Equal(t, presignExpires, env.presigner.expires)

	// The client PUTs the file to the signed URL.
	_, err := env.store.SaveWithKey(context.Background(), presigned.StorageKey, "text/plain", strings.NewReader("Jane Doe\njane@example.com\nSKILLS\nGo, Python"))
	require.NoError(t, err)

	resp = env.post(t, "/api/v1/uploads/complete", map[string]any{
		"storageKey": presigned.StorageKey,
		"fileName":   "resume.txt",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var doc documents.DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.NotEmpty(t, doc.DocumentID)
	assert.Equal(t, "text/plain", doc.MimeType)
	assert.NotNil(t, doc.ExtractedAt)

	body, err := env.store.Open(context.Background(), object.ExtractedKey(presigned.StorageKey))
	require.NoError(t, err)
	defer body.Close()
}

func TestPresignValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing file name", map[string]any{"fileName": " ", "contentType": "application/pdf", "sizeBytes": 10}},
		{"unsupported type", map[string]any{"fileName": "cv.png", "contentType": "image/png", "sizeBytes": 10}},
		{"zero size", map[string]any{"fileName": "cv.pdf", "contentType": "application/pdf", "sizeBytes": 0}},
		{"too large", map[string]any{"fileName": "cv.pdf", "contentType": "application/pdf", "sizeBytes": 2 << 20}},
		{"traversal", map[string]any{"fileName": "../cv.pdf", "contentType": "application/pdf", "sizeBytes": 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.post(t, "/api/v1/uploads/presign", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
	assert.Empty(t, env.presigner.keys)
}

func TestPresignFailure(t *testing.T) {
	env := newTestEnv(t)
	env.presigner.err = errors.New("no credentials")

	resp := env.post(t, "/api/v1/uploads/presign", map[string]any{
		"fileName": "cv.pdf", "contentType": "application/pdf", "sizeBytes": 10,
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestCompleteRejectsForeignKey(t *testing.T) {
	env := newTestEnv(t)

	foreign, err := object.NewKey("guest:someone-else", "resume.txt")
	require.NoError(t, err)
	_, err = env.store.SaveWithKey(context.Background(), foreign, "text/plain", strings.NewReader("Jane Doe"))
	require.NoError(t, err)

	resp := env.post(t, "/api/v1/uploads/complete", map[string]any{"storageKey": foreign, "fileName": "resume.txt"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = env.post(t, "/api/v1/uploads/complete", map[string]any{"storageKey": "../../etc/passwd", "fileName": "passwd"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestCompleteRejectsEmptyText(t *testing.T) {
	env := newTestEnv(t)

	key, err := object.NewKey("guest:uploader", "blank.txt")
	require.NoError(t, err)
	_, err = env.store.SaveWithKey(context.Background(), key, "text/plain", strings.NewReader("   \n  "))
	require.NoError(t, err)

	resp := env.post(t, "/api/v1/uploads/complete", map[string]any{"storageKey": key, "fileName": "blank.txt"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
}
