package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(newRegistry(t)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerList(t *testing.T) {
	resp := httptest.NewRecorder()
	newRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Tools []Descriptor `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Tools, 4)
	assert.Equal(t, ExtractKeywords, body.Tools[0].Name)
}

func TestHandlerCall(t *testing.T) {
	payload := `{"arguments":{"job_description":"Must have: Python, Docker\nNice to have: Kubernetes"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/extract_keywords", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	newRouter(t).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var res Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, `"required_skills"`)
}

func TestHandlerToolErrorIsInBand(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/extract_keywords", strings.NewReader(`{"arguments":{"job_description":"short"}}`))
	resp := httptest.NewRecorder()
	newRouter(t).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var res Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	assert.True(t, res.IsError)
}

func TestHandlerUnknownToolAndBadBody(t *testing.T) {
	router := newRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/tools/nope", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "tool_not_found")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/tools/parse_resume", strings.NewReader(`{"arguments":`)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandlerTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limit := func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 16)
		c.Next()
	}
	NewHandler(newRegistry(t)).RegisterRoutes(r.Group("/api/v1"), limit)

	body := `{"arguments":{"text":"` + strings.Repeat("x", 64) + `"}}`
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/tools/parse_resume", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}
