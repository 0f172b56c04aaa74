package analyses

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/internal/shared/server/middleware"
)

const testOwner = "guest:test-guest"

func newTestRouter(t *testing.T) (*gin.Engine, testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := newTestEnv(t, nil)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(nil, true))
	NewHandler(env.svc).RegisterRoutes(api)
	return router, env
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeAndPoll(t *testing.T) {
	router, env := newTestRouter(t)
	doc := env.upload(t, testOwner, sampleResume)

	body, err := json.Marshal(map[string]string{"jobDescription": sampleJob})
	require.NoError(t, err)
	resp := doRequest(router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/analyze", string(body))
	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())

	var started struct {
		AnalysisID string `json:"analysisId"`
		Status     string `json:"status"`
		Mode       string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &started))
	assert.NotEmpty(t, started.AnalysisID)
	assert.Equal(t, StatusQueued, started.Status)
	assert.Equal(t, string(ModeJobMatch), started.Mode)

	env.svc.Wait()

	resp = doRequest(router, http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var got Analysis
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	require.NotNil(t, got.Result.Optimization)
	assert.Equal(t, []string{"Docker", "Python"}, got.Result.Optimization.MatchedKeywords)

	resp = doRequest(router, http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))

	resp = doRequest(router, http.MethodGet, "/api/v1/analyses", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var list []Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, started.AnalysisID, list[0].AnalysisID)
	require.NotNil(t, list[0].ATSScore)
	require.NotNil(t, list[0].FitScore)
	assert.Equal(t, got.Result.ATS.OverallScore, *list[0].ATSScore)
}

func TestAnalyzeWithoutBodyUsesATSMode(t *testing.T) {
	router, env := newTestRouter(t)
	doc := env.upload(t, testOwner, sampleResume)

	resp := doRequest(router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/analyze", "")
	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"mode":"ATS"`)
	env.svc.Wait()
}

func TestAnalysesErrors(t *testing.T) {
	router, env := newTestRouter(t)
	doc := env.upload(t, testOwner, sampleResume)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown document", http.MethodPost, "/api/v1/documents/00000000-0000-0000-0000-000000000000/analyze", "", http.StatusNotFound, "not_found"},
		{"short job description", http.MethodPost, "/api/v1/documents/" + doc.ID + "/analyze", `{"jobDescription":"Go dev"}`, http.StatusBadRequest, "validation_error"},
		{"bad mode", http.MethodPost, "/api/v1/documents/" + doc.ID + "/analyze", `{"mode":"FAST"}`, http.StatusBadRequest, "validation_error"},
		{"malformed body", http.MethodPost, "/api/v1/documents/" + doc.ID + "/analyze", `{"mode":`, http.StatusBadRequest, "validation_error"},
		{"unknown analysis", http.MethodGet, "/api/v1/analyses/not-a-uuid", "", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, resp.Code, resp.Body.String())

			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
			assert.Equal(t, tt.code, payload.Error.Code)
		})
	}
	env.svc.Wait()
}

func TestAnalysesRequireIdentity(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", strings.NewReader(""))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPendingAnalysisHidesResult(t *testing.T) {
	router, env := newTestRouter(t)
	env.svc.Queue = &fakeQueue{}
	doc := env.upload(t, testOwner, sampleResume)

	resp := doRequest(router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/analyze", "")
	require.Equal(t, http.StatusAccepted, resp.Code)
	var started struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &started))

	resp = doRequest(router, http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"queued"`)
	assert.NotContains(t, resp.Body.String(), `"result"`)
}
