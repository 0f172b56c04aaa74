package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/internal/shared/config"
)

const sampleResume = "Jane Doe\nSoftware Engineer\njane@example.com\n555-123-4567\n\n" +
	"EXPERIENCE\nSenior Engineer | Acme Corp\nJan 2020 - Present\n- Built scalable APIs\n- Reduced latency by 40%\n\n" +
	"EDUCATION\nMIT\nBachelor of Science in Computer Science, 2018\n\n" +
	"SKILLS\nPython, Go, Docker"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		CacheTTL:        time.Minute,
		ToolsRPS:        100,
		ToolsBurst:      100,
		MaxUploadBytes:  1 << 20,
		LogFormat:       "json",
		LogLevel:        "error",
	}
}

func buildApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildWiresInMemoryStack(t *testing.T) {
	app := buildApp(t, testConfig(t))

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Queue)
	assert.Nil(t, app.Tokens)
	assert.Equal(t, []string{"extract_keywords", "optimize_for_job", "parse_resume", "score_ats"}, app.Registry.Names())

	resp := serve(app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
	assert.Contains(t, resp.Body.String(), `"score_ats"`)

	resp = serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "analysis_started_total")
}

func TestToolCallThroughRouter(t *testing.T) {
	app := buildApp(t, testConfig(t))

	body, err := json.Marshal(map[string]any{"arguments": map[string]string{"text": sampleResume}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/score_ats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(app, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "overallScore")
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestDocumentToAnalysisFlow(t *testing.T) {
	app := buildApp(t, testConfig(t))

	form := &bytes.Buffer{}
	writer := multipart.NewWriter(form)
	part, err := writer.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleResume))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "flow")
	resp := serve(app, req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var doc struct {
		DocumentID string `json:"documentId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+doc.DocumentID+"/analyze", nil)
	req.Header.Set("X-Guest-Id", "flow")
	resp = serve(app, req)
	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())

	var started struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &started))
	app.AnalysesService.Wait()

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, nil)
	req.Header.Set("X-Guest-Id", "flow")
	resp = serve(app, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"status":"completed"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	resp = serve(app, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = serve(app, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// The local store cannot presign, so direct uploads are not mounted.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", strings.NewReader(`{}`))
	req.Header.Set("X-Guest-Id", "flow")
	resp = serve(app, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBearerTokens(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = "test-secret"
	app := buildApp(t, cfg)
	require.NotNil(t, app.Tokens)

	token, err := app.Tokens.Sign("user-42", "jane@example.com", "Jane")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := serve(app, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"userId":"user-42"`)
	assert.Contains(t, resp.Body.String(), `"guest":false`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = serve(app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp = serve(app, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"userId":"guest:abc"`)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	_, err := Build(cfg)
	assert.Error(t, err)
}
