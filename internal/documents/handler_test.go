package documents

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(nil, true))
	NewHandler(svc, 1<<20).RegisterRoutes(api)
	return router
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestDocumentsUploadAndCurrent(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, "hello.txt", []byte("hello world"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" || created.MimeType != "text/plain" || created.SizeBytes != 11 {
		t.Fatalf("unexpected create response: %+v", created)
	}

	for _, path := range []string{"/api/v1/documents/current", "/api/v1/documents/" + created.DocumentID} {
		reqGet := httptest.NewRequest(http.MethodGet, path, nil)
		addGuestHeader(reqGet)
		respGet := httptest.NewRecorder()
		router.ServeHTTP(respGet, reqGet)

		if respGet.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, respGet.Code)
		}
		var current DocumentResponse
		if err := json.NewDecoder(respGet.Body).Decode(&current); err != nil {
			t.Fatalf("decode current response: %v", err)
		}
		if current.FileName != "hello.txt" || current.DocumentID != created.DocumentID {
			t.Fatalf("%s: unexpected document %+v", path, current)
		}
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=5", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	var listed []DocumentResponse
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one document, got %d", len(listed))
	}
}

func TestDocumentsErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		req    func() *http.Request
		status int
		code   string
	}{
		{
			name: "missing identity",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
			},
			status: http.StatusUnauthorized,
			code:   "unauthorized",
		},
		{
			name: "no current document",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
				addGuestHeader(req)
				return req
			},
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name: "missing file",
			req: func() *http.Request {
				body, contentType := multipartBody(t, "", nil)
				req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
				req.Header.Set("Content-Type", contentType)
				addGuestHeader(req)
				return req
			},
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
		{
			name: "empty text",
			req: func() *http.Request {
				body, contentType := multipartBody(t, "empty.txt", []byte("   \n"))
				req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
				req.Header.Set("Content-Type", contentType)
				addGuestHeader(req)
				return req
			},
			status: http.StatusUnprocessableEntity,
			code:   "no_content",
		},
		{
			name: "unsupported binary",
			req: func() *http.Request {
				body, contentType := multipartBody(t, "photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
				req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
				req.Header.Set("Content-Type", contentType)
				addGuestHeader(req)
				return req
			},
			status: http.StatusUnprocessableEntity,
			code:   "extraction_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, tt.req())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if payload.Error.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, payload.Error.Code)
			}
		})
	}
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}
