package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ats/resume/contract"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no content", contract.NoContentError{Source: "PDF"}, http.StatusUnprocessableEntity, "no_content"},
		{"extraction", fmt.Errorf("key=x: %w", contract.ExtractionError{Err: errors.New("bad xref")}), http.StatusUnprocessableEntity, "extraction_failed"},
		{"invalid input", contract.InvalidInputError{Field: "pdf", Reason: "empty"}, http.StatusBadRequest, "validation_error"},
		{"not found", fmt.Errorf("document abc: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"other", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Status(tt.err)
			if status != tt.status || code != tt.code {
				t.Fatalf("got %d %s, want %d %s", status, code, tt.status, tt.code)
			}
		})
	}
}

func TestFromErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		FromError(c, errors.New("pq: connection refused"), "failed to load analysis")
	})
	router.GET("/invalid", func(c *gin.Context) {
		FromError(c, contract.InvalidInputError{Field: "job_description", Reason: "job description is empty"}, "unused")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))
	var body ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != http.StatusInternalServerError || body.Error.Message != "failed to load analysis" {
		t.Fatalf("unexpected response %d %+v", resp.Code, body)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	var invalid struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &invalid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != http.StatusBadRequest || invalid.Error.Code != "validation_error" || invalid.Error.Details["field"] != "job_description" {
		t.Fatalf("unexpected response %d %+v", resp.Code, invalid)
	}
}
