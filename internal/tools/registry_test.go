package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/resume/model"
	"resume-ats/resume/service"
)

const sampleResume = "Jane Doe\nSoftware Engineer\njane@example.com\n555-123-4567\n\n" +
	"EXPERIENCE\nSenior Engineer | Acme Corp\nJan 2020 - Present\n- Built scalable APIs\n- Reduced latency by 40%\n\n" +
	"EDUCATION\nMIT\nBachelor of Science in Computer Science, 2018\n\n" +
	"SKILLS\nPython, Go, Docker"

const sampleJob = "Must have: Python, Docker\nNice to have: Kubernetes"

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := New(Options{Engine: service.New()})
	require.NoError(t, err)
	return reg
}

func call(t *testing.T, reg *Registry, name string, args any) Result {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	res, err := reg.Call(context.Background(), name, raw)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	return res
}

func errorMessage(t *testing.T, res Result) string {
	t.Helper()
	require.True(t, res.IsError)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &body))
	return body["error"]
}

func TestListDescribesTools(t *testing.T) {
	reg := newRegistry(t)

	assert.Equal(t, []string{ExtractKeywords, OptimizeForJob, ParseResume, ScoreATS}, reg.Names())
	for _, d := range reg.List() {
		assert.NotEmpty(t, d.Description, d.Name)
		assert.True(t, json.Valid(d.InputSchema), d.Name)
	}
}

func TestUnknownTool(t *testing.T) {
	_, err := newRegistry(t).Call(context.Background(), "generate_ats_resume", nil)
	assert.True(t, errors.Is(err, ErrUnknownTool))
}

func TestParseResumeFromText(t *testing.T) {
	res := call(t, newRegistry(t), ParseResume, map[string]string{"text": sampleResume})
	require.False(t, res.IsError, res.Content[0].Text)

	var doc model.Document
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &doc))
	assert.Equal(t, "Jane Doe", doc.Name)
	assert.Equal(t, []string{"Python", "Go", "Docker"}, doc.Skills)
	assert.Contains(t, res.Content[0].Text, "\n  \"name\"")
}

func TestParseResumeRequiresInput(t *testing.T) {
	reg := newRegistry(t)

	for _, args := range []any{map[string]string{}, nil, map[string]string{"pdf": "  ", "text": ""}} {
		res := call(t, reg, ParseResume, args)
		assert.Contains(t, errorMessage(t, res), "pdf: is required when text is not provided")
	}
}

func TestParseResumeRejectsBadArguments(t *testing.T) {
	reg := newRegistry(t)

	res := call(t, reg, ParseResume, map[string]any{"pdf": 42})
	assert.Contains(t, errorMessage(t, res), "pdf")

	res = call(t, reg, ParseResume, map[string]string{"pdf": "not base64!!"})
	assert.Contains(t, errorMessage(t, res), "base64")

	res = call(t, reg, ParseResume, []string{"x"})
	assert.Contains(t, errorMessage(t, res), "arguments")
}

func TestParseResumeBrokenPDF(t *testing.T) {
	encoded := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 garbage"))
	res := call(t, newRegistry(t), ParseResume, map[string]string{"pdf": encoded})
	assert.Contains(t, errorMessage(t, res), "text extraction failed")
}

func TestTruncatedPDFIsInBandError(t *testing.T) {
	pdf := "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\nstartxref\n999\n%%EOF"
	encoded := base64.StdEncoding.EncodeToString([]byte(pdf))
	reg := newRegistry(t)

	for _, name := range []string{ParseResume, ScoreATS} {
		res := call(t, reg, name, map[string]string{"pdf": encoded})
		assert.Contains(t, errorMessage(t, res), "malformed PDF", name)
	}
}

func TestScoreATSUsesParsedText(t *testing.T) {
	reg := newRegistry(t)
	res := call(t, reg, ScoreATS, map[string]string{"text": sampleResume})
	require.False(t, res.IsError, res.Content[0].Text)

	var score model.ATSScore
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &score))
	assert.Equal(t, 73, score.OverallScore)
	assert.Equal(t, score.Breakdown.Total(), score.OverallScore)

	// second call is served from the parse cache and scores identically
	again := call(t, reg, ScoreATS, map[string]string{"text": sampleResume})
	assert.Equal(t, res, again)
}

func TestExtractKeywords(t *testing.T) {
	reg := newRegistry(t)

	res := call(t, reg, ExtractKeywords, map[string]string{"job_description": sampleJob})
	require.False(t, res.IsError, res.Content[0].Text)
	var got model.KeywordAnalysis
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &got))
	assert.Equal(t, []string{"Docker", "Python"}, got.RequiredSkills)

	res = call(t, reg, ExtractKeywords, map[string]string{"job_description": "Go required"})
	assert.Contains(t, errorMessage(t, res), "too short")

	res = call(t, reg, ExtractKeywords, map[string]string{"job_description": "   "})
	assert.Contains(t, errorMessage(t, res), "job_description: is required")

	res = call(t, reg, ExtractKeywords, map[string]string{})
	assert.Contains(t, errorMessage(t, res), "job_description")
}

func TestOptimizeForJobChainsParseOutput(t *testing.T) {
	reg := newRegistry(t)
	parsed := call(t, reg, ParseResume, map[string]string{"text": sampleResume})
	require.False(t, parsed.IsError)

	res := call(t, reg, OptimizeForJob, map[string]string{
		"resume_data":     parsed.Content[0].Text,
		"job_description": sampleJob,
	})
	require.False(t, res.IsError, res.Content[0].Text)

	var report model.OptimizationReport
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &report))
	assert.Equal(t, []string{"Docker", "Python"}, report.MatchedKeywords)
	assert.Equal(t, []string{"Kubernetes"}, report.MissingKeywords)

	res = call(t, reg, OptimizeForJob, map[string]string{"resume_data": "{oops", "job_description": sampleJob})
	assert.Contains(t, errorMessage(t, res), "resume_data")
}

func TestConcurrentParsesShareResult(t *testing.T) {
	reg := newRegistry(t)
	args, _ := json.Marshal(map[string]string{"text": sampleResume})

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := reg.Call(context.Background(), ParseResume, args)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestCanceledContextIsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newRegistry(t).Call(ctx, ParseResume, json.RawMessage(`{"text":"x"}`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.Contains(res.Content[0].Text, "canceled"))
}
