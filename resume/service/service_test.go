package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/resume/contract"
	"resume-ats/resume/model"
)

const sampleResume = "Jane Doe\nSoftware Engineer\njane@example.com\n555-123-4567\n\n" +
	"EXPERIENCE\nSenior Engineer | Acme Corp\nJan 2020 - Present\n- Built scalable APIs\n- Reduced latency by 40%\n\n" +
	"EDUCATION\nMIT\nBachelor of Science in Computer Science, 2018\n\n" +
	"SKILLS\nPython, Go, Docker"

const sampleJob = "Must have: Python, Docker\nNice to have: Kubernetes"

func TestParseDocumentNoContent(t *testing.T) {
	_, err := New().ParseDocument("  \n ")
	require.Error(t, err)
	assert.True(t, contract.IsNoContent(err))
	assert.ErrorIs(t, err, contract.ErrNoContent)
}

func TestScoreDocumentMatchesParse(t *testing.T) {
	e := New()
	doc, err := e.ParseDocument(sampleResume)
	require.NoError(t, err)

	score := e.ScoreDocument(sampleResume, doc)
	assert.Equal(t, score.Breakdown.Total(), score.OverallScore)
	assert.Equal(t, score, e.ScoreDocument(sampleResume, doc))
}

func TestClassifyJobText(t *testing.T) {
	e := New()

	got, err := e.ClassifyJobText(sampleJob)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker", "Python"}, got.RequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, got.NiceToHave)

	for _, in := range []string{"", "   ", "Go required"} {
		_, err := e.ClassifyJobText(in)
		require.Error(t, err, in)
		assert.True(t, contract.IsInvalidInput(err), in)
	}
}

func TestOptimizeForJobJSONRoundTrip(t *testing.T) {
	e := New()
	doc, err := e.ParseDocument(sampleResume)
	require.NoError(t, err)

	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	fromJSON, err := e.OptimizeForJobJSON(string(payload), sampleJob)
	require.NoError(t, err)
	direct, err := e.OptimizeForJob(doc, sampleJob)
	require.NoError(t, err)

	assert.Equal(t, direct, fromJSON)
	assert.Equal(t, []string{"Docker", "Python"}, direct.MatchedKeywords)
	assert.Equal(t, []string{"Kubernetes"}, direct.MissingKeywords)
}

func TestOptimizeForJobJSONToleratesWrappedObject(t *testing.T) {
	_, err := New().OptimizeForJobJSON(`Here is the data: {"rawText":"Python developer","skills":["Python"]} thanks`, sampleJob)
	assert.NoError(t, err)
}

func TestOptimizeForJobJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		job   string
		field string
	}{
		{"malformed json", `{"rawText":`, sampleJob, "resume_data"},
		{"not an object", `42`, sampleJob, "resume_data"},
		{"empty document", `{}`, sampleJob, "resume_data"},
		{"null document", `null`, sampleJob, "resume_data"},
		{"blank payload", "  ", sampleJob, "resume_data"},
		{"empty job", `{"rawText":"x"}`, " ", "job_description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().OptimizeForJobJSON(tt.json, tt.job)
			require.Error(t, err)
			var invalid contract.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestOptimizeForJobIncompleteDocument(t *testing.T) {
	_, err := New().OptimizeForJob(model.Document{}, sampleJob)
	require.Error(t, err)

	var missing contract.MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"rawText", "skills"}, missing.Fields)
}

func TestDecodeDocumentNormalizes(t *testing.T) {
	doc, err := DecodeDocument(`{"skills":["Go"],"experience":[{"company":"Acme","title":"Dev","bullets":null}],"education":[{"degree":"BS"}]}`)
	require.NoError(t, err)

	assert.Equal(t, model.UnknownName, doc.Name)
	assert.NotNil(t, doc.Experience[0].Bullets)
	assert.Equal(t, model.UnknownInstitution, doc.Education[0].Institution)
	assert.NotNil(t, doc.Certifications)
}

func TestEngineConcurrentUse(t *testing.T) {
	e := New()
	doc, err := e.ParseDocument(sampleResume)
	require.NoError(t, err)
	want, err := e.OptimizeForJob(doc, sampleJob)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.OptimizeForJob(doc, sampleJob)
			assert.NoError(t, err)
			assert.Equal(t, want.FitScore, got.FitScore)
		}()
	}
	wg.Wait()
}
