// Package service is the entry point to the resume engine. It validates
// caller input, runs the extractor, scorer, classifier and optimizer, and
// reports failures as contract errors.
package service

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"resume-ats/resume/ats"
	"resume-ats/resume/contract"
	"resume-ats/resume/keywords"
	"resume-ats/resume/model"
	"resume-ats/resume/optimize"
	"resume-ats/resume/parse"
)

// MinJobTextLen is the shortest job text the classifier accepts.
const MinJobTextLen = 20

// Engine bundles the stateless resume operations. The zero value uses the wall clock.
type Engine struct {
	Optimizer optimize.Optimizer
}

// New returns an Engine on the wall clock.
func New() Engine {
	return Engine{Optimizer: optimize.New()}
}

// ParseDocument extracts a structured document from raw resume text.
func (Engine) ParseDocument(rawText string) (model.Document, error) {
	return parse.Parse(rawText)
}

// ScoreDocument rates a document for ATS compatibility.
func (Engine) ScoreDocument(rawText string, doc model.Document) model.ATSScore {
	return ats.Score(rawText, doc)
}

// ClassifyJobText buckets the skills mentioned in a job posting.
func (Engine) ClassifyJobText(jobText string) (model.KeywordAnalysis, error) {
	trimmed := strings.TrimSpace(jobText)
	if trimmed == "" {
		return model.KeywordAnalysis{}, contract.InvalidInputError{Field: "job_description", Reason: "job description is empty"}
	}
	if utf8.RuneCountInString(trimmed) < MinJobTextLen {
		return model.KeywordAnalysis{}, contract.InvalidInputError{Field: "job_description", Reason: "job description is too short to analyze"}
	}
	return keywords.Analyze(jobText), nil
}

// OptimizeForJob reports how well doc fits jobText.
func (e Engine) OptimizeForJob(doc model.Document, jobText string) (model.OptimizationReport, error) {
	if strings.TrimSpace(jobText) == "" {
		return model.OptimizationReport{}, contract.InvalidInputError{Field: "job_description", Reason: "job description is empty"}
	}
	if err := contract.Enforce(&doc); err != nil {
		return model.OptimizationReport{}, err
	}
	return e.Optimizer.Optimize(doc, jobText), nil
}

// OptimizeForJobJSON decodes a document previously returned by ParseDocument
// and optimizes it for jobText.
func (e Engine) OptimizeForJobJSON(docJSON, jobText string) (model.OptimizationReport, error) {
	if strings.TrimSpace(docJSON) == "" {
		return model.OptimizationReport{}, contract.InvalidInputError{Field: "resume_data", Reason: "resume data is empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		return model.OptimizationReport{}, contract.InvalidInputError{Field: "job_description", Reason: "job description is empty"}
	}
	doc, err := DecodeDocument(docJSON)
	if err != nil {
		return model.OptimizationReport{}, err
	}
	return e.OptimizeForJob(doc, jobText)
}

// DecodeDocument parses document JSON, tolerating text around a single
// object, and restores the document invariants.
func DecodeDocument(raw string) (model.Document, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return model.Document{}, contract.InvalidInputError{Field: "resume_data", Reason: "resume data is not valid JSON", Err: err}
	}
	var doc model.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return model.Document{}, contract.InvalidInputError{Field: "resume_data", Reason: "resume data is not valid JSON", Err: err}
	}
	if err := contract.Enforce(&doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func extractJSONObject(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", errors.New("empty payload")
	}
	if json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no json object found")
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", errors.New("invalid json object")
	}
	return candidate, nil
}
