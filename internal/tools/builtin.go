package tools

import (
	"context"
	"encoding/json"

	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
	"resume-ats/resume/model"
)

const (
	ParseResume     = "parse_resume"
	ScoreATS        = "score_ats"
	ExtractKeywords = "extract_keywords"
	OptimizeForJob  = "optimize_for_job"
)

const resumeSchema = `{
  "type": "object",
  "properties": {
    "pdf": {"type": "string", "description": "Base64-encoded PDF file content. A data:application/pdf;base64, prefix is accepted."},
    "text": {"type": "string", "description": "Plain resume text, used when no PDF is supplied"}
  }
}`

const jobSchema = `{
  "type": "object",
  "properties": {
    "job_description": {"type": "string", "description": "Full text of the job description or job posting"}
  },
  "required": ["job_description"]
}`

const optimizeSchema = `{
  "type": "object",
  "properties": {
    "resume_data": {"type": "string", "description": "JSON string of parsed resume data (output from parse_resume tool)"},
    "job_description": {"type": "string", "description": "Full text of the job description or job posting"}
  },
  "required": ["resume_data", "job_description"]
}`

type builtin struct {
	desc Descriptor
	run  handlerFunc
}

func (r *Registry) builtins() []builtin {
	return []builtin{
		{
			desc: Descriptor{
				Name:        ParseResume,
				Description: "Extract structured data from a resume PDF. Returns name, contact info, summary, skills, experience (with bullet points), education, and certifications.",
				InputSchema: json.RawMessage(resumeSchema),
			},
			run: r.parseResume,
		},
		{
			desc: Descriptor{
				Name:        ScoreATS,
				Description: "Score a resume PDF for ATS (Applicant Tracking System) compatibility. Evaluates formatting (0-25), section headers (0-25), parseability (0-25), and keyword optimization (0-25) for a total score of 0-100. Returns detailed issues and passed checks.",
				InputSchema: json.RawMessage(resumeSchema),
			},
			run: r.scoreATS,
		},
		{
			desc: Descriptor{
				Name:        ExtractKeywords,
				Description: "Extract and classify keywords from a job description. Returns required skills, nice-to-have skills, action verbs, technical terms, and soft skills.",
				InputSchema: json.RawMessage(jobSchema),
			},
			run: r.extractKeywords,
		},
		{
			desc: Descriptor{
				Name:        OptimizeForJob,
				Description: "Optimize a resume for a specific job description. Compares resume keywords against job requirements, calculates a fit score (0-100), identifies matched/missing keywords, and generates actionable optimization suggestions.",
				InputSchema: json.RawMessage(optimizeSchema),
			},
			run: r.optimizeForJob,
		},
	}
}

// parsedResume is the cached outcome of text extraction plus parsing.
type parsedResume struct {
	RawText  string         `json:"rawText"`
	Document model.Document `json:"document"`
}

func (r *Registry) parseResume(ctx context.Context, args json.RawMessage) (any, error) {
	var in resumeArgs
	if err := r.decodeArgs(args, &in); err != nil {
		return nil, err
	}
	parsed, err := r.parse(ctx, in)
	if err != nil {
		return nil, err
	}
	return parsed.Document, nil
}

func (r *Registry) scoreATS(ctx context.Context, args json.RawMessage) (any, error) {
	var in resumeArgs
	if err := r.decodeArgs(args, &in); err != nil {
		return nil, err
	}
	parsed, err := r.parse(ctx, in)
	if err != nil {
		return nil, err
	}
	return r.engine.ScoreDocument(parsed.RawText, parsed.Document), nil
}

func (r *Registry) extractKeywords(_ context.Context, args json.RawMessage) (any, error) {
	var in jobArgs
	if err := r.decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return r.engine.ClassifyJobText(in.JobDescription)
}

func (r *Registry) optimizeForJob(_ context.Context, args json.RawMessage) (any, error) {
	var in optimizeArgs
	if err := r.decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return r.engine.OptimizeForJobJSON(in.ResumeData, in.JobDescription)
}

// parse turns PDF or text input into a document, consulting the cache by
// content hash. Concurrent calls for the same input share one parse.
func (r *Registry) parse(ctx context.Context, in resumeArgs) (parsedResume, error) {
	var (
		key  string
		load func() (string, error)
	)
	if in.PDF != "" {
		data, err := extract.DecodeBase64(in.PDF)
		if err != nil {
			return parsedResume{}, err
		}
		key = "parsed:pdf:" + util.SHA256Hex(data)
		load = func() (string, error) { return extract.PDFText(ctx, data) }
	} else {
		key = "parsed:text:" + util.SHA256Hex([]byte(in.Text))
		load = func() (string, error) { return in.Text, nil }
	}

	var cached parsedResume
	found, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		telemetry.Warn("tool.cache_get_failed", map[string]any{"key": key, "error": err})
	}
	if found {
		metrics.IncToolCacheHit()
		return cached, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		text, err := load()
		if err != nil {
			return parsedResume{}, err
		}
		doc, err := r.engine.ParseDocument(text)
		if err != nil {
			return parsedResume{}, err
		}
		out := parsedResume{RawText: text, Document: doc}
		if err := r.cache.SetJSON(ctx, key, out, r.cacheTTL); err != nil {
			telemetry.Warn("tool.cache_set_failed", map[string]any{"key": key, "error": err})
		}
		return out, nil
	})
	if err != nil {
		return parsedResume{}, err
	}
	return v.(parsedResume), nil
}
