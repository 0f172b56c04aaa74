package ats

import (
	"sort"
	"strings"
	"unicode"

	"resume-ats/resume/model"
)

// MaxRecommendations caps the prioritized fix list.
const MaxRecommendations = 7

// Recommendations turns scorer issues, and optionally the job keywords a
// resume is missing, into a deduplicated list of at most MaxRecommendations
// fixes ranked by severity, then category, then title. Order is 1-based.
func Recommendations(issues []model.Issue, missingKeywords []string) []model.Recommendation {
	candidates := make([]model.Recommendation, 0, len(issues)+1)
	candidates = append(candidates, fromIssues(issues)...)
	candidates = append(candidates, fromMissingKeywords(missingKeywords)...)

	out := dedupe(candidates)
	sortRecommendations(out)
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

func fromIssues(issues []model.Issue) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(issues))
	for _, issue := range issues {
		title := strings.TrimSpace(issue.Message)
		if title == "" {
			title = strings.TrimSpace(issue.Category)
		}
		if title == "" {
			title = "Issue found"
		}
		fix := strings.TrimSpace(issue.Fix)
		if fix == "" {
			fix = "Fix: " + title
		}
		severity := issue.Severity
		if severity == "" {
			severity = model.SeverityInfo
		}
		out = append(out, model.Recommendation{
			ID:       "ISSUE_" + slugify(issue.Category+" "+title),
			Severity: severity,
			Category: issue.Category,
			Title:    title,
			Fix:      fix,
		})
	}
	return out
}

func fromMissingKeywords(k []string) []model.Recommendation {
	keywords := uniqueSorted(k)
	if len(keywords) == 0 {
		return nil
	}
	return []model.Recommendation{{
		ID:       "ATS_MISSING_JOB_KEYWORDS",
		Severity: model.SeverityWarning,
		Category: "Keywords",
		Title:    "Add missing job keywords",
		Fix:      "Work the missing keywords naturally into Skills and Experience bullets. Focus on: " + strings.Join(keywords, ", "),
	}}
}

func severityRank(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return 3
	case model.SeverityWarning:
		return 2
	default:
		return 1
	}
}

func categoryRank(category string) int {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "contact info":
		return 6
	case "section headers":
		return 5
	case "formatting":
		return 4
	case "keywords", "skills":
		return 3
	case "experience", "impact":
		return 2
	case "education", "summary", "language", "length":
		return 1
	default:
		return 0
	}
}

func dedupe(items []model.Recommendation) []model.Recommendation {
	seen := make(map[string]int, len(items))
	out := make([]model.Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if idx, ok := seen[id]; ok {
			out[idx] = merge(out[idx], item)
			continue
		}
		seen[id] = len(out)
		out = append(out, item)
	}
	return out
}

func merge(a, b model.Recommendation) model.Recommendation {
	if strings.TrimSpace(a.Fix) == "" {
		a.Fix = b.Fix
	}
	if strings.TrimSpace(a.Category) == "" {
		a.Category = b.Category
	}
	if severityRank(b.Severity) > severityRank(a.Severity) {
		a.Severity = b.Severity
	}
	return a
}

func sortRecommendations(items []model.Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := severityRank(a.Severity), severityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if ra, rb := categoryRank(a.Category), categoryRank(b.Category); ra != rb {
			return ra > rb
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func uniqueSorted(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
