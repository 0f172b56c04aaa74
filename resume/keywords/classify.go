package keywords

import (
	"regexp"
	"strings"

	"resume-ats/resume/model"
)

var lineSplit = regexp.MustCompile(`[\n\r]+`)

type requirementContext int

const (
	contextNeutral requirementContext = iota
	contextRequired
	contextNiceToHave
)

// Classification buckets the catalog terms of a job posting.
type Classification struct {
	RequiredSkills []string
	NiceToHave     []string
	TechnicalTerms []string
}

// Classify folds a single context flag over the posting's lines. A line with a
// required trigger switches to required, a line with a nice-to-have trigger
// switches to nice-to-have (checked second, so it wins on a shared line), and the
// flag persists until the next trigger line. Neutral lines count as required.
func Classify(jobText string) Classification {
	required := make(map[string]struct{})
	nice := make(map[string]struct{})

	ctx := contextNeutral
	for _, line := range splitLines(jobText) {
		ctx = nextContext(ctx, strings.ToLower(line))
		for _, kw := range ExtractKeywords(line) {
			if ctx == contextNiceToHave {
				nice[kw] = struct{}{}
			} else {
				required[kw] = struct{}{}
			}
		}
	}
	for kw := range required {
		delete(nice, kw)
	}

	return Classification{
		RequiredSkills: sortedKeys(required),
		NiceToHave:     sortedKeys(nice),
		TechnicalTerms: ExtractKeywords(jobText),
	}
}

// Analyze classifies the posting and adds the action verbs and soft skills it mentions.
func Analyze(jobText string) model.KeywordAnalysis {
	c := Classify(jobText)
	return model.KeywordAnalysis{
		RequiredSkills: c.RequiredSkills,
		NiceToHave:     c.NiceToHave,
		ActionVerbs:    ExtractActionVerbs(jobText),
		TechnicalTerms: c.TechnicalTerms,
		SoftSkills:     ExtractSoftSkills(jobText),
	}
}

// JobKeywords returns required skills followed by nice-to-have skills, deduplicated.
func (c Classification) JobKeywords() []string {
	seen := make(map[string]struct{}, len(c.RequiredSkills)+len(c.NiceToHave))
	out := make([]string, 0, len(c.RequiredSkills)+len(c.NiceToHave))
	for _, group := range [][]string{c.RequiredSkills, c.NiceToHave} {
		for _, kw := range group {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

func nextContext(current requirementContext, lowerLine string) requirementContext {
	next := current
	if hasTrigger(lowerLine, requiredTriggers) {
		next = contextRequired
	}
	if hasTrigger(lowerLine, niceToHaveTriggers) {
		next = contextNiceToHave
	}
	return next
}

// hasTrigger is a plain substring test, so "expected" and "needed" also switch context.
func hasTrigger(lowerLine string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(lowerLine, trigger) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	raw := lineSplit.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
