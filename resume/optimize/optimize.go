// Package optimize compares a parsed resume with a job posting and reports the
// fit score, keyword coverage, concrete edits and a relevance ordering of the
// candidate's experience.
package optimize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"resume-ats/resume/ats"
	"resume-ats/resume/keywords"
	"resume-ats/resume/model"
)

const (
	maxSkillSuggestions      = 8
	maxSummaryTerms          = 4
	maxSummaryMentions       = 5
	maxExperienceSuggestions = 5
	shortSummaryLen          = 30
	summaryPreviewLen        = 100
	skillsPreview            = 5
)

var (
	jobTitleLine = regexp.MustCompile(`(?im)^[ \t]*(?:job[ \t]+title|position|role)[ \t]*:[ \t]*(.+)$`)
	fourDigits   = regexp.MustCompile(`\d{4}`)
)

// Optimizer produces job-fit reports. Now supplies the clock used for the
// recency bonus; when nil the wall clock is used.
type Optimizer struct {
	Now func() time.Time
}

// New returns an Optimizer on the wall clock.
func New() Optimizer {
	return Optimizer{Now: time.Now}
}

// Optimize scores doc against jobText. The result depends only on its inputs
// and the optimizer's clock.
func (o Optimizer) Optimize(doc model.Document, jobText string) model.OptimizationReport {
	classified := keywords.Classify(jobText)
	jobKeywords := classified.JobKeywords()
	match := keywords.MatchKeywords(corpus(doc), jobKeywords)

	return model.OptimizationReport{
		FitScore:            fitScore(match, classified, doc),
		MatchedKeywords:     match.Matched,
		MissingKeywords:     match.Missing,
		KeywordDensity:      keywords.Density(len(match.Matched), len(jobKeywords)),
		Suggestions:         suggestions(doc, classified, match.Missing, jobText),
		ReorderedExperience: o.rankExperience(doc, jobText),
	}
}

func (o Optimizer) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// corpus is every piece of resume text the keyword matcher should see.
func corpus(doc model.Document) string {
	parts := []string{}
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(doc.RawText)
	add(doc.Summary)
	add(strings.Join(doc.Skills, " "))
	for _, e := range doc.Experience {
		add(e.Title)
		add(e.Company)
		add(strings.Join(e.Bullets, " "))
	}
	for _, ed := range doc.Education {
		add(ed.Degree)
		add(ed.Field)
		add(ed.Institution)
	}
	add(strings.Join(doc.Certifications, " "))
	return strings.Join(parts, " ")
}

func fitScore(match keywords.Match, classified keywords.Classification, doc model.Document) int {
	score := 0
	if total := len(match.Matched) + len(match.Missing); total > 0 {
		score += roundRatio(len(match.Matched), total, 50)
	}

	if len(classified.RequiredSkills) > 0 {
		required := make(map[string]struct{}, len(classified.RequiredSkills))
		for _, r := range classified.RequiredSkills {
			required[strings.ToLower(r)] = struct{}{}
		}
		hits := 0
		for _, m := range match.Matched {
			if _, ok := required[strings.ToLower(m)]; ok {
				hits++
			}
		}
		score += roundRatio(hits, len(classified.RequiredSkills), 25)
	} else {
		score += 15
	}

	score += min(quality(doc), 25)
	return max(0, min(score, 100))
}

// roundRatio returns round(n/d*scale), rounding halves up.
func roundRatio(n, d, scale int) int {
	return (2*n*scale + d) / (2 * d)
}

func quality(doc model.Document) int {
	q := 0
	if utf8.RuneCountInString(doc.Summary) > shortSummaryLen {
		q += 3
	}
	switch n := len(doc.Skills); {
	case n >= 10:
		q += 5
	case n >= 5:
		q += 3
	}
	bullets := doc.AllBullets()
	switch n := len(bullets); {
	case n >= 10:
		q += 7
	case n >= 5:
		q += 5
	case n > 0:
		q += 2
	}
	switch n := len(keywords.ExtractActionVerbs(strings.Join(bullets, " "))); {
	case n >= 8:
		q += 5
	case n >= 4:
		q += 3
	}
	if len(doc.Education) > 0 {
		q += 3
	}
	if len(doc.Certifications) > 0 {
		q += 2
	}
	return q
}

func suggestions(doc model.Document, classified keywords.Classification, missing []string, jobText string) []model.OptimizationSuggestion {
	out := []model.OptimizationSuggestion{}
	add := func(s *model.OptimizationSuggestion) {
		if s != nil {
			out = append(out, *s)
		}
	}
	add(skillsSuggestion(doc, missing))
	add(summarySuggestion(doc, classified.RequiredSkills))
	add(titleSuggestion(doc, jobText))

	bullets := doc.AllBullets()
	bulletText := strings.Join(bullets, " ")
	add(actionVerbSuggestion(doc, bulletText))
	add(metricsSuggestion(bullets))
	add(experienceKeywordSuggestion(missing, bulletText))
	return out
}

func skillsSuggestion(doc model.Document, missing []string) *model.OptimizationSuggestion {
	listed := make(map[string]struct{}, len(doc.Skills))
	for _, s := range doc.Skills {
		listed[strings.ToLower(s)] = struct{}{}
	}
	var absent []string
	for _, kw := range missing {
		if _, ok := listed[strings.ToLower(kw)]; !ok {
			absent = append(absent, kw)
		}
	}
	if len(absent) == 0 {
		return nil
	}

	current := "No skills section found"
	if len(doc.Skills) > 0 {
		current = "Current skills: " + strings.Join(head(doc.Skills, skillsPreview), ", ")
		if len(doc.Skills) > skillsPreview {
			current += "..."
		}
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionSkills,
		Current:   current,
		Suggested: "Add these missing keywords to your skills section: " + strings.Join(head(absent, maxSkillSuggestions), ", "),
		Reason:    "The job description requires these skills but they are not found in your resume. Adding them (if you have the experience) will improve ATS keyword matching.",
	}
}

func summarySuggestion(doc model.Document, required []string) *model.OptimizationSuggestion {
	if utf8.RuneCountInString(doc.Summary) < shortSummaryLen {
		current := doc.Summary
		if current == "" {
			current = "No summary present"
		}
		mention := "your strongest skills for this role"
		example := "your core skills"
		if len(required) > 0 {
			mention = strings.Join(head(required, maxSummaryMentions), ", ")
			example = strings.Join(head(required, 3), ", ")
		}
		return &model.OptimizationSuggestion{
			Section:   model.SectionSummary,
			Current:   current,
			Suggested: fmt.Sprintf(`Add a 2-3 sentence professional summary mentioning: %s. Example: "Results-driven [title] with [X] years of experience in %s. Proven track record of [key achievement]."`, mention, example),
			Reason:    "A keyword-rich professional summary helps ATS systems quickly identify your fit and gives recruiters an immediate snapshot of your qualifications.",
		}
	}

	var absent []string
	for _, skill := range required {
		if !keywords.ContainsTerm(doc.Summary, skill) {
			absent = append(absent, skill)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	current := doc.Summary
	if utf8.RuneCountInString(current) > summaryPreviewLen {
		current = truncate(current, summaryPreviewLen) + "..."
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionSummary,
		Current:   current,
		Suggested: "Incorporate these key terms into your summary: " + strings.Join(head(absent, maxSummaryTerms), ", "),
		Reason:    "Your summary is missing key required skills from the job description. Weaving them in naturally improves ATS matching.",
	}
}

func titleSuggestion(doc model.Document, jobText string) *model.OptimizationSuggestion {
	m := jobTitleLine.FindStringSubmatch(jobText)
	if m == nil || doc.Title == "" {
		return nil
	}
	target := strings.TrimSpace(m[1])
	if target == "" {
		return nil
	}
	current, wanted := strings.ToLower(doc.Title), strings.ToLower(target)
	if strings.Contains(current, wanted) || strings.Contains(wanted, current) {
		return nil
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionTitle,
		Current:   doc.Title,
		Suggested: fmt.Sprintf("Consider aligning your title to %q if it accurately reflects your experience.", target),
		Reason:    "ATS systems often match the job title in your resume against the posted position. Aligning titles (when truthful) improves match scores.",
	}
}

func actionVerbSuggestion(doc model.Document, bulletText string) *model.OptimizationSuggestion {
	verbs := len(keywords.ExtractActionVerbs(bulletText))
	if verbs >= 5 || len(doc.Experience) == 0 {
		return nil
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionExperience,
		Current:   fmt.Sprintf("Experience bullets use only %d action verbs", verbs),
		Suggested: "Rewrite bullet points to start with strong action verbs: Developed, Implemented, Architected, Optimized, Led, Reduced, Increased, Delivered, Automated, Migrated",
		Reason:    "Action verbs make achievements concrete and are weighted by ATS systems. Aim for each bullet to start with a unique action verb.",
	}
}

func metricsSuggestion(bullets []string) *model.OptimizationSuggestion {
	quantified := 0
	for _, b := range bullets {
		if ats.IsQuantified(b) {
			quantified++
		}
	}
	if quantified >= 3 || len(bullets) <= 3 {
		return nil
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionExperience,
		Current:   fmt.Sprintf("Only %d of %d bullets contain quantifiable metrics", quantified, len(bullets)),
		Suggested: `Add numbers and percentages to more bullet points. Examples: "Reduced API response time by 60%", "Managed deployment pipeline serving 2M daily requests", "Led team of 5 engineers"`,
		Reason:    "Quantifiable results demonstrate impact and are strongly weighted by both ATS systems and human reviewers.",
	}
}

func experienceKeywordSuggestion(missing []string, bulletText string) *model.OptimizationSuggestion {
	var absent []string
	for _, kw := range missing {
		if !keywords.ContainsTerm(bulletText, kw) {
			absent = append(absent, kw)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	return &model.OptimizationSuggestion{
		Section:   model.SectionExperience,
		Current:   "Experience bullets missing key job keywords",
		Suggested: "Naturally incorporate these terms into your experience bullets where truthful: " + strings.Join(head(absent, maxExperienceSuggestions), ", "),
		Reason:    "Keywords appearing in the context of actual work experience carry more weight than skills listed in isolation.",
	}
}

// rankExperience orders entry labels by job keyword hits plus a recency bonus.
// Ties keep document order.
func (o Optimizer) rankExperience(doc model.Document, jobText string) []string {
	labels := make([]string, len(doc.Experience))
	for i, e := range doc.Experience {
		labels[i] = e.Label()
	}
	if len(doc.Experience) <= 1 {
		return labels
	}

	jobTerms := keywords.ExtractKeywords(jobText)
	year := o.now().Year()
	type ranked struct {
		label string
		score int
	}
	entries := make([]ranked, len(doc.Experience))
	for i, e := range doc.Experience {
		text := strings.Join(append([]string{e.Title, e.Company}, e.Bullets...), " ")
		score := 0
		for _, term := range jobTerms {
			if keywords.ContainsTerm(text, term) {
				score++
			}
		}
		entries[i] = ranked{label: labels[i], score: score + recencyBonus(e.EndDate, year)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})
	for i, e := range entries {
		labels[i] = e.label
	}
	return labels
}

func recencyBonus(endDate string, currentYear int) int {
	if endDate == "" {
		return 0
	}
	lower := strings.ToLower(endDate)
	if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
		return 3
	}
	y, err := strconv.Atoi(fourDigits.FindString(endDate))
	if err != nil {
		return 0
	}
	switch {
	case y >= currentYear-1:
		return 2
	case y >= currentYear-3:
		return 1
	}
	return 0
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
