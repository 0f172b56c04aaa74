// Package ats scores a parsed resume for machine readability by applicant
// tracking systems and derives prioritized fixes from the findings.
package ats

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"resume-ats/resume/keywords"
	"resume-ats/resume/model"
)

// Score rates a document on four independent axes, each clamped to [0,25],
// and lists the issues found and the checks passed. It is pure: the same
// input always yields the same output.
func Score(rawText string, doc model.Document) model.ATSScore {
	f := collect(rawText, doc)
	breakdown := model.ATSBreakdown{
		Formatting:          clamp(scoreFormatting(f)),
		SectionHeaders:      clamp(scoreSectionHeaders(f)),
		Parseability:        clamp(scoreParseability(f)),
		KeywordOptimization: clamp(scoreKeywordOptimization(f)),
	}
	return model.ATSScore{
		OverallScore: breakdown.Total(),
		Breakdown:    breakdown,
		Issues:       issues(f),
		Passed:       passed(f),
	}
}

// facts are the measurements shared by sub-scores, issues and passed checks.
type facts struct {
	doc             model.Document
	lines           []string
	words           int
	imagePatterns   int
	tablePatterns   int
	multiColumnHit  bool
	decorativeCount int
	sectionsFound   []bool
	headerLines     []string
	bullets         []string
	actionVerbs     int
	quantified      int
	undated         int
}

func collect(rawText string, doc model.Document) facts {
	f := facts{doc: doc}
	raw := strings.Split(rawText, "\n")
	f.lines = make([]string, len(raw))
	for i, l := range raw {
		f.lines[i] = strings.TrimSpace(l)
	}
	f.words = len(strings.Fields(rawText))

	for _, p := range imageIndicators {
		if p.MatchString(rawText) {
			f.imagePatterns++
		}
	}
	for _, p := range tableIndicators {
		for _, l := range raw {
			if p.MatchString(l) {
				f.tablePatterns++
				break
			}
		}
	}
	for _, p := range multiColumnIndicators {
		hits := 0
		for _, l := range raw {
			if p.MatchString(l) {
				hits++
			}
		}
		if hits > multiColumnLines {
			f.multiColumnHit = true
		}
	}
	for _, r := range rawText {
		if _, ok := decorative[r]; ok {
			f.decorativeCount++
		}
	}

	f.sectionsFound = make([]bool, len(standardSections))
	for _, line := range f.lines {
		n := utf8.RuneCountInString(line)
		if n == 0 || n >= headerMaxLen {
			continue
		}
		isHeader := false
		for i, s := range standardSections {
			if anyMatch(s.patterns, line) {
				f.sectionsFound[i] = true
				isHeader = true
			}
		}
		if isHeader {
			f.headerLines = append(f.headerLines, line)
		}
	}

	f.bullets = doc.AllBullets()
	f.actionVerbs = len(keywords.ExtractActionVerbs(strings.Join(f.bullets, " ")))
	for _, b := range f.bullets {
		if IsQuantified(b) {
			f.quantified++
		}
	}
	for _, e := range doc.Experience {
		if !e.Dated() {
			f.undated++
		}
	}
	return f
}

func scoreFormatting(f facts) int {
	score := model.MaxSubScore
	score -= min(f.imagePatterns*imagePenalty, maxImagePenalty)
	score -= min(f.tablePatterns*tablePenalty, maxTablePenalty)
	if f.multiColumnHit {
		score -= multiColumnPenalty
	}
	switch {
	case f.words < shortWordCount:
		score -= shortPenalty
	case f.words > longWordCount:
		score -= longPenalty
	}
	if f.decorativeCount > decorativeLimit {
		score -= decorativePenalty
	}
	return score
}

func scoreSectionHeaders(f facts) int {
	score := 0
	for _, found := range f.sectionsFound {
		if found {
			score += 5
		}
	}
	if len(f.headerLines) >= 2 && consistentCasing(f.headerLines) {
		score += 5
	}
	return score
}

func consistentCasing(headers []string) bool {
	allUpper, allTitle := true, true
	for _, h := range headers {
		if h != strings.ToUpper(h) {
			allUpper = false
		}
		if h == "" || h[0] < 'A' || h[0] > 'Z' {
			allTitle = false
		}
	}
	return allUpper || allTitle
}

func scoreParseability(f facts) int {
	doc := f.doc
	score := 0
	if doc.HasName() {
		score += 5
	}
	if doc.Email != "" {
		score += 4
	}
	if doc.Phone != "" {
		score += 3
	}
	if len(doc.Experience) > f.undated {
		score += 5
	}
	if len(doc.Education) > 0 {
		score += 4
	}
	switch {
	case len(f.bullets) >= 5:
		score += 4
	case len(f.bullets) > 0:
		score += 2
	}
	return score
}

func scoreKeywordOptimization(f facts) int {
	doc := f.doc
	score := tier(len(doc.Skills), 10, 7, 5, 5, 3)
	score += tier(f.actionVerbs, 10, 8, 5, 6, 3)
	score += tier(f.quantified, 5, 7, 2, 5, 2)
	if utf8.RuneCountInString(doc.Summary) > 30 {
		score += 3
	}
	return score
}

// tier awards high at or above hiAt, mid at or above midAt, low for any positive count.
func tier(n, hiAt, high, midAt, mid, low int) int {
	switch {
	case n >= hiAt:
		return high
	case n >= midAt:
		return mid
	case n > 0:
		return low
	}
	return 0
}

func issues(f facts) []model.Issue {
	doc := f.doc
	out := []model.Issue{}
	add := func(sev model.Severity, category, message, fix string) {
		out = append(out, model.Issue{Severity: sev, Category: category, Message: message, Fix: fix})
	}

	if !doc.HasName() {
		add(model.SeverityCritical, "Contact Info",
			"Name could not be detected at the top of the resume.",
			"Place your full name prominently on the first line of the resume.")
	}
	if doc.Email == "" {
		add(model.SeverityCritical, "Contact Info",
			"Email address not found in the resume.",
			"Add a professional email address near the top of your resume.")
	}
	if f.imagePatterns > 0 {
		add(model.SeverityCritical, "Formatting",
			"Resume appears to contain images or embedded graphics.",
			"Remove all images, logos, and photos. ATS systems cannot parse image content.")
	}
	if !f.sectionsFound[0] {
		add(model.SeverityCritical, "Section Headers",
			`No "Experience" or "Work Experience" section header found.`,
			`Add a clearly labeled "Professional Experience" or "Work Experience" section.`)
	}

	if doc.Phone == "" {
		add(model.SeverityWarning, "Contact Info",
			"Phone number not found in the resume.",
			"Include a phone number for recruiter callbacks.")
	}
	switch n := len(doc.Skills); {
	case n == 0:
		add(model.SeverityWarning, "Skills",
			"No dedicated skills section detected.",
			`Add a "Technical Skills" or "Skills" section with relevant keywords from your target job descriptions.`)
	case n < 5:
		add(model.SeverityWarning, "Skills",
			fmt.Sprintf("Skills section only contains %d items, which is quite sparse.", n),
			"Expand your skills section to include at least 8-12 relevant technical and professional skills.")
	}
	if len(doc.Education) == 0 {
		add(model.SeverityWarning, "Education",
			"No education entries detected.",
			`Add an "Education" section with your degree(s), institution(s), and graduation year(s).`)
	}
	if f.undated > 0 {
		add(model.SeverityWarning, "Experience",
			fmt.Sprintf("%d experience entry/entries missing date ranges.", f.undated),
			`Add start and end dates (e.g., "Jan 2020 - Present") for all positions. ATS systems use dates to calculate experience length.`)
	}
	if f.tablePatterns > 0 {
		add(model.SeverityWarning, "Formatting",
			"Resume may contain a table-based layout.",
			"Replace tables with simple left-aligned text. Use standard bullet points for lists.")
	}
	if f.words > verboseWordCount {
		add(model.SeverityWarning, "Length",
			fmt.Sprintf("Resume is approximately %d words, which may be too long.", f.words),
			"Aim for a concise resume (400-800 words for 1 page, 800-1200 for 2 pages). Focus on the most relevant experience.")
	}

	if doc.Summary == "" {
		add(model.SeverityInfo, "Summary",
			"No professional summary or objective detected.",
			"Add a 2-3 sentence professional summary at the top to quickly convey your value proposition.")
	}
	if f.actionVerbs < 5 && len(doc.Experience) > 0 {
		add(model.SeverityInfo, "Language",
			"Bullet points use few strong action verbs.",
			`Start each bullet point with a strong action verb (e.g., "Developed", "Implemented", "Optimized", "Led").`)
	}
	if f.quantified < 3 && len(f.bullets) > 5 {
		add(model.SeverityInfo, "Impact",
			fmt.Sprintf("Only %d bullet points contain quantifiable results.", f.quantified),
			`Add metrics and numbers to more bullet points (e.g., "Reduced load time by 40%", "Managed team of 8 engineers").`)
	}
	if len(doc.Certifications) == 0 {
		add(model.SeverityInfo, "Certifications",
			"No certifications section detected.",
			"If you have relevant certifications (AWS, PMP, Google, etc.), add a Certifications section.")
	}
	return out
}

func passed(f facts) []string {
	doc := f.doc
	out := []string{}
	if doc.HasName() {
		out = append(out, "Name is clearly identifiable at the top of the resume.")
	}
	if doc.Email != "" {
		out = append(out, "Professional email address is present.")
	}
	if doc.Phone != "" {
		out = append(out, "Phone number is included.")
	}
	if doc.Location != "" {
		out = append(out, "Location information is provided.")
	}
	for i, s := range standardSections {
		if f.sectionsFound[i] {
			out = append(out, fmt.Sprintf("%q section header found with standard naming.", s.name))
		}
	}
	if n := len(doc.Skills); n >= 5 {
		out = append(out, fmt.Sprintf("Skills section contains %d items, good keyword density.", n))
	}
	if n := len(f.bullets); n >= 5 {
		out = append(out, fmt.Sprintf("Experience section has %d bullet points with clear descriptions.", n))
	}
	if f.actionVerbs >= 5 {
		out = append(out, fmt.Sprintf("Uses %d strong action verbs in experience bullets.", f.actionVerbs))
	}
	if f.quantified >= 3 {
		out = append(out, fmt.Sprintf("%d bullet points include quantifiable metrics.", f.quantified))
	}
	if len(doc.Experience) > 0 && f.undated == 0 {
		out = append(out, "All experience entries include date ranges.")
	}
	if len(doc.Education) > 0 {
		out = append(out, "Education section is present with parsed entries.")
	}
	if utf8.RuneCountInString(doc.Summary) > 30 {
		out = append(out, "Professional summary/objective is present.")
	}
	if f.imagePatterns == 0 {
		out = append(out, "No images or embedded graphics detected, ATS-safe.")
	}
	return out
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > model.MaxSubScore {
		return model.MaxSubScore
	}
	return v
}
