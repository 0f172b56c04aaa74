package parse

import (
	"regexp"
	"strings"
)

// Section identifies a recognized resume section.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
)

type sectionRule struct {
	section  Section
	headings []string
}

// sectionTable is checked in order; the first rule matching a line wins.
var sectionTable = []sectionRule{
	{SectionSummary, []string{"professional summary", "summary", "profile", "about me", "executive summary", "career summary", "objective", "career objective"}},
	{SectionExperience, []string{"professional experience", "work experience", "experience", "employment history", "employment", "work history", "relevant experience"}},
	{SectionEducation, []string{"education", "academic background", "academic history", "educational background"}},
	{SectionSkills, []string{"skills", "technical skills", "core competencies", "key skills", "technologies", "tech stack", "areas of expertise", "proficiencies"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses", "credentials", "professional certifications"}},
	{SectionProjects, []string{"projects", "key projects", "notable projects", "personal projects"}},
}

type compiledSection struct {
	section Section
	pattern *regexp.Regexp
}

var headingPatterns = compileSections(sectionTable)

func compileSections(rules []sectionRule) []compiledSection {
	out := make([]compiledSection, 0, len(rules))
	for _, rule := range rules {
		alts := make([]string, 0, len(rule.headings))
		for _, h := range rule.headings {
			words := strings.Fields(h)
			for i, w := range words {
				words[i] = regexp.QuoteMeta(w)
			}
			alts = append(alts, strings.Join(words, `\s+`))
		}
		pattern := regexp.MustCompile(`(?i)^(?:` + strings.Join(alts, "|") + `)\s*:?$`)
		out = append(out, compiledSection{section: rule.section, pattern: pattern})
	}
	return out
}

// detectHeading reports which section a full trimmed line introduces, if any.
func detectHeading(line string) (Section, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	for _, cs := range headingPatterns {
		if cs.pattern.MatchString(trimmed) {
			return cs.section, true
		}
	}
	return "", false
}

// span is a half-open line range [start, end) holding a section body.
type span struct {
	start int
	end   int
}

// sectionMap holds the body ranges of the sections found in a document.
type sectionMap struct {
	spans        map[Section]span
	firstHeading int
}

// findSections partitions lines by heading. A body runs from the line after its
// heading to the next heading or EOF. A repeated heading keeps its first span.
func findSections(lines []string) sectionMap {
	type heading struct {
		section Section
		line    int
	}
	var headings []heading
	for i, line := range lines {
		if s, ok := detectHeading(line); ok {
			headings = append(headings, heading{section: s, line: i})
		}
	}

	m := sectionMap{spans: make(map[Section]span), firstHeading: len(lines)}
	if len(headings) > 0 {
		m.firstHeading = headings[0].line
	}
	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		}
		if _, seen := m.spans[h.section]; seen {
			continue
		}
		m.spans[h.section] = span{start: h.line + 1, end: end}
	}
	return m
}

func (m sectionMap) lines(all []string, s Section) []string {
	sp, ok := m.spans[s]
	if !ok || sp.start >= sp.end {
		return nil
	}
	return all[sp.start:sp.end]
}

func (m sectionMap) has(s Section) bool {
	_, ok := m.spans[s]
	return ok
}
