// Package parse turns extracted resume text into a structured model.Document.
//
// Extraction is heuristic and line based: a heading table partitions the text
// into sections, contact details come from the first lines, and experience is
// read with a small state machine. Parse is pure and safe for concurrent use.
package parse

import (
	"strings"

	"resume-ats/resume/contract"
	"resume-ats/resume/model"
)

// Parse extracts a Document from raw resume text. It fails with a
// contract.NoContentError when the text is blank.
func Parse(rawText string) (model.Document, error) {
	if strings.TrimSpace(rawText) == "" {
		return model.Document{}, contract.NoContentError{Source: "resume text"}
	}

	lines := strings.Split(rawText, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}

	sections := findSections(lines)
	c := extractContact(lines)

	doc := model.Document{
		Name:           c.name,
		Email:          c.email,
		Phone:          c.phone,
		Location:       c.location,
		Title:          extractTitle(lines, c.nameIndex, sections.firstHeading),
		Summary:        parseSummary(sections.lines(lines, SectionSummary)),
		Skills:         parseSkills(sections.lines(lines, SectionSkills)),
		Experience:     parseExperience(sections.lines(lines, SectionExperience)),
		Education:      parseEducation(sections.lines(lines, SectionEducation)),
		Certifications: parseCertifications(sections.lines(lines, SectionCertifications)),
		RawText:        rawText,
	}
	return doc, nil
}

// Sections reports which recognized sections the text contains, in table order.
func Sections(rawText string) []Section {
	sections := findSections(strings.Split(rawText, "\n"))
	out := []Section{}
	for _, rule := range sectionTable {
		if sections.has(rule.section) {
			out = append(out, rule.section)
		}
	}
	return out
}
