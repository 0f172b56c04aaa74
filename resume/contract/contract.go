package contract

import (
	"strings"

	"resume-ats/resume/model"
)

// MissingFieldsError lists document fields a caller must supply.
type MissingFieldsError struct {
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Normalize restores the invariants of a document that came back from JSON.
// Null collections become empty and blank identity fields get their sentinels.
// Entry slices are copied before repair; the caller's backing arrays are not written.
func Normalize(doc *model.Document) {
	if doc == nil {
		return
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = model.UnknownName
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if doc.Experience == nil {
		doc.Experience = []model.WorkEntry{}
	}
	if hasNilBullets(doc.Experience) {
		entries := make([]model.WorkEntry, len(doc.Experience))
		copy(entries, doc.Experience)
		for i := range entries {
			if entries[i].Bullets == nil {
				entries[i].Bullets = []string{}
			}
		}
		doc.Experience = entries
	}
	if doc.Education == nil {
		doc.Education = []model.EducationEntry{}
	}
	if hasBlankInstitution(doc.Education) {
		entries := make([]model.EducationEntry, len(doc.Education))
		copy(entries, doc.Education)
		for i := range entries {
			if strings.TrimSpace(entries[i].Institution) == "" {
				entries[i].Institution = model.UnknownInstitution
			}
		}
		doc.Education = entries
	}
	if doc.Certifications == nil {
		doc.Certifications = []string{}
	}
}

// Enforce normalizes the document and rejects one that carries nothing to analyze.
// A document needs either its raw text or an extracted skills list.
func Enforce(doc *model.Document) error {
	Normalize(doc)
	missing := collectMissing(doc)
	if len(missing) > 0 {
		return InvalidInputError{
			Field:  "resume_data",
			Reason: "resume data is incomplete",
			Err:    MissingFieldsError{Fields: missing},
		}
	}
	return nil
}

func hasNilBullets(entries []model.WorkEntry) bool {
	for _, e := range entries {
		if e.Bullets == nil {
			return true
		}
	}
	return false
}

func hasBlankInstitution(entries []model.EducationEntry) bool {
	for _, e := range entries {
		if strings.TrimSpace(e.Institution) == "" {
			return true
		}
	}
	return false
}

func collectMissing(doc *model.Document) []string {
	if strings.TrimSpace(doc.RawText) != "" || len(doc.Skills) > 0 {
		return nil
	}
	return []string{"rawText", "skills"}
}
