package model

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownName is the sentinel used when no candidate name can be detected.
const UnknownName = "Unknown"

// UnknownInstitution is the sentinel used when an education block has no institution line.
const UnknownInstitution = "Unknown"

// Document is the structured view of a resume recovered from its raw text.
type Document struct {
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Location       string           `json:"location,omitempty"`
	Title          string           `json:"title,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []string         `json:"skills"`
	Experience     []WorkEntry      `json:"experience"`
	Education      []EducationEntry `json:"education"`
	Certifications []string         `json:"certifications"`
	RawText        string           `json:"rawText"`
}

// WorkEntry is one position in the experience section.
type WorkEntry struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one block of the education section.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Dated reports whether the entry carries a start or end date.
func (w WorkEntry) Dated() bool {
	return w.StartDate != "" || w.EndDate != ""
}

// Label renders the entry the way ranked experience lists present it.
func (w WorkEntry) Label() string {
	return w.Title + " at " + w.Company
}

// HasName reports whether a real name was detected.
func (d Document) HasName() bool {
	name := strings.TrimSpace(d.Name)
	return name != "" && name != UnknownName
}

// AllBullets returns every experience bullet in document order.
func (d Document) AllBullets() []string {
	out := make([]string, 0)
	for _, entry := range d.Experience {
		out = append(out, entry.Bullets...)
	}
	return out
}

// Validate checks the structural invariants a document must hold after extraction.
func (d Document) Validate() error {
	if strings.TrimSpace(d.RawText) == "" {
		return errors.New("rawText is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	for i, entry := range d.Experience {
		if entry.Bullets == nil {
			return fmt.Errorf("experience[%d].bullets must not be null", i)
		}
	}
	for i, edu := range d.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			return fmt.Errorf("education[%d].institution is required", i)
		}
	}
	return nil
}
