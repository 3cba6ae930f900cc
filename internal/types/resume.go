// Package types provides type definitions for structured data used throughout the resume-formatter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SectionID identifies one of the fixed résumé sections
type SectionID string

const (
	SectionSummary       SectionID = "summary"
	SectionSkills        SectionID = "skills"
	SectionEducation     SectionID = "education"
	SectionCertification SectionID = "certification"
	SectionTraining      SectionID = "training"
	SectionExperience    SectionID = "experience"
)

// AllSections lists every section in canonical order. The set is closed.
var AllSections = []SectionID{
	SectionSummary,
	SectionSkills,
	SectionEducation,
	SectionCertification,
	SectionTraining,
	SectionExperience,
}

// Valid reports whether id belongs to the closed section set
func (id SectionID) Valid() bool {
	for _, s := range AllSections {
		if s == id {
			return true
		}
	}
	return false
}

// Candidate is the person the résumé belongs to, derived from the first non-empty line
type Candidate struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewCandidate splits fullName naively on whitespace. FullName is authoritative.
func NewCandidate(fullName string) Candidate {
	fullName = strings.TrimSpace(fullName)
	fields := strings.Fields(fullName)

	c := Candidate{FullName: fullName}
	if len(fields) > 0 {
		c.FirstName = fields[0]
	}
	if len(fields) > 1 {
		c.LastName = strings.Join(fields[1:], " ")
	}
	return c
}

// SectionModel maps every section to its ordered, normalized lines.
// All keys are present even when empty; use NewSectionModel to construct one.
type SectionModel struct {
	Summary       []string `json:"summary"`
	Skills        []string `json:"skills"`
	Education     []string `json:"education"`
	Certification []string `json:"certification"`
	Training      []string `json:"training"`
	Experience    []string `json:"experience"`
}

// NewSectionModel returns a model with every section initialised to an empty slice
func NewSectionModel() *SectionModel {
	return &SectionModel{
		Summary:       []string{},
		Skills:        []string{},
		Education:     []string{},
		Certification: []string{},
		Training:      []string{},
		Experience:    []string{},
	}
}

// slot returns a pointer to the slice backing id, or nil for unknown ids
func (m *SectionModel) slot(id SectionID) *[]string {
	switch id {
	case SectionSummary:
		return &m.Summary
	case SectionSkills:
		return &m.Skills
	case SectionEducation:
		return &m.Education
	case SectionCertification:
		return &m.Certification
	case SectionTraining:
		return &m.Training
	case SectionExperience:
		return &m.Experience
	default:
		return nil
	}
}

// Lines returns the lines recorded for id (nil for unknown ids)
func (m *SectionModel) Lines(id SectionID) []string {
	if m == nil {
		return nil
	}
	if s := m.slot(id); s != nil {
		return *s
	}
	return nil
}

// Add appends line to section id, preserving insertion order
func (m *SectionModel) Add(id SectionID, line string) error {
	s := m.slot(id)
	if s == nil {
		return fmt.Errorf("unknown section %q", id)
	}
	*s = append(*s, line)
	return nil
}

// IsEmpty reports whether every section has no lines
func (m *SectionModel) IsEmpty() bool {
	if m == nil {
		return true
	}
	for _, id := range AllSections {
		if len(m.Lines(id)) > 0 {
			return false
		}
	}
	return true
}

// Counts returns the number of lines per section
func (m *SectionModel) Counts() map[SectionID]int {
	counts := make(map[SectionID]int, len(AllSections))
	for _, id := range AllSections {
		counts[id] = len(m.Lines(id))
	}
	return counts
}

// TotalLines returns the number of lines across all sections
func (m *SectionModel) TotalLines() int {
	total := 0
	for _, id := range AllSections {
		total += len(m.Lines(id))
	}
	return total
}
