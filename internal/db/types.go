package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// DefaultListLimit caps ListRuns when no limit is given
const DefaultListLimit = 50

// FormatRun is one recorded formatting run
type FormatRun struct {
	ID            uuid.UUID       `json:"id"`
	SourceName    string          `json:"source_name"`
	CandidateName string          `json:"candidate_name,omitempty"`
	Format        string          `json:"format,omitempty"`
	Status        string          `json:"status"`
	ErrorStage    string          `json:"error_stage,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	SectionCounts map[string]int  `json:"section_counts"`
	EntryCount    int             `json:"entry_count"`
	Document      json.RawMessage `json:"document,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RunFilters holds optional filters for listing runs
type RunFilters struct {
	Status    string
	Candidate string // case-insensitive substring
	Limit     int
}

func (f RunFilters) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// prepare fills defaults before a run is written
func (r *FormatRun) prepare() error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.SectionCounts == nil {
		r.SectionCounts = map[string]int{}
	}
	if r.Status != StatusSucceeded && r.Status != StatusFailed {
		return &StoreError{Message: "invalid run status " + r.Status}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
