package types

import "fmt"

// EmptyExtractionError means the decoded text was empty or all whitespace
type EmptyExtractionError struct {
	Source string
}

func (e *EmptyExtractionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("empty extraction: %s yielded no usable text", e.Source)
	}
	return "empty extraction: document yielded no usable text"
}

// EmptySectionsError means no section heading was recognised, or every recognised section was empty
type EmptySectionsError struct {
	CandidateName string
	HeadingsSeen  int
}

func (e *EmptySectionsError) Error() string {
	if e.HeadingsSeen == 0 {
		return "empty sections: no recognizable section headings found"
	}
	return fmt.Sprintf("empty sections: %d heading(s) found but every section is empty", e.HeadingsSeen)
}

// MalformedExperienceBlockError means a duration token could not be isolated from its header
type MalformedExperienceBlockError struct {
	Index   int
	Line    string
	Message string
}

func (e *MalformedExperienceBlockError) Error() string {
	return fmt.Sprintf("malformed experience block at line %d (%q): %s", e.Index, e.Line, e.Message)
}
