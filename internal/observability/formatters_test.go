package observability

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
)

func sampleResult() *pipeline.Result {
	sections := types.NewSectionModel()
	_ = sections.Add(types.SectionSummary, "Experienced engineer.")
	_ = sections.Add(types.SectionSkills, "Python, Go")

	return &pipeline.Result{
		RunID:     uuid.New(),
		Candidate: types.NewCandidate("Jane Doe"),
		Sections:  sections,
		Entries: []types.ExperienceEntry{{
			Header:   "Senior Engineer, Acme Corp",
			Duration: &types.DateRange{Text: "Jan 2020 - Present", Start: 27},
			Bullets:  []string{"Built distributed systems."},
		}},
		Document:  &types.FormattedDocument{Title: "Jane Doe", Nodes: []types.Node{types.CenteredTitle("Jane Doe")}},
		FileName:  "Jane Doe.docx",
		Discarded: []string{"jane@example.com"},
		Durations: map[pipeline.Stage]time.Duration{pipeline.StageClassify: time.Millisecond},
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "FORMATTED")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Jane Doe.docx")
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "CLASSIFIED SECTIONS")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "Jan 2020 - Present")
	assert.NotContains(t, output, "\x1b[", "no colour codes when writing to a buffer")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(nil)
	p.PrintSections(nil, nil)
	p.PrintExperience(nil)
	p.PrintError("x", nil)
	p.PrintBatch(nil)

	assert.Empty(t, buf.String())
}

func TestPrintExperience_Truncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var entries []types.ExperienceEntry
	for i := 0; i < maxItemsToShow+2; i++ {
		entries = append(entries, types.ExperienceEntry{Header: fmt.Sprintf("Role %d", i)})
	}
	p.PrintExperience(entries)

	assert.Contains(t, buf.String(), "... and 2 more entries")
	assert.NotContains(t, buf.String(), "Role 6")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := &pipeline.StageError{Stage: pipeline.StageClassify, Cause: &types.EmptySectionsError{}}
	p.PrintError("cv.pdf", err)

	output := buf.String()
	assert.Contains(t, output, "FORMAT FAILED")
	assert.Contains(t, output, "cv.pdf")
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "no recognizable section headings")
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatch([]pipeline.FileResult{
		{Path: "a.pdf", Result: sampleResult()},
		{Path: "b.pdf", Err: errors.New("boom")},
	})

	output := buf.String()
	assert.Contains(t, output, "✓ a.pdf")
	assert.Contains(t, output, "✗ b.pdf")
	assert.Contains(t, output, "1 formatted, 1 failed")
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRuns(nil)
	assert.Contains(t, buf.String(), "no runs recorded")

	buf.Reset()
	p.PrintRuns([]db.FormatRun{
		{ID: uuid.New(), SourceName: "a.pdf", CandidateName: "Jane Doe", Status: db.StatusSucceeded, CreatedAt: time.Now()},
		{ID: uuid.New(), SourceName: "b.pdf", Status: db.StatusFailed, ErrorStage: "normalize", CreatedAt: time.Now()},
	})

	output := buf.String()
	assert.Contains(t, output, "RUN HISTORY (2)")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "failed at normalize")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Zoë Ze...", truncate("Zoë Zeller-Smith", 9))
}
