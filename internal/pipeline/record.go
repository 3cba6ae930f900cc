package pipeline

import (
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-formatter/internal/db"
)

// NewRecord builds the run-history record for a finished run. res may be nil
// when err is set.
func NewRecord(source, format string, res *Result, err error) *db.FormatRun {
	run := &db.FormatRun{
		SourceName: source,
		Format:     format,
		Status:     db.StatusSucceeded,
	}

	if res != nil {
		run.ID = res.RunID
		run.CandidateName = res.Candidate.FullName
		run.EntryCount = len(res.Entries)
		if res.Sections != nil {
			run.SectionCounts = make(map[string]int)
			for id, n := range res.Sections.Counts() {
				run.SectionCounts[string(id)] = n
			}
		}
		if res.Document != nil {
			if doc, mErr := json.Marshal(res.Document); mErr == nil {
				run.Document = doc
			}
		}
	}

	if err != nil {
		run.Status = db.StatusFailed
		run.ErrorMessage = err.Error()
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			run.ErrorStage = string(stageErr.Stage)
			run.ErrorMessage = stageErr.Cause.Error()
		}
	}
	return run
}
