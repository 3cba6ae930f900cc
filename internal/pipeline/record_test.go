package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/db"
)

func TestNewRecord_Success(t *testing.T) {
	res, err := Format(context.Background(), janeDoe, Options{})
	require.NoError(t, err)

	run := NewRecord("jane.txt", "docx", res, nil)
	assert.Equal(t, res.RunID, run.ID)
	assert.Equal(t, db.StatusSucceeded, run.Status)
	assert.Equal(t, "Jane Doe", run.CandidateName)
	assert.Equal(t, 1, run.EntryCount)
	assert.Equal(t, 1, run.SectionCounts["summary"])
	assert.Equal(t, 3, run.SectionCounts["experience"])
	assert.Contains(t, string(run.Document), `"title":"Jane Doe"`)
}

func TestNewRecord_StageFailure(t *testing.T) {
	_, err := Format(context.Background(), "Jane Doe\nhello\n", Options{})
	require.Error(t, err)

	run := NewRecord("bad.txt", "pdf", nil, err)
	assert.Equal(t, uuid.Nil, run.ID, "the store assigns ids to failed runs")
	assert.Equal(t, db.StatusFailed, run.Status)
	assert.Equal(t, "classify", run.ErrorStage)
	assert.Contains(t, run.ErrorMessage, "no recognizable section headings")
	assert.Nil(t, run.Document)
}

func TestNewRecord_PlainError(t *testing.T) {
	run := NewRecord("x.txt", "txt", nil, errors.New("disk full"))
	assert.Equal(t, db.StatusFailed, run.Status)
	assert.Empty(t, run.ErrorStage)
	assert.Equal(t, "disk full", run.ErrorMessage)
}
