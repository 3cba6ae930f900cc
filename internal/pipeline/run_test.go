package pipeline

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
)

const janeDoe = `Jane Doe
Summary
Experienced engineer.
Technical Skills
Python, Go
Experience
Senior Engineer, Acme Corp Jan 2020 - Present
Built distributed systems.
Led a team of five.
`

func TestFormat_JaneDoe(t *testing.T) {
	res, err := Format(context.Background(), janeDoe, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", res.Candidate.FullName)
	assert.Equal(t, "Jane", res.Candidate.FirstName)
	assert.Equal(t, "Doe", res.Candidate.LastName)
	assert.Equal(t, []string{"Experienced engineer."}, res.Sections.Summary)
	assert.Equal(t, []string{"Python, Go"}, res.Sections.Skills)

	require.Len(t, res.Entries, 1)
	entry := res.Entries[0]
	assert.Equal(t, "Senior Engineer, Acme Corp", entry.Header)
	assert.Equal(t, "Jan 2020 - Present", entry.DurationText())
	assert.Empty(t, entry.Subtitle)
	assert.Equal(t, []string{"Built distributed systems.", "Led a team of five."}, entry.Bullets)

	require.NotNil(t, res.Document)
	assert.Equal(t, "Jane Doe", res.Document.Title)
	assert.Equal(t, []string{"Summary", "Technical Skills", "Professional Experience"}, res.Document.Headings())
	assert.Equal(t, 1, res.Document.CountKind(types.NodeTabAlignedLine))
	assert.Equal(t, "Jane Doe.docx", res.FileName)

	require.NotNil(t, res.Metadata)
	assert.Equal(t, 9, res.Metadata.NormalizedLines)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	for _, stage := range []Stage{StageNormalize, StageClassify, StageSegment, StageRender} {
		assert.Contains(t, res.Durations, stage)
	}
}

func TestFormat_EmptyInputFailsBeforeClassify(t *testing.T) {
	var stages []Stage
	opts := Options{OnProgress: func(e ProgressEvent) { stages = append(stages, e.Stage) }}

	for _, raw := range []string{"", "   \n\t\n", "•\n- \nhttps://example.com"} {
		_, err := Format(context.Background(), raw, opts)
		require.Error(t, err)

		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		assert.Equal(t, StageNormalize, stageErr.Stage)

		var empty *types.EmptyExtractionError
		assert.True(t, errors.As(err, &empty))
	}
	assert.Empty(t, stages, "no stage completes on empty input")
}

func TestFormat_NoHeadings(t *testing.T) {
	_, err := Format(context.Background(), "Jane Doe\nlikes hiking\n", Options{})
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageClassify, stageErr.Stage)

	var empty *types.EmptySectionsError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "Jane Doe", empty.CandidateName)
}

func TestFormat_StrictSegmentError(t *testing.T) {
	raw := "Jane Doe\nExperience\nEngineer\nBuilt things.\nJan 2020 - Present\n"

	_, err := Format(context.Background(), raw, Options{})
	require.NoError(t, err)

	_, err = Format(context.Background(), raw, Options{Strict: true})
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageSegment, stageErr.Stage)

	var malformed *types.MalformedExperienceBlockError
	assert.True(t, errors.As(err, &malformed))
}

func TestFormat_InvalidRules(t *testing.T) {
	_, err := Format(context.Background(), janeDoe, Options{Rules: []parsing.HeadingRule{}})
	require.Error(t, err)

	var ruleErr *parsing.RuleError
	assert.True(t, errors.As(err, &ruleErr))
}

func TestFormat_SubtitleMode(t *testing.T) {
	raw := "Jane Doe\nExperience\nEngineer Jan 2020 - Present\nAcme Corp\nShipped it\n"

	res, err := Format(context.Background(), raw, Options{Subtitles: experience.SubtitleNever})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Empty(t, res.Entries[0].Subtitle)
	assert.Equal(t, []string{"Acme Corp", "Shipped it"}, res.Entries[0].Bullets)

	res, err = Format(context.Background(), raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", res.Entries[0].Subtitle)
	assert.Equal(t, []string{"Shipped it"}, res.Entries[0].Bullets)
}

func TestFormat_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Format(ctx, janeDoe, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormat_ProgressAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	var events []ProgressEvent
	res, err := Format(context.Background(), janeDoe, Options{
		Logger:     &logger,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, StageNormalize, events[0].Stage)
	assert.Equal(t, StageRender, events[3].Stage)
	for _, e := range events {
		assert.Equal(t, res.RunID.String(), e.RunID)
	}

	out := buf.String()
	assert.Contains(t, out, res.RunID.String())
	assert.Contains(t, out, `"stage":"segment"`)
}

func TestFormatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte(janeDoe), 0o644))

	res, err := FormatFile(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "cv.txt", res.Metadata.Source)
	assert.Equal(t, "txt", res.Metadata.Format)
	assert.Contains(t, res.Durations, StageExtract)

	odt := filepath.Join(dir, "cv.odt")
	require.NoError(t, os.WriteFile(odt, []byte("PK"), 0o644))
	_, err = FormatFile(context.Background(), odt, Options{})
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageExtract, stageErr.Stage)

	var unsupported *extract.UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestFormatBytes(t *testing.T) {
	res, err := FormatBytes(context.Background(), "upload.md", []byte(janeDoe), Options{})
	require.NoError(t, err)
	assert.Equal(t, "upload.md", res.Metadata.Source)
	assert.Len(t, res.Entries, 1)
}

func TestFormatSource_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(janeDoe))
	}))
	defer server.Close()

	res, err := FormatSource(context.Background(), server.URL+"/jane", Options{})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/jane", res.Metadata.Source)
	assert.Equal(t, "txt", res.Metadata.Format)
	assert.Equal(t, "Jane Doe", res.Candidate.FullName)

	_, err = FormatSource(context.Background(), server.URL+"/missing", Options{})
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageExtract, stageErr.Stage)
	assert.Contains(t, err.Error(), "404")
}

func TestExport(t *testing.T) {
	res, err := Format(context.Background(), strings.ToUpper(janeDoe), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", res.Document.Title)

	w, err := export.ForFormat("txt")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := Export(res, dir, w, config.DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane Doe.txt"), path)
	assert.Equal(t, "Jane Doe.txt", res.FileName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PROFESSIONAL EXPERIENCE")
}

func TestExport_WriteFailure(t *testing.T) {
	res, err := Format(context.Background(), janeDoe, Options{})
	require.NoError(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	w, err := export.ForFormat("json")
	require.NoError(t, err)

	_, err = Export(res, filepath.Join(blocker, "out"), w, config.Style{})
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageExport, stageErr.Stage)
}
