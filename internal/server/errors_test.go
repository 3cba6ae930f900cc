package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"empty extraction", &types.EmptyExtractionError{}, http.StatusUnprocessableEntity, "empty_extraction"},
		{"empty sections", &types.EmptySectionsError{}, http.StatusUnprocessableEntity, "empty_sections"},
		{"malformed block", &types.MalformedExperienceBlockError{}, http.StatusUnprocessableEntity, "malformed_experience_block"},
		{"unsupported", &extract.UnsupportedFormatError{Format: "rtf"}, http.StatusUnsupportedMediaType, "unsupported_format"},
		{"too large", &extract.TooLargeError{}, http.StatusRequestEntityTooLarge, "too_large"},
		{"corrupt file", &extract.ExtractError{Name: "cv.pdf"}, http.StatusUnprocessableEntity, "extract_failed"},
		{"bad rule", &parsing.RuleError{}, http.StatusBadRequest, "bad_request"},
		{"bad mode", &experience.ModeError{Value: "x"}, http.StatusBadRequest, "bad_request"},
		{"bad request", &ErrBadRequest{Message: "no"}, http.StatusBadRequest, "bad_request"},
		{"write failure", &export.WriteError{Message: "disk"}, http.StatusInternalServerError, "export_failed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"wrapped", fmt.Errorf("outer: %w", &types.EmptySectionsError{}), http.StatusUnprocessableEntity, "empty_sections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := HTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestErrorBody_NamesStage(t *testing.T) {
	err := &pipeline.StageError{Stage: pipeline.StageSegment, Cause: &types.MalformedExperienceBlockError{Index: 2, Line: "Jan 2020", Message: "no header"}}

	status, body := errorBody(err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "segment", body.Stage)
	assert.Equal(t, "malformed_experience_block", body.Error)
	assert.NotContains(t, body.Message, "segment failed")
}
