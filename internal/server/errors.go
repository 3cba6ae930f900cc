package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ErrorResponse is the JSON body of every non-2xx API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

// ErrBadRequest indicates a malformed request
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the status code and error kind for a pipeline or request error
func HTTPStatus(err error) (int, string) {
	var (
		emptyExtraction *types.EmptyExtractionError
		emptySections   *types.EmptySectionsError
		malformed       *types.MalformedExperienceBlockError
		unsupported     *extract.UnsupportedFormatError
		tooLarge        *extract.TooLargeError
		extractErr      *extract.ExtractError
		ruleErr         *parsing.RuleError
		modeErr         *experience.ModeError
		badRequest      *ErrBadRequest
		writeErr        *export.WriteError
	)

	switch {
	case errors.As(err, &emptyExtraction):
		return http.StatusUnprocessableEntity, "empty_extraction"
	case errors.As(err, &emptySections):
		return http.StatusUnprocessableEntity, "empty_sections"
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity, "malformed_experience_block"
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType, "unsupported_format"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity, "extract_failed"
	case errors.As(err, &ruleErr), errors.As(err, &modeErr), errors.As(err, &badRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError, "export_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// errorBody builds the response body for err, naming the failed stage when known
func errorBody(err error) (int, ErrorResponse) {
	status, kind := HTTPStatus(err)
	body := ErrorResponse{Error: kind, Message: err.Error()}

	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		body.Stage = string(stageErr.Stage)
		body.Message = stageErr.Cause.Error()
	}
	return status, body
}
