package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
)

// multipartOverhead is allowed on top of extract.MaxFileSize for form boundaries and headers
const multipartOverhead = 1 << 20

// ParseResponse is the body of POST /v1/parse
type ParseResponse struct {
	*pipeline.Result
	Document *types.FormattedDocument `json:"document"`
}

// handleFormats lists accepted input and output formats
func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"input":  extract.NewRegistry().Formats(),
		"output": export.Formats(),
	})
}

// handleFormat converts an uploaded résumé and returns the formatted file as an attachment
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	writer, err := export.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.failure(w, &ErrBadRequest{Message: err.Error()})
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	filename, data, err := s.readUpload(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	res, err := pipeline.FormatBytes(r.Context(), filename, data, opts)
	if err == nil {
		var buf bytes.Buffer
		if werr := writer.Write(&buf, res.Document, opts.Style); werr != nil {
			err = &pipeline.StageError{Stage: pipeline.StageExport, Cause: werr}
		} else {
			res.FileName = pipeline.FileName(res.Candidate, writer.Extension())
			s.record(r.Context(), filename, writer.Extension(), res, nil)
			s.attachment(w, res, writer.ContentType(), buf.Bytes())
			return
		}
	}

	s.record(r.Context(), filename, writer.Extension(), res, err)
	s.failure(w, err)
}

// handleParse returns the structured parse of a résumé without serializing it.
// It accepts a multipart "file" upload or a text/plain body.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	var res *pipeline.Result
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		filename, data, rerr := s.readUpload(w, r)
		if rerr != nil {
			s.failure(w, rerr)
			return
		}
		res, err = pipeline.FormatBytes(r.Context(), filename, data, opts)
	} else {
		text, rerr := readBody(w, r)
		if rerr != nil {
			s.failure(w, rerr)
			return
		}
		opts.Source = "request"
		opts.Format = "txt"
		res, err = pipeline.Format(r.Context(), text, opts)
	}

	if err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("X-Run-ID", res.RunID.String())
	s.jsonResponse(w, http.StatusOK, ParseResponse{Result: res, Document: res.Document})
}

// options builds pipeline options from the server defaults and the
// "strict" and "subtitles" query parameters
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Style:     s.style,
		Strict:    s.strict,
		Subtitles: s.subtitles,
		Logger:    &s.logger,
	}

	q := r.URL.Query()
	if v := q.Get("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &ErrBadRequest{Message: fmt.Sprintf("invalid strict value %q", v)}
		}
		opts.Strict = strict
	}
	if v := q.Get("subtitles"); v != "" {
		mode, err := experience.ParseSubtitleMode(v)
		if err != nil {
			return opts, err
		}
		opts.Subtitles = mode
	}
	return opts, nil
}

// readUpload returns the name and content of the multipart "file" field
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, extract.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, &extract.TooLargeError{Name: "upload", Size: maxErr.Limit, Limit: extract.MaxFileSize}
		}
		return "", nil, &ErrBadRequest{Message: "expected multipart/form-data with a \"file\" field"}
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &ErrBadRequest{Message: "missing \"file\" field"}
	}
	defer func() { _ = file.Close() }()

	if header.Size > extract.MaxFileSize {
		return "", nil, &extract.TooLargeError{Name: header.Filename, Size: header.Size, Limit: extract.MaxFileSize}
	}
	data, err := io.ReadAll(io.LimitReader(file, extract.MaxFileSize+1))
	if err != nil {
		return "", nil, &ErrBadRequest{Message: fmt.Sprintf("failed to read upload: %v", err)}
	}
	if int64(len(data)) > extract.MaxFileSize {
		return "", nil, &extract.TooLargeError{Name: header.Filename, Size: int64(len(data)), Limit: extract.MaxFileSize}
	}
	return header.Filename, data, nil
}

// readBody reads a plain-text request body
func readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, extract.MaxFileSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", &extract.TooLargeError{Name: "request body", Size: maxErr.Limit, Limit: extract.MaxFileSize}
		}
		return "", &ErrBadRequest{Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	return string(data), nil
}

// attachment writes a formatted file download
func (s *Server) attachment(w http.ResponseWriter, res *pipeline.Result, contentType string, data []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName})
	if disposition == "" {
		disposition = `attachment; filename="resume"`
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Run-ID", res.RunID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write attachment")
	}
}

// record saves a run to history; storage failures are logged, never returned to the caller
func (s *Server) record(ctx context.Context, source, format string, res *pipeline.Result, runErr error) {
	if s.store == nil {
		return
	}
	run := pipeline.NewRecord(source, format, res, runErr)
	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID.String()).Msg("failed to record run")
	}
}
