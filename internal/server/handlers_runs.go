package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-formatter/internal/db"
)

// handleListRuns lists recorded runs, newest first.
// Query parameters: limit, status (succeeded|failed), candidate (substring match).
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	q := r.URL.Query()
	filters := db.RunFilters{
		Status:    q.Get("status"),
		Candidate: q.Get("candidate"),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			s.errorResponse(w, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		filters.Limit = limit
	}
	switch filters.Status {
	case "", db.StatusSucceeded, db.StatusFailed:
	default:
		s.errorResponse(w, http.StatusBadRequest, "bad_request", "status must be succeeded or failed")
		return
	}

	runs, err := s.store.ListRuns(r.Context(), filters)
	if err != nil {
		s.failure(w, err)
		return
	}
	if runs == nil {
		runs = []db.FormatRun{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleGetRun returns a single recorded run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, ok := s.runID(w, r)
	if !ok {
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "not_found", "run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleDeleteRun removes a recorded run
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, ok := s.runID(w, r)
	if !ok {
		return
	}

	existing, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "not_found", "run not found")
		return
	}

	if err := s.store.DeleteRun(r.Context(), id); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history_disabled", "run history is not configured")
		return false
	}
	return true
}

func (s *Server) runID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "bad_request", "invalid run ID")
		return uuid.Nil, false
	}
	return id, true
}
