package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

// AuthHandler exchanges API keys for bearer tokens.
type AuthHandler struct {
	keys       *config.APIKeyConfig
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(keys *config.APIKeyConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		keys:       keys,
		jwtService: jwtService,
	}
}

// Token handles POST /v1/auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if !h.keys.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "auth_disabled", Message: "no API clients are configured"})
		return
	}

	var req types.TokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: extractValidationErrors(err)})
		return
	}

	if !h.keys.Verify(req.ClientID, req.APIKey) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "invalid client ID or API key"})
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.ClientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, types.TokenResponse{
		Token:     token,
		ClientID:  req.ClientID,
		ExpiresAt: expiresAt.UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// extractValidationErrors extracts human-readable error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	var messages []string
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(messages, "; ")
}
