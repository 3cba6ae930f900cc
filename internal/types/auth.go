package types

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// TokenRequest exchanges an API client's key for a bearer token.
// Client ids cannot contain ',' or '=' because API_KEYS uses them as separators.
type TokenRequest struct {
	ClientID string `json:"client_id" validate:"required,min=2,max=64,excludesall=0x2C="`
	APIKey   string `json:"api_key" validate:"required,min=8"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ClientID  string    `json:"client_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// structValidator caches struct metadata, so one instance is shared
var structValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

func (r *TokenRequest) Validate() error {
	return structValidator().Struct(r)
}
