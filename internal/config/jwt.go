package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTIssuer is the iss claim stamped on API tokens
const DefaultJWTIssuer = "resume-formatter"

const (
	defaultJWTExpirationHours = 24
	minJWTSecretLength        = 16
)

// JWTConfig configures API token issuing and checking
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig reads JWT_SECRET, JWT_EXPIRATION_HOURS (default 24) and JWT_ISSUER.
// fallbackSecret, usually the config file's jwt_secret, applies when JWT_SECRET is unset.
func NewJWTConfig(fallbackSecret string) (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          firstNonEmpty(os.Getenv("JWT_SECRET"), fallbackSecret),
		ExpirationHours: defaultJWTExpirationHours,
		Issuer:          firstNonEmpty(os.Getenv("JWT_ISSUER"), DefaultJWTIssuer),
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", raw, err)
		}
		cfg.ExpirationHours = hours
	}

	switch {
	case len(cfg.Secret) < minJWTSecretLength:
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	case cfg.ExpirationHours < 1:
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got %d", cfg.ExpirationHours)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
