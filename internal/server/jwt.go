package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/server/middleware"
)

// Claims are the claims of an API client token
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// GetClientID implements middleware.ClientIDGetter
func (c *Claims) GetClientID() string {
	return c.ClientID
}

// TokenError explains why a bearer token was rejected
type TokenError struct {
	Reason string
	Cause  error
}

func (e *TokenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *TokenError) Unwrap() error {
	return e.Cause
}

// JWTService issues and checks HS256 tokens for API clients
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

// NewJWTService builds a service from cfg
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
		issuer: cfg.Issuer,
		parser: jwt.NewParser(opts...),
	}
}

// GenerateToken signs a token for clientID and returns it with its expiry
func (s *JWTService) GenerateToken(clientID string) (string, time.Time, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(s.ttl)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns its claims. Any failure is a *TokenError.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, &TokenError{Reason: "token is empty"}
	}

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, &TokenError{Reason: rejectReason(err), Cause: err}
	}
	if claims.ClientID == "" {
		return nil, &TokenError{Reason: "token has no client_id claim"}
	}
	return claims, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "invalid token signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	}
	return "failed to parse token"
}

// tokenValidatorFunc adapts a function to middleware.TokenValidator
type tokenValidatorFunc func(string) (middleware.ClientIDGetter, error)

func (f tokenValidatorFunc) ValidateToken(tokenString string) (middleware.ClientIDGetter, error) {
	return f(tokenString)
}

// AsTokenValidator exposes the service to the auth middleware
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return tokenValidatorFunc(func(tokenString string) (middleware.ClientIDGetter, error) {
		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}
