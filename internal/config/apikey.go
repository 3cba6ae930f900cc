package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyConfig holds the API clients allowed to exchange a key for a token.
// Keys are stored as bcrypt hashes, never in clear text.
type APIKeyConfig struct {
	BcryptCost int
	Pepper     string            // optional global secret mixed into every key
	Clients    map[string]string // client id -> bcrypt hash
}

// NewAPIKeyConfig creates the configuration from environment variables.
// It reads API_KEYS ("client=hash,client2=hash2"), BCRYPT_COST (default: 12)
// and optionally API_KEY_PEPPER.
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	clients, err := parseClients(os.Getenv("API_KEYS"))
	if err != nil {
		return nil, err
	}

	config := &APIKeyConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("API_KEY_PEPPER"),
		Clients:    clients,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func parseClients(raw string) (map[string]string, error) {
	clients := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, hash, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" || strings.TrimSpace(hash) == "" {
			return nil, fmt.Errorf("invalid API_KEYS entry %q (want client=hash)", pair)
		}
		clients[strings.TrimSpace(id)] = strings.TrimSpace(hash)
	}
	return clients, nil
}

// normalize validates the configuration.
func (c *APIKeyConfig) normalize() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	return nil
}

// HashKey hashes an API key using bcrypt (with optional pepper).
func (c *APIKeyConfig) HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether key belongs to clientID
func (c *APIKeyConfig) Verify(clientID, key string) bool {
	hash, ok := c.Clients[clientID]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key+c.Pepper)) == nil
}

// Enabled reports whether any client is configured
func (c *APIKeyConfig) Enabled() bool {
	return c != nil && len(c.Clients) > 0
}
