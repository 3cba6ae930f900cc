package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadError represents an error reading or decoding a configuration file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// decodeFile reads path and decodes it into v, choosing the codec by extension
// (.json, .yaml/.yml, .toml). Fields missing from the file keep their current value.
func decodeFile(path string, v any) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to read config file", Cause: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return &LoadError{Path: path, Message: "failed to parse config YAML", Cause: err}
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return &LoadError{Path: path, Message: "failed to parse config TOML", Cause: err}
		}
	case ".json", "":
		if err := json.Unmarshal(data, v); err != nil {
			return &LoadError{Path: path, Message: "failed to parse config JSON", Cause: err}
		}
	default:
		return &LoadError{Path: path, Message: fmt.Sprintf("unsupported config extension %q in", ext)}
	}

	return nil
}
