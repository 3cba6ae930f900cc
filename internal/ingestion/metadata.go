package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Metadata describes one ingested résumé source
type Metadata struct {
	Source          string `json:"source,omitempty"`        // File name or "stdin"
	Format          string `json:"format,omitempty"`        // Extractor format key (pdf, docx, ...)
	Timestamp       string `json:"timestamp"`               // RFC3339 format
	Hash            string `json:"hash"`                    // SHA256 hex digest of the normalized text
	RawChars        int    `json:"raw_chars"`               // Runes in the extracted text
	NormalizedLines int    `json:"normalized_lines"`        // Non-empty lines after normalization
	RemovedLines    int    `json:"removed_lines,omitempty"` // Raw lines dropped as blank or noise
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(source, format, raw, normalized string) *Metadata {
	rawLines := 0
	if raw != "" {
		rawLines = strings.Count(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") + 1
	}
	lines := len(Lines(normalized))

	removed := rawLines - lines
	if removed < 0 {
		removed = 0
	}

	return &Metadata{
		Source:          source,
		Format:          format,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Hash:            computeHash(normalized),
		RawChars:        len([]rune(raw)),
		NormalizedLines: lines,
		RemovedLines:    removed,
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
