package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	raw := "Jane Doe\n\n• https://jane.dev\nSummary\n"
	normalized := Normalize(raw)

	m := NewMetadata("cv.txt", "txt", raw, normalized)

	assert.Equal(t, "cv.txt", m.Source)
	assert.Equal(t, "txt", m.Format)
	assert.Equal(t, 2, m.NormalizedLines)
	assert.Equal(t, 3, m.RemovedLines)
	assert.Equal(t, len([]rune(raw)), m.RawChars)
	assert.Len(t, m.Hash, 64)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestNewMetadata_HashIsOfNormalizedText(t *testing.T) {
	a := NewMetadata("a", "txt", "Jane Doe\nSummary", "Jane Doe\nSummary")
	b := NewMetadata("b", "txt", "  Jane Doe \r\n\r\nSummary", "Jane Doe\nSummary")
	assert.Equal(t, a.Hash, b.Hash)

	c := NewMetadata("c", "txt", "John Doe", "John Doe")
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestNewMetadata_Empty(t *testing.T) {
	m := NewMetadata("", "", "", "")
	assert.Zero(t, m.NormalizedLines)
	assert.Zero(t, m.RemovedLines)
	assert.Zero(t, m.RawChars)
}

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Source:          "cv.pdf",
		Format:          "pdf",
		Timestamp:       "2024-01-01T00:00:00Z",
		Hash:            "abcd1234",
		NormalizedLines: 12,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, jsonBytes)

	var unmarshaled Metadata
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, *metadata, unmarshaled)
	assert.NotContains(t, string(jsonBytes), "removed_lines")
}
