package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"single token", "Madonna", "Madonna", ""},
		{"three tokens", "Mary Ann Smith", "Mary", "Ann Smith"},
		{"extra whitespace", "  Jane   Doe  ", "Jane", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCandidate(tt.input)
			assert.Equal(t, tt.wantFirst, c.FirstName)
			assert.Equal(t, tt.wantLast, c.LastName)
		})
	}

	assert.Equal(t, "Jane   Doe", NewCandidate("  Jane   Doe  ").FullName, "full name is kept verbatim apart from trimming")
}

func TestNewSectionModel_AllKeysPresent(t *testing.T) {
	m := NewSectionModel()
	for _, id := range AllSections {
		assert.NotNil(t, m.Lines(id), "section %s should be initialised", id)
		assert.Empty(t, m.Lines(id))
	}
	assert.True(t, m.IsEmpty())

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(AllSections))
	for _, id := range AllSections {
		assert.Contains(t, raw, string(id))
		assert.NotNil(t, raw[string(id)], "empty sections marshal as [] not null")
	}
}

func TestSectionModel_AddPreservesOrder(t *testing.T) {
	m := NewSectionModel()
	require.NoError(t, m.Add(SectionSkills, "Go"))
	require.NoError(t, m.Add(SectionSkills, "Python"))
	require.NoError(t, m.Add(SectionTraining, "AWS bootcamp"))

	assert.Equal(t, []string{"Go", "Python"}, m.Skills)
	assert.Equal(t, []string{"AWS bootcamp"}, m.Lines(SectionTraining))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, 3, m.TotalLines())
	assert.Equal(t, 2, m.Counts()[SectionSkills])
}

func TestSectionModel_AddUnknownSection(t *testing.T) {
	m := NewSectionModel()
	err := m.Add(SectionID("hobbies"), "chess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hobbies")
	assert.True(t, m.IsEmpty())
}

func TestSectionID_Valid(t *testing.T) {
	for _, id := range AllSections {
		assert.True(t, id.Valid())
	}
	assert.False(t, SectionID("projects").Valid())
}

func TestNilSectionModel(t *testing.T) {
	var m *SectionModel
	assert.True(t, m.IsEmpty())
	assert.Nil(t, m.Lines(SectionSummary))
}
