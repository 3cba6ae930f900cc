package schemas

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
	schemafiles "github.com/jonathan/resume-formatter/schemas"
)

const janeDoe = "Jane Doe\nSummary\nExperienced engineer.\nTechnical Skills\nPython, Go\n" +
	"Experience\nSenior Engineer, Acme Corp Jan 2020 - Present\nBuilt distributed systems.\nLed a team of five.\n"

func TestValidateJSON_ValidJSON(t *testing.T) {
	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", "valid_json.json"))
	assert.NoError(t, err)
}

func TestValidateJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"missing field", "invalid_json.json"},
		{"wrong type", "type_mismatch.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", tt.file))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_NotFound(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_json.json"))
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateFile(t *testing.T) {
	res, err := pipeline.Format(context.Background(), janeDoe, pipeline.Options{})
	require.NoError(t, err)
	data, err := json.Marshal(res.Document)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Jane Doe.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	assert.NoError(t, ValidateFile(schemafiles.FormattedDocument, path))

	err = ValidateFile(schemafiles.SectionModel, path)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), schemafiles.SectionModel)

	assert.Error(t, ValidateFile(schemafiles.FormattedDocument, filepath.Join(t.TempDir(), "missing.json")))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(schemafiles.SectionModel, []byte("{not json"))
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0o644))

	assert.Error(t, ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformed))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"person": {"name": "Jane"}}`))

	err := ValidateJSONString(schema, `{"person": {}}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: schemafiles.SectionModel,
		Errors: []FieldError{
			{Field: "summary", Message: "is required"},
			{Field: "skills", Message: "must be an array"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, schemafiles.SectionModel)
	assert.Contains(t, msg, "1. summary")
	assert.Contains(t, msg, "2. skills")
}

func TestValidate_PipelineOutputs(t *testing.T) {
	res, err := pipeline.Format(context.Background(), janeDoe, pipeline.Options{})
	require.NoError(t, err)

	assert.NoError(t, ValidateValue(schemafiles.FormattedDocument, res.Document))
	assert.NoError(t, ValidateValue(schemafiles.SectionModel, res.Sections))
	assert.NoError(t, ValidateValue(schemafiles.ParseResult, res))
}

func TestValidate_EmptySectionModel(t *testing.T) {
	assert.NoError(t, ValidateValue(schemafiles.SectionModel, types.NewSectionModel()))

	// A nil slice marshals as null and breaks the "all keys are arrays" contract
	err := ValidateValue(schemafiles.SectionModel, &types.SectionModel{})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", `{"title": "x", "nodes": [{"kind": "table"}]}`},
		{"bullet without glyph", `{"title": "x", "nodes": [{"kind": "bullet", "text": "a"}]}`},
		{"tab line without right", `{"title": "x", "nodes": [{"kind": "tab_aligned_line", "text": "a"}]}`},
		{"missing nodes", `{"title": "x"}`},
		{"negative indent", `{"title": "x", "nodes": [{"kind": "bullet", "glyph": "-", "separator": " ", "indent": -1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schemafiles.FormattedDocument, []byte(tt.doc))
			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_SectionLinesAreTrimmed(t *testing.T) {
	m := types.NewSectionModel()
	m.Summary = []string{" padded "}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.Error(t, Validate(schemafiles.SectionModel, data))
}
