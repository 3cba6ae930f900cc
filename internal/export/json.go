package export

import (
	"encoding/json"
	"io"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

// JSONWriter emits the document tree itself; it matches schemas/formatted_document.schema.json
type JSONWriter struct{}

func (j *JSONWriter) Extension() string   { return "json" }
func (j *JSONWriter) ContentType() string { return "application/json" }

func (j *JSONWriter) Write(w io.Writer, doc *types.FormattedDocument, _ config.Style) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return &WriteError{Format: "json", Message: "failed to encode document", Cause: err}
	}
	return nil
}
