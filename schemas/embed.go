// Package schemas embeds the JSON Schemas describing the tool's JSON outputs.
package schemas

import "embed"

// Schema file names
const (
	FormattedDocument = "formatted_document.schema.json"
	SectionModel      = "section_model.schema.json"
	ParseResult       = "parse_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw bytes of an embedded schema
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files
func Names() []string {
	return []string{FormattedDocument, SectionModel, ParseResult}
}
