// Package export serializes a FormattedDocument into concrete file formats.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Writer serializes a document tree using a style
type Writer interface {
	Write(w io.Writer, doc *types.FormattedDocument, style config.Style) error
	Extension() string
	ContentType() string
}

var writers = map[string]func() Writer{
	"docx": func() Writer { return &DOCXWriter{} },
	"pdf":  func() Writer { return &PDFWriter{} },
	"tex":  func() Writer { return &LaTeXWriter{} },
	"json": func() Writer { return &JSONWriter{} },
	"txt":  func() Writer { return &TextWriter{} },
}

// DefaultFormat is used when no output format is requested
const DefaultFormat = "docx"

// ForFormat returns the writer for a format name; "" selects DefaultFormat
func ForFormat(name string) (Writer, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if name == "" {
		name = DefaultFormat
	}
	if name == "latex" {
		name = "tex"
	}
	newWriter, ok := writers[name]
	if !ok {
		return nil, &WriteError{Message: fmt.Sprintf("unknown output format %q (want one of %s)", name, strings.Join(Formats(), ", "))}
	}
	return newWriter(), nil
}

// Formats lists the supported output formats
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFile serializes doc into dir/name using w, creating dir when needed.
// It returns the written path.
func WriteFile(dir, name string, w Writer, doc *types.FormattedDocument, style config.Style) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Message: "failed to create output directory", Cause: err}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Message: "failed to create output file", Cause: err}
	}

	if err := w.Write(f, doc, style); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", &WriteError{Message: "failed to close output file", Cause: err}
	}
	return path, nil
}

// WriteError represents a failure serializing a document
type WriteError struct {
	Format  string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	prefix := "export error"
	if e.Format != "" {
		prefix = e.Format + " export error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
