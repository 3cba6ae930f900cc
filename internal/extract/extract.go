// Package extract decodes résumé source files (PDF, DOCX, HTML, XLSX, plain text) into raw text.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSize is the largest source file accepted, in bytes
const MaxFileSize = 15 << 20

// Extractor decodes one family of file formats into raw text
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
	SupportedFormats() []string
}

// Registry maps lowercased format keys (file extensions without the dot) to extractors
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry returns a registry with every built-in extractor registered
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	for _, e := range []Extractor{&TextExtractor{}, &PDFExtractor{}, &DOCXExtractor{}, &HTMLExtractor{}, &XLSXExtractor{}} {
		r.Register(e)
	}
	return r
}

// Register adds e under every format it supports, replacing earlier entries
func (r *Registry) Register(e Extractor) {
	for _, f := range e.SupportedFormats() {
		r.extractors[strings.ToLower(f)] = e
	}
}

// Get returns the extractor for format
func (r *Registry) Get(format string) (Extractor, error) {
	e, ok := r.extractors[strings.ToLower(strings.TrimPrefix(format, "."))]
	if !ok {
		return nil, &UnsupportedFormatError{Format: format}
	}
	return e, nil
}

// Supports reports whether filename has a registered extension
func (r *Registry) Supports(filename string) bool {
	_, ok := r.extractors[FormatOf(filename)]
	return ok
}

// Formats lists the registered format keys in sorted order
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// ExtractBytes decodes data using the extractor registered for filename's extension
func (r *Registry) ExtractBytes(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", &TooLargeError{Name: filename, Size: int64(len(data)), Limit: MaxFileSize}
	}

	e, err := r.Get(FormatOf(filename))
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := e.Extract(ctx, data)
	if err != nil {
		return "", &ExtractError{Name: filename, Message: "failed to extract text", Cause: err}
	}
	return text, nil
}

// ExtractFile reads path and decodes it
func (r *Registry) ExtractFile(ctx context.Context, path string) (string, error) {
	if _, err := r.Get(FormatOf(path)); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", &ExtractError{Name: path, Message: "failed to stat file", Cause: err}
	}
	if info.Size() > MaxFileSize {
		return "", &TooLargeError{Name: path, Size: info.Size(), Limit: MaxFileSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractError{Name: path, Message: "failed to read file", Cause: err}
	}
	return r.ExtractBytes(ctx, filepath.Base(path), data)
}

// FormatOf returns the lowercased extension of filename without the dot
func FormatOf(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// UnsupportedFormatError means no extractor is registered for a format
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return "unsupported file format: file has no extension"
	}
	return fmt.Sprintf("unsupported file format: %s", e.Format)
}

// TooLargeError means a source file exceeds MaxFileSize
type TooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large: %d bytes (limit %d)", e.Name, e.Size, e.Limit)
}

// ExtractError represents a failure reading or decoding a source file
type ExtractError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error: %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error: %s: %s", e.Name, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
