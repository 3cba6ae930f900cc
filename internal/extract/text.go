package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextExtractor passes plain text through. Invalid UTF-8 is decoded as Windows-1252,
// which is what most legacy résumé exports use.
type TextExtractor struct{}

func (e *TextExtractor) SupportedFormats() []string { return []string{"txt", "text", "md"} }

func (e *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding windows-1252 text: %w", err)
	}
	return string(decoded), nil
}
