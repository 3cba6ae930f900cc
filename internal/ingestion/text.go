// Package ingestion normalizes raw extracted résumé text before classification.
package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// bulletGlyphs are removed wherever they appear; \x{F0B7} and \x{F0A7} are the
	// private-use bullets Word emits through the Symbol font.
	bulletGlyphs = regexp.MustCompile(`[•●▪◦■□►▸‣⁃❖➢✓✔\x{F0B7}\x{F0A7}]`)

	// separatorGlyphs double as inline list separators ("Python · Go"), so
	// mid-line they become ", " and at either end of a line they are dropped
	separatorGlyphs = regexp.MustCompile(`[^\S\n]*[·∙]+[^\S\n]*`)

	urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)

	// listMarkers matches leading ASCII/typographic list markers; inline dashes survive
	listMarkers = regexp.MustCompile(`^(?:[-*–—](?:\s+|$))+`)

	unicodeSpaces = regexp.MustCompile(`[\x{00A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]`)
	zeroWidth     = regexp.MustCompile(`[\x{200B}\x{FEFF}]`)
	spaceRuns     = regexp.MustCompile(`[^\S\n]+`)
)

// Normalize strips noise from raw extracted text: URLs, bullet glyphs, tabs,
// leading list markers and blank lines. Every returned line is trimmed and
// non-empty. Normalize never fails and Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// 1. Line endings and exotic spaces
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = zeroWidth.ReplaceAllString(text, "")
	text = unicodeSpaces.ReplaceAllString(text, " ")

	// 2. Tabs become single spaces
	text = strings.ReplaceAll(text, "\t", " ")

	// 3. Glyphs before URLs so that removing a glyph cannot assemble a new URL
	text = bulletGlyphs.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")

	// 4. Per-line cleanup, dropping blank lines
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = cleanLine(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}

	// 5. Composition last: it never introduces whitespace, glyphs or markers
	return strings.TrimSpace(norm.NFC.String(strings.Join(cleaned, "\n")))
}

// cleanLine splits separator glyphs, collapses whitespace, trims, and strips
// leading list markers
func cleanLine(line string) string {
	line = splitSeparators(line)
	line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	line = listMarkers.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

func splitSeparators(line string) string {
	if !separatorGlyphs.MatchString(line) {
		return line
	}
	parts := separatorGlyphs.Split(line, -1)
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Lines splits normalized text into its non-empty lines
func Lines(normalized string) []string {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}
	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
