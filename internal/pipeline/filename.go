package pipeline

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
)

// defaultBaseName is used when the candidate name sanitizes to nothing
const defaultBaseName = "resume"

// FileName returns "<Title Cased Full Name>.<ext>" for a candidate.
// An empty ext selects export.DefaultFormat. Path separators, control and
// shell-reserved characters are dropped.
func FileName(candidate types.Candidate, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = export.DefaultFormat
	}

	base := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return ' '
		}
		return r
	}, candidate.FullName)

	base = rendering.TitleName(base)
	base = strings.Trim(base, ". ")
	if base == "" {
		base = defaultBaseName
	}
	return base + "." + ext
}
