package experience

import (
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// SubtitleMode controls when the line after a header becomes its subtitle
type SubtitleMode int

const (
	// SubtitleHeuristic takes a subtitle only after a dated header, and only
	// when the next line does not read like a sentence.
	SubtitleHeuristic SubtitleMode = iota
	// SubtitleAlways takes the next non-header line unconditionally
	SubtitleAlways
	// SubtitleNever puts every body line into bullets
	SubtitleNever
)

func (m SubtitleMode) String() string {
	switch m {
	case SubtitleAlways:
		return "always"
	case SubtitleNever:
		return "never"
	default:
		return "heuristic"
	}
}

// ParseSubtitleMode parses "heuristic", "always" or "never"; "" means heuristic
func ParseSubtitleMode(s string) (SubtitleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic":
		return SubtitleHeuristic, nil
	case "always":
		return SubtitleAlways, nil
	case "never":
		return SubtitleNever, nil
	default:
		return SubtitleHeuristic, &ModeError{Value: s}
	}
}

// Segmenter splits experience lines into entries in a single forward pass
type Segmenter struct {
	Subtitles SubtitleMode
	Strict    bool
}

// Option configures a Segmenter
type Option func(*Segmenter)

// WithSubtitleMode sets the subtitle policy
func WithSubtitleMode(m SubtitleMode) Option {
	return func(s *Segmenter) {
		s.Subtitles = m
	}
}

// WithStrict makes date-only lines that cannot be attached to an entry an error
func WithStrict(strict bool) Option {
	return func(s *Segmenter) {
		s.Strict = strict
	}
}

// NewSegmenter creates a Segmenter with the heuristic subtitle mode
func NewSegmenter(opts ...Option) *Segmenter {
	s := &Segmenter{Subtitles: SubtitleHeuristic}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment runs a Segmenter built from opts
func Segment(lines []string, opts ...Option) ([]types.ExperienceEntry, error) {
	return NewSegmenter(opts...).Segment(lines)
}

// IsHeaderCandidate reports whether line would open a new entry mid-section
func IsHeaderCandidate(line string) bool {
	return HasDateRange(line)
}

// Segment groups lines into entries. The first line always opens an entry and
// every later line carrying a date range opens another. A date-only line that
// follows a bare header is folded into that header as its duration.
func (s *Segmenter) Segment(lines []string) ([]types.ExperienceEntry, error) {
	entries := []types.ExperienceEntry{}

	for i := 0; i < len(lines); {
		line := lines[i]
		dr := ExtractDateRange(line)
		header := strings.TrimSpace(line)
		if dr != nil {
			header = StripDateRange(line, dr)
		}

		var entry types.ExperienceEntry
		reopened := false

		switch {
		case dr != nil && header == "" && canAdoptDuration(entries):
			entry = entries[len(entries)-1]
			entry.Duration = dr
			reopened = true
		case dr != nil && header == "" && s.Strict:
			return nil, &types.MalformedExperienceBlockError{
				Index:   i + 1,
				Line:    line,
				Message: "date range has no header to attach to",
			}
		default:
			entry = types.ExperienceEntry{Header: header, Duration: dr, Bullets: []string{}}
		}
		i++

		if i < len(lines) && s.takesSubtitle(entry, lines[i]) {
			entry.Subtitle = lines[i]
			i++
		}
		for i < len(lines) && !IsHeaderCandidate(lines[i]) {
			entry.Bullets = append(entry.Bullets, lines[i])
			i++
		}

		if reopened {
			entries[len(entries)-1] = entry
		} else {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// canAdoptDuration reports whether the last entry is a bare header still waiting for its dates
func canAdoptDuration(entries []types.ExperienceEntry) bool {
	if len(entries) == 0 {
		return false
	}
	last := entries[len(entries)-1]
	return last.Duration == nil && last.Subtitle == "" && len(last.Bullets) == 0 && last.Header != ""
}

func (s *Segmenter) takesSubtitle(entry types.ExperienceEntry, next string) bool {
	if IsHeaderCandidate(next) {
		return false
	}
	switch s.Subtitles {
	case SubtitleAlways:
		return true
	case SubtitleNever:
		return false
	default:
		return entry.Duration != nil && !endsSentence(next)
	}
}

func endsSentence(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch line[len(line)-1] {
	case '.', '!', '?', ';':
		return true
	}
	return false
}
