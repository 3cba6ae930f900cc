// Package parsing classifies normalized résumé lines into sections.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Classifier assigns each line of a normalized résumé to a section by
// walking an ordered heading rule table.
type Classifier struct {
	Rules []HeadingRule

	// MaxHeadingLength rejects longer lines as headings; 0 means unlimited
	MaxHeadingLength int
}

// Option configures a Classifier
type Option func(*Classifier)

// WithRules replaces the heading rule table
func WithRules(rules []HeadingRule) Option {
	return func(c *Classifier) {
		c.Rules = rules
	}
}

// WithMaxHeadingLength limits how long (in runes) a heading line may be
func WithMaxHeadingLength(n int) Option {
	return func(c *Classifier) {
		c.MaxHeadingLength = n
	}
}

// NewClassifier returns a classifier using DefaultRules unless overridden
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{Rules: DefaultRules}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classification is the full outcome of classifying one text
type Classification struct {
	CandidateName string
	Sections      *types.SectionModel
	Headings      []string // Heading lines in source order
	Discarded     []string // Content lines seen before any heading
}

// Match returns the section a line opens, if it is a heading
func (c *Classifier) Match(line string) (types.SectionID, bool) {
	if c.MaxHeadingLength > 0 && len([]rune(strings.TrimSpace(line))) > c.MaxHeadingLength {
		return "", false
	}
	if isSentence(line) {
		return "", false
	}
	key := HeadingKey(line)
	if key == "" {
		return "", false
	}
	for _, r := range c.Rules {
		if r.Match != nil && r.Match(key) {
			return r.Section, true
		}
	}
	return "", false
}

// Classify splits normalized text into the candidate name and a section model.
// It returns *types.EmptyExtractionError for blank input and
// *types.EmptySectionsError when no section receives a line.
func (c *Classifier) Classify(text string) (string, *types.SectionModel, error) {
	res, err := c.ClassifyDetailed(text)
	if err != nil {
		return "", nil, err
	}
	return res.CandidateName, res.Sections, nil
}

// ClassifyDetailed is Classify with the headings and discarded lines reported
func (c *Classifier) ClassifyDetailed(text string) (*Classification, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &types.EmptyExtractionError{}
	}

	res := &Classification{
		CandidateName: lines[0],
		Sections:      types.NewSectionModel(),
	}

	var cursor types.SectionID
	for _, line := range lines[1:] {
		if section, ok := c.Match(line); ok {
			cursor = section
			res.Headings = append(res.Headings, line)
			continue
		}
		if cursor == "" {
			res.Discarded = append(res.Discarded, line)
			continue
		}
		if err := res.Sections.Add(cursor, line); err != nil {
			return nil, &RuleError{Message: err.Error()}
		}
	}

	if res.Sections.IsEmpty() {
		return nil, &types.EmptySectionsError{
			CandidateName: res.CandidateName,
			HeadingsSeen:  len(res.Headings),
		}
	}
	return res, nil
}

// Classify runs a default Classifier
func Classify(text string) (string, *types.SectionModel, error) {
	return NewClassifier().Classify(text)
}

// isSentence reports lines ending in sentence punctuation; headings never do
func isSentence(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && strings.ContainsRune(".!?;", rune(line[len(line)-1]))
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
