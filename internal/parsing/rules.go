package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Matcher reports whether a heading key selects a rule.
// Keys are lowercased, trimmed, and have a trailing colon removed.
type Matcher func(key string) bool

// HeadingRule maps a heading matcher to the section it opens
type HeadingRule struct {
	Name    string
	Section types.SectionID
	Match   Matcher
}

// DefaultRules is the ordered heading table. Evaluation is first-match-wins,
// so "Education and Training" opens education.
var DefaultRules = []HeadingRule{
	{Name: "summary", Section: types.SectionSummary, Match: HasWordPrefix("summary", "profile")},
	{Name: "skills", Section: types.SectionSkills, Match: AnyOf(Equals("skills"), HasWordPrefix("technical"))},
	{Name: "education", Section: types.SectionEducation, Match: HasWordPrefix("education")},
	{Name: "certification", Section: types.SectionCertification, Match: HasWordPrefix("certification")},
	{Name: "training", Section: types.SectionTraining, Match: HasWordPrefix("training")},
	{Name: "experience", Section: types.SectionExperience, Match: HasWordPrefix("experience")},
}

// HeadingKey lowercases and trims line and drops one trailing colon
func HeadingKey(line string) string {
	key := strings.ToLower(strings.TrimSpace(line))
	key = strings.TrimSuffix(key, ":")
	return strings.TrimSpace(key)
}

// HasWord matches keys containing any of words as a whole word
func HasWord(words ...string) Matcher {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return func(key string) bool {
		for _, tok := range splitWords(key) {
			if _, ok := set[tok]; ok {
				return true
			}
		}
		return false
	}
}

// HasWordPrefix matches keys with a word starting with any of prefixes,
// so "education" also selects "educational qualifications"
func HasWordPrefix(prefixes ...string) Matcher {
	lowered := make([]string, len(prefixes))
	for i, p := range prefixes {
		lowered[i] = strings.ToLower(p)
	}
	return func(key string) bool {
		for _, tok := range splitWords(key) {
			for _, p := range lowered {
				if strings.HasPrefix(tok, p) {
					return true
				}
			}
		}
		return false
	}
}

// Equals matches keys equal to s
func Equals(s string) Matcher {
	s = strings.ToLower(s)
	return func(key string) bool {
		return key == s
	}
}

// AnyOf matches when any of ms matches
func AnyOf(ms ...Matcher) Matcher {
	return func(key string) bool {
		for _, m := range ms {
			if m(key) {
				return true
			}
		}
		return false
	}
}

func splitWords(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ValidateRules checks that every rule can be evaluated and targets a known section
func ValidateRules(rules []HeadingRule) error {
	if len(rules) == 0 {
		return &RuleError{Message: "rule table is empty"}
	}
	for i, r := range rules {
		if r.Match == nil {
			return &RuleError{Index: i, Name: r.Name, Message: "rule has no matcher"}
		}
		if !r.Section.Valid() {
			return &RuleError{Index: i, Name: r.Name, Message: "unknown section " + string(r.Section)}
		}
	}
	return nil
}
