package experience

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

var (
	// dateRangePattern matches "Jan 2020 - Present", "Sept. 2018 – June 2021", "May 2019 to Current"
	dateRangePattern = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+\d{4}\s*(?:-|–|—|\||\bto\b)\s*(?:` +
		monthPattern + `\s+\d{4}\b|present\b|current\b|now\b)`)

	emptyBrackets     = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	danglingSeparator = regexp.MustCompile(`\s*[,|:\-–—]\s*([)\]])`)
)

// headerTrimSet is trimmed from both ends of a header once its date range is removed
const headerTrimSet = " ,|-–—(:"

// ExtractDateRange finds the first month-year span in line, or returns nil
func ExtractDateRange(line string) *types.DateRange {
	loc := dateRangePattern.FindStringIndex(line)
	if loc == nil {
		return nil
	}
	return &types.DateRange{Text: line[loc[0]:loc[1]], Start: loc[0]}
}

// HasDateRange reports whether line contains a date-range token
func HasDateRange(line string) bool {
	return dateRangePattern.MatchString(line)
}

// StripDateRange removes dr from line and tidies what is left: empty brackets,
// dangling separators and surrounding whitespace.
func StripDateRange(line string, dr *types.DateRange) string {
	if dr == nil || dr.Start < 0 || dr.End() > len(line) {
		return strings.TrimSpace(line)
	}

	out := line[:dr.Start] + " " + line[dr.End():]
	out = emptyBrackets.ReplaceAllString(out, " ")
	out = danglingSeparator.ReplaceAllString(out, "$1")
	out = strings.Join(strings.Fields(out), " ")
	out = strings.Trim(out, headerTrimSet)
	return strings.TrimSpace(out)
}
