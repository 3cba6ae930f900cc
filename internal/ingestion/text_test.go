package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_RemovesURLs(t *testing.T) {
	input := "Jane Doe\nPortfolio: https://jane.dev/work and www.github.com/jane\nhttp://example.com"
	result := Normalize(input)

	assert.NotContains(t, result, "http")
	assert.NotContains(t, result, "www.")
	assert.Equal(t, "Jane Doe\nPortfolio: and", result)
}

func TestNormalize_RemovesBulletGlyphs(t *testing.T) {
	input := "• Led migration\n● Wrote docs\n▪ Mentored ◦ juniors\n\uf0b7 Symbol bullet"
	result := Normalize(input)

	assert.Equal(t, "Led migration\nWrote docs\nMentored juniors\nSymbol bullet", result)
}

func TestNormalize_SeparatorGlyphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"middle dot list", "Python · Go · SQL", "Python, Go, SQL"},
		{"bullet operator list", "AWS∙GCP ∙ Azure", "AWS, GCP, Azure"},
		{"leading glyph is a bullet", "· Led migration", "Led migration"},
		{"trailing glyph dropped", "Go ·", "Go"},
		{"repeated glyphs", "A ·· B", "A, B"},
		{"glyph only", "·", ""},
		{"separator next to URL", "Go · https://go.dev", "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got))
		})
	}
}

func TestNormalize_StripsLeadingListMarkers(t *testing.T) {
	input := "- Item 1\n* Item 2\n– Item 3\n— Item 4\n- - Nested\n-"
	result := Normalize(input)

	assert.Equal(t, "Item 1\nItem 2\nItem 3\nItem 4\nNested", result)
}

func TestNormalize_PreservesInlineDashes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"hyphenated range", "Engineer Jan 2020 - Present"},
		{"en dash range", "Engineer, Acme Jan 2020 – Dec 2021"},
		{"compound word", "Full-stack developer"},
		{"leading hyphen word", "-fPIC compiler flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, Normalize(tt.input))
		})
	}
}

func TestNormalize_Whitespace(t *testing.T) {
	input := "  Line\twith\t\ttabs  \r\n\r\n\r\nSecond    line\u00a0here \rThird\u200bline"
	result := Normalize(input)

	assert.Equal(t, "Line with tabs\nSecond line here\nThirdline", result)
	assert.NotContains(t, result, "\t")
	assert.NotContains(t, result, "\r")
	assert.NotContains(t, result, "\n\n")
}

func TestNormalize_Composition(t *testing.T) {
	decomposed := "Jose\u0301 Nu\u0301n\u0303ez"
	assert.Equal(t, "Jos\u00e9 N\u00fa\u00f1ez", Normalize(decomposed))
}

func TestNormalize_EmptyAndBlank(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t\n  "))
	assert.Equal(t, "", Normalize("• ● https://only.link"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Jane Doe\n\n• Summary\n- Experienced engineer.  https://x.y\n",
		"e•\u0301 glyph between base and accent",
		"- * – nested markers\n\t\tindented",
		"www.a.com•www.b.com",
		"Skills:\tGo,\u00a0Python\r\n\r\nEducation",
		"h•ttps://tricky.example",
		"Python · Go\n· - Item\n- · Item",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_LineInvariants(t *testing.T) {
	input := "  A  \n\n\n B\t \n   \n• C •\n"
	result := Normalize(input)

	for _, line := range strings.Split(result, "\n") {
		assert.NotEmpty(t, line)
		assert.Equal(t, strings.TrimSpace(line), line)
	}
	assert.Equal(t, strings.TrimSpace(result), result)
}

func TestNormalize_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, Normalize(input), Normalize(input))
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Nil(t, Lines("  \n "))
	assert.Equal(t, []string{"a", "b"}, Lines("a\n\n b \n"))
}
