package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Senior Engineer", "Senior Engineer"},
		{"backslash", `C:\Users`, `C:\textbackslash{}Users`},
		{"braces", "{x}", `\{x\}`},
		{"money and percent", "Cut costs $2M (15%)", `Cut costs \$2M (15\%)`},
		{"ampersand", "Education, Certification & Training", `Education, Certification \& Training`},
		{"hash and underscore", "C# and snake_case", `C\# and snake\_case`},
		{"caret and tilde", "x^2 ~ y", `x\textasciicircum{}2 \textasciitilde{} y`},
		{"angle brackets", "<10ms", `\textless{}10ms`},
		{"date range en dash", "Jan 2020 – Present", "Jan 2020 -- Present"},
		{"date range em dash", "March 2015—June 2016", "March 2015---June 2016"},
		{"date range bar", "2019 | 2021", `2019 \textbar{} 2021`},
		{"accents untouched", "José Müller", "José Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}

func TestEscapeLaTeX_SinglePass(t *testing.T) {
	// the braces of \textbackslash{} must not be escaped again
	assert.Equal(t, `\textbackslash{}\{`, EscapeLaTeX(`\{`))
}
