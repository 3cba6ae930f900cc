package export

import "strings"

// latexEscaper maps LaTeX special characters, plus the dashes and bars common
// in résumé date ranges, to sequences that typeset literally under the
// default OT1 font encoding. Replacement is single pass, so inserted braces
// are never escaped again.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	`|`, `\textbar{}`,
	"–", "--",
	"—", "---",
)

// EscapeLaTeX makes text safe to place inside a LaTeX paragraph
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}
