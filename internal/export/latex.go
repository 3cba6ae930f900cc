package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

//go:embed templates/resume.tex.tmpl
var defaultLaTeXTemplate string

// TemplateData represents the data structure passed to the LaTeX template
type TemplateData struct {
	Title       string
	FontSize    int
	LineSpacing string
	Times       bool
	Sans        bool
	Nodes       []types.Node
	Style       config.Style
}

// LaTeXWriter renders the document through a text/template; TemplatePath
// overrides the embedded template.
type LaTeXWriter struct {
	TemplatePath string
}

func (l *LaTeXWriter) Extension() string   { return "tex" }
func (l *LaTeXWriter) ContentType() string { return "application/x-tex" }

func (l *LaTeXWriter) Write(w io.Writer, doc *types.FormattedDocument, style config.Style) error {
	tmpl, err := parseTemplate(l.TemplatePath, style)
	if err != nil {
		return err
	}

	family := coreFont(style.FontFamily)
	data := TemplateData{
		Title:       EscapeLaTeX(doc.Title),
		FontSize:    articleSize(style.FontSizePt),
		LineSpacing: fmt.Sprintf("%.2f", style.LineSpacing),
		Times:       family == "Times",
		Sans:        family == "Helvetica",
		Nodes:       doc.Nodes,
		Style:       style,
	}

	// Execute into a buffer so a failing template writes nothing
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &WriteError{Format: "tex", Message: "failed to write LaTeX", Cause: err}
	}
	return nil
}

// parseTemplate reads and parses a LaTeX template file, or the embedded one when path is empty
func parseTemplate(templatePath string, style config.Style) (*template.Template, error) {
	content := defaultLaTeXTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		content = string(raw)
	}

	// Parse template with custom functions for LaTeX escaping
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"node": func(n types.Node) string {
			return latexNode(n, style)
		},
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// latexNode renders one node as a LaTeX paragraph
func latexNode(n types.Node, style config.Style) string {
	text := EscapeLaTeX(n.Text)

	switch n.Kind {
	case types.NodeCenteredTitle:
		if style.TitleBold {
			text = `\textbf{` + text + `}`
		}
		return `\begin{center}{\large ` + text + `}\end{center}`
	case types.NodeHeading:
		return `\noindent\textbf{` + text + `}\par`
	case types.NodeBullet:
		sep := `\ `
		if n.Separator == "\t" {
			sep = `\hspace{1em}`
		}
		indent := ""
		if n.Indent > 0 {
			indent = fmt.Sprintf(`\hspace*{%dem}`, 2*n.Indent)
		}
		return `\noindent` + indent + latexGlyph(n.Glyph) + sep + text + `\par`
	case types.NodeTabAlignedLine:
		return `\noindent ` + text + `\hfill ` + EscapeLaTeX(n.Right) + `\par`
	case types.NodeSpacer:
		return `\medskip`
	default:
		return `\noindent ` + text + `\par`
	}
}

func latexGlyph(glyph string) string {
	switch strings.TrimSpace(glyph) {
	case "•", "●":
		return `\textbullet{}`
	case "-", "–":
		return `\textendash{}`
	case "*":
		return `\textasteriskcentered{}`
	default:
		return EscapeLaTeX(glyph)
	}
}

// articleSize snaps a point size onto the sizes the article class supports
func articleSize(pt float64) int {
	switch {
	case pt < 10.5:
		return 10
	case pt < 11.5:
		return 11
	default:
		return 12
	}
}

// TemplateError represents an error parsing or executing a LaTeX template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
