package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/types"
)

func sampleDocument() *types.FormattedDocument {
	return &types.FormattedDocument{
		Title: "Jane Doe",
		Nodes: []types.Node{
			types.CenteredTitle("Jane Doe"),
			types.Heading("Summary"),
			types.Bullet("Experienced engineer.", "•", " ", 0),
			types.Heading("Education, Certification & Training"),
			types.Bullet("BSc <Computer> Science", "•", "\t", 1),
			types.Heading("Professional Experience"),
			types.TabAlignedLine("Senior Engineer, Acme Corp", "Jan 2020 - Present"),
			types.PlainParagraph("Platform team"),
			types.Bullet("Built distributed systems.", "•", " ", 1),
			types.Spacer(),
		},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"docx", "docx"},
		{"PDF", "pdf"},
		{".tex", "tex"},
		{"latex", "tex"},
		{"json", "json"},
		{"txt", "txt"},
		{"", "docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ForFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, w.Extension())
			assert.NotEmpty(t, w.ContentType())
		})
	}

	_, err := ForFormat("rtf")
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Contains(t, err.Error(), "docx, json, pdf, tex, txt")
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(body)
	}
	return parts
}

func TestDOCXWriter_Package(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&DOCXWriter{}).Write(&buf, sampleDocument(), config.DefaultStyle()))

	parts := readZip(t, buf.Bytes())
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", "word/document.xml"} {
		assert.Contains(t, parts, name)
	}

	styles := parts["word/styles.xml"]
	assert.Contains(t, styles, `w:ascii="Times New Roman"`)
	assert.Contains(t, styles, `<w:sz w:val="20"/>`)
	assert.Contains(t, styles, `w:after="0"`)

	body := parts["word/document.xml"]
	assert.Contains(t, body, `<w:jc w:val="center"/>`)
	assert.Contains(t, body, `<w:b/><w:sz w:val="22"/>`)
	assert.Contains(t, body, `<w:tab w:val="right" w:pos="9360"/>`)
	assert.Contains(t, body, `BSc &lt;Computer&gt; Science`)
	assert.Contains(t, body, `Education, Certification &amp; Training`)
	assert.Contains(t, body, `<w:p/>`)
}

func TestDOCXWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&DOCXWriter{}).Write(&buf, sampleDocument(), config.DefaultStyle()))

	text, err := (&extract.DOCXExtractor{}).Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Equal(t, []string{
		"Jane Doe",
		"Summary",
		"• Experienced engineer.",
		"Education, Certification & Training",
		"•\tBSc <Computer> Science",
		"Professional Experience",
		"Senior Engineer, Acme Corp\tJan 2020 - Present",
		"Platform team",
		"• Built distributed systems.",
	}, lines)
}

func TestPDFWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PDFWriter{}).Write(&buf, sampleDocument(), config.DefaultStyle()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	text, err := (&extract.PDFExtractor{}).Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Professional Experience")
}

func TestCoreFont(t *testing.T) {
	assert.Equal(t, "Times", coreFont("Times New Roman"))
	assert.Equal(t, "Helvetica", coreFont("Arial"))
	assert.Equal(t, "Helvetica", coreFont("Open Sans"))
	assert.Equal(t, "Courier", coreFont("Courier New"))
	assert.Equal(t, "Times", coreFont("Garamond"))
}

func TestLaTeXWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&LaTeXWriter{}).Write(&buf, sampleDocument(), config.DefaultStyle()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `\documentclass[10pt,letterpaper]{article}`))
	assert.Contains(t, out, `\usepackage{mathptmx}`)
	assert.Contains(t, out, `\setstretch{1.00}`)
	assert.Contains(t, out, `\begin{center}{\large \textbf{Jane Doe}}\end{center}`)
	assert.Contains(t, out, `\noindent\textbf{Education, Certification \& Training}\par`)
	assert.Contains(t, out, `\noindent\textbullet{}\ Experienced engineer.\par`)
	assert.Contains(t, out, `\noindent\hspace*{2em}\textbullet{}\hspace{1em}BSc \textless{}Computer\textgreater{} Science\par`)
	assert.Contains(t, out, `\noindent Senior Engineer, Acme Corp\hfill Jan 2020 - Present\par`)
	assert.True(t, strings.HasSuffix(out, "\\end{document}\n"))
}

func TestLaTeXWriter_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Title}}|{{len .Nodes}}|{{escape "50%"}}`), 0644))

	var buf bytes.Buffer
	require.NoError(t, (&LaTeXWriter{TemplatePath: path}).Write(&buf, sampleDocument(), config.DefaultStyle()))
	assert.Equal(t, `Jane Doe|10|50\%`, buf.String())
}

func TestLaTeXWriter_TemplateErrors(t *testing.T) {
	var templateErr *TemplateError

	err := (&LaTeXWriter{TemplatePath: "/nonexistent/template.tex"}).Write(io.Discard, sampleDocument(), config.DefaultStyle())
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")

	path := filepath.Join(t.TempDir(), "invalid.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.InvalidSyntax{{}}`), 0644))
	err = (&LaTeXWriter{TemplatePath: path}).Write(io.Discard, sampleDocument(), config.DefaultStyle())
	require.ErrorAs(t, err, &templateErr)

	path = filepath.Join(t.TempDir(), "missing_field.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Nope}}`), 0644))
	var buf bytes.Buffer
	err = (&LaTeXWriter{TemplatePath: path}).Write(&buf, sampleDocument(), config.DefaultStyle())
	require.ErrorAs(t, err, &templateErr)
	assert.Zero(t, buf.Len(), "nothing is written when execution fails")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleDocument(), config.DefaultStyle()))

	assert.Contains(t, buf.String(), `"kind": "tab_aligned_line"`)
	assert.Contains(t, buf.String(), "Certification & Training", "HTML escaping is disabled")

	var decoded types.FormattedDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleDocument(), decoded)
}

func TestTextWriter(t *testing.T) {
	doc := &types.FormattedDocument{
		Title: "Jane Doe",
		Nodes: []types.Node{
			types.CenteredTitle("Jane Doe"),
			types.Heading("Summary"),
			types.Bullet("Engineer", "•", " ", 1),
			types.TabAlignedLine("Dev", "2020"),
			types.Spacer(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, doc, config.DefaultStyle()))

	want := strings.Repeat(" ", 35) + "Jane Doe\n" +
		"SUMMARY\n" +
		"  • Engineer\n" +
		"Dev" + strings.Repeat(" ", 71) + "2020\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := WriteFile(dir, "Jane Doe.txt", &TextWriter{}, sampleDocument(), config.DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane Doe.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}
