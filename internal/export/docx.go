package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	twipsPerPoint = 20
	indentTwips   = 360 // one indent level, 0.25in
	docxMime      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// DOCXWriter produces a minimal WordprocessingML package
type DOCXWriter struct{}

func (d *DOCXWriter) Extension() string   { return "docx" }
func (d *DOCXWriter) ContentType() string { return docxMime }

func (d *DOCXWriter) Write(w io.Writer, doc *types.FormattedDocument, style config.Style) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML(style)},
		{"word/document.xml", documentXML(doc, style)},
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return &WriteError{Format: "docx", Message: "failed to create " + p.name, Cause: err}
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return &WriteError{Format: "docx", Message: "failed to write " + p.name, Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &WriteError{Format: "docx", Message: "failed to finish archive", Cause: err}
	}
	return nil
}

// stylesXML sets the Normal font, size and zero paragraph spacing
func stylesXML(style config.Style) string {
	font := escapeXML(style.FontFamily)
	line := int(math.Round(240 * style.LineSpacing))

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:styles ` + wordNS + `>`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>`)
	fmt.Fprintf(&b, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s" w:eastAsia="%s"/>`, font, font, font, font)
	fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints(style.FontSizePt), halfPoints(style.FontSizePt))
	b.WriteString(`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr>`)
	fmt.Fprintf(&b, `<w:spacing w:before="0" w:after="0" w:line="%d" w:lineRule="auto"/>`, line)
	b.WriteString(`</w:pPr></w:pPrDefault></w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	b.WriteString(`</w:styles>`)
	return b.String()
}

func documentXML(doc *types.FormattedDocument, style config.Style) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document ` + wordNS + `><w:body>`)

	for _, n := range doc.Nodes {
		writeParagraph(&b, n, style)
	}

	// US Letter, one inch margins
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>`)
	b.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, n types.Node, style config.Style) {
	switch n.Kind {
	case types.NodeCenteredTitle:
		b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
		rPr := fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints(style.TitleSizePt), halfPoints(style.TitleSizePt))
		if style.TitleBold {
			rPr = `<w:b/>` + rPr
		}
		writeRun(b, rPr, n.Text)
		b.WriteString(`</w:p>`)

	case types.NodeHeading:
		b.WriteString(`<w:p>`)
		writeRun(b, `<w:b/>`, n.Text)
		b.WriteString(`</w:p>`)

	case types.NodeBullet:
		b.WriteString(`<w:p><w:pPr>`)
		left := n.Indent * indentTwips
		if n.Separator == "\t" {
			// hanging indent so wrapped lines align with the text after the tab
			fmt.Fprintf(b, `<w:tabs><w:tab w:val="left" w:pos="%d"/></w:tabs>`, left+indentTwips)
			fmt.Fprintf(b, `<w:ind w:left="%d" w:hanging="%d"/>`, left+indentTwips, indentTwips)
		} else if left > 0 {
			fmt.Fprintf(b, `<w:ind w:left="%d"/>`, left)
		}
		b.WriteString(`</w:pPr>`)
		if n.Separator == "\t" {
			writeRun(b, "", n.Glyph)
			b.WriteString(`<w:r><w:tab/></w:r>`)
			writeRun(b, "", n.Text)
		} else {
			writeRun(b, "", n.Glyph+n.Separator+n.Text)
		}
		b.WriteString(`</w:p>`)

	case types.NodeTabAlignedLine:
		fmt.Fprintf(b, `<w:p><w:pPr><w:tabs><w:tab w:val="right" w:pos="%d"/></w:tabs></w:pPr>`, int(math.Round(style.TabStopPt*twipsPerPoint)))
		writeRun(b, "", n.Text)
		b.WriteString(`<w:r><w:tab/></w:r>`)
		writeRun(b, "", n.Right)
		b.WriteString(`</w:p>`)

	case types.NodeSpacer:
		b.WriteString(`<w:p/>`)

	default:
		b.WriteString(`<w:p>`)
		writeRun(b, "", n.Text)
		b.WriteString(`</w:p>`)
	}
}

func writeRun(b *strings.Builder, rPr, text string) {
	b.WriteString(`<w:r>`)
	if rPr != "" {
		b.WriteString(`<w:rPr>` + rPr + `</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString(`</w:t></w:r>`)
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
