package export

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	pdfMarginPt = 72.0
	pdfIndentPt = 18.0
)

// PDFWriter lays the document out on US Letter pages with gofpdf core fonts.
// Text is translated to cp1252, so glyphs outside it print as '?'.
type PDFWriter struct{}

func (p *PDFWriter) Extension() string   { return "pdf" }
func (p *PDFWriter) ContentType() string { return "application/pdf" }

func (p *PDFWriter) Write(w io.Writer, doc *types.FormattedDocument, style config.Style) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMarginPt, pdfMarginPt, pdfMarginPt)
	pdf.SetAutoPageBreak(true, pdfMarginPt)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("resume-formatter", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	family := coreFont(style.FontFamily)
	lh := lineHeight(style.FontSizePt, style.LineSpacing)
	pageWidth, _ := pdf.GetPageSize()
	bodyWidth := pageWidth - 2*pdfMarginPt

	pdf.SetFont(family, "", style.FontSizePt)

	for _, n := range doc.Nodes {
		switch n.Kind {
		case types.NodeCenteredTitle:
			fontStyle := ""
			if style.TitleBold {
				fontStyle = "B"
			}
			pdf.SetFont(family, fontStyle, style.TitleSizePt)
			pdf.CellFormat(0, lineHeight(style.TitleSizePt, style.LineSpacing), tr(n.Text), "", 1, "C", false, 0, "")
			pdf.SetFont(family, "", style.FontSizePt)

		case types.NodeHeading:
			pdf.SetFont(family, "B", style.FontSizePt)
			pdf.CellFormat(0, lh, tr(n.Text), "", 1, "L", false, 0, "")
			pdf.SetFont(family, "", style.FontSizePt)

		case types.NodeBullet:
			x := pdfMarginPt + float64(n.Indent)*pdfIndentPt
			pdf.SetX(x)
			if n.Separator == "\t" {
				pdf.CellFormat(pdfIndentPt, lh, tr(n.Glyph), "", 0, "L", false, 0, "")
				pdf.MultiCell(bodyWidth-(x-pdfMarginPt)-pdfIndentPt, lh, tr(n.Text), "", "L", false)
			} else {
				pdf.MultiCell(bodyWidth-(x-pdfMarginPt), lh, tr(n.Glyph+n.Separator+n.Text), "", "L", false)
			}

		case types.NodeTabAlignedLine:
			right := tr(n.Right)
			rightWidth := pdf.GetStringWidth(right) + 1
			leftWidth := style.TabStopPt - rightWidth
			if leftWidth < 0 {
				leftWidth = 0
			}
			pdf.CellFormat(leftWidth, lh, tr(n.Text), "", 0, "L", false, 0, "")
			pdf.CellFormat(rightWidth, lh, right, "", 1, "R", false, 0, "")

		case types.NodeSpacer:
			pdf.Ln(lh)

		default:
			pdf.MultiCell(0, lh, tr(n.Text), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return &WriteError{Format: "pdf", Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// coreFont maps a requested family onto one of the PDF core fonts
func coreFont(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "courier") || strings.Contains(f, "mono"):
		return "Courier"
	case strings.Contains(f, "arial") || strings.Contains(f, "helvetica") || strings.Contains(f, "sans"):
		return "Helvetica"
	default:
		return "Times"
	}
}

func lineHeight(sizePt, spacing float64) float64 {
	if spacing <= 0 {
		spacing = 1
	}
	return sizePt * 1.2 * spacing
}
