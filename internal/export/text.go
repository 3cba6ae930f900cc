package export

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

// pointsPerColumn approximates a monospace column at the tab stop
const pointsPerColumn = 6.0

// TextWriter emits plain text: the title centered and durations right-aligned
// at a column derived from the tab stop.
type TextWriter struct{}

func (t *TextWriter) Extension() string   { return "txt" }
func (t *TextWriter) ContentType() string { return "text/plain; charset=utf-8" }

func (t *TextWriter) Write(w io.Writer, doc *types.FormattedDocument, style config.Style) error {
	width := int(style.TabStopPt / pointsPerColumn)
	if width < 40 {
		width = 40
	}

	bw := bufio.NewWriter(w)
	for _, n := range doc.Nodes {
		bw.WriteString(textLine(n, width))
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{Format: "txt", Message: "failed to write text", Cause: err}
	}
	return nil
}

func textLine(n types.Node, width int) string {
	switch n.Kind {
	case types.NodeCenteredTitle:
		pad := (width - utf8.RuneCountInString(n.Text)) / 2
		if pad < 0 {
			pad = 0
		}
		return strings.Repeat(" ", pad) + n.Text
	case types.NodeHeading:
		return strings.ToUpper(n.Text)
	case types.NodeBullet:
		return strings.Repeat("  ", n.Indent) + n.Prefix() + n.Text
	case types.NodeTabAlignedLine:
		gap := width - utf8.RuneCountInString(n.Text) - utf8.RuneCountInString(n.Right)
		if gap < 2 {
			gap = 2
		}
		return n.Text + strings.Repeat(" ", gap) + n.Right
	case types.NodeSpacer:
		return ""
	default:
		return n.Text
	}
}
