package types

// NodeKind is the type tag of a FormattedDocument node
type NodeKind string

const (
	NodeHeading        NodeKind = "heading"
	NodeCenteredTitle  NodeKind = "centered_title"
	NodeBullet         NodeKind = "bullet"
	NodeTabAlignedLine NodeKind = "tab_aligned_line"
	NodePlainParagraph NodeKind = "plain_paragraph"
	NodeSpacer         NodeKind = "spacer"
)

// Node is a single typed element of the rendered document.
// Right is only set for tab-aligned lines; Glyph and Separator only for bullets.
type Node struct {
	Kind      NodeKind `json:"kind"`
	Text      string   `json:"text,omitempty"`
	Right     string   `json:"right,omitempty"`
	Glyph     string   `json:"glyph,omitempty"`
	Separator string   `json:"separator,omitempty"`
	Indent    int      `json:"indent,omitempty"`
}

// FormattedDocument is the renderer's output: an ordered node sequence with no
// knowledge of any concrete file format.
type FormattedDocument struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
}

// Heading creates a section heading node
func Heading(text string) Node {
	return Node{Kind: NodeHeading, Text: text}
}

// CenteredTitle creates the document title node
func CenteredTitle(text string) Node {
	return Node{Kind: NodeCenteredTitle, Text: text}
}

// Bullet creates a bullet node. separator is " " for inline bullets and "\t" for tab-aligned ones.
func Bullet(text, glyph, separator string, indent int) Node {
	return Node{Kind: NodeBullet, Text: text, Glyph: glyph, Separator: separator, Indent: indent}
}

// TabAlignedLine creates a line with left text and right text aligned at a tab stop
func TabAlignedLine(left, right string) Node {
	return Node{Kind: NodeTabAlignedLine, Text: left, Right: right}
}

// PlainParagraph creates a plain paragraph node
func PlainParagraph(text string) Node {
	return Node{Kind: NodePlainParagraph, Text: text}
}

// Spacer creates an empty paragraph node
func Spacer() Node {
	return Node{Kind: NodeSpacer}
}

// Prefix returns the bullet glyph and separator, or "" for non-bullet nodes
func (n Node) Prefix() string {
	if n.Kind != NodeBullet {
		return ""
	}
	return n.Glyph + n.Separator
}

// CountKind returns the number of nodes of the given kind
func (d *FormattedDocument) CountKind(kind NodeKind) int {
	count := 0
	for _, n := range d.Nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// Headings returns heading texts in document order
func (d *FormattedDocument) Headings() []string {
	var out []string
	for _, n := range d.Nodes {
		if n.Kind == NodeHeading {
			out = append(out, n.Text)
		}
	}
	return out
}
