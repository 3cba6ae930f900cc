package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeConstructors(t *testing.T) {
	assert.Equal(t, Node{Kind: NodeHeading, Text: "Summary"}, Heading("Summary"))
	assert.Equal(t, Node{Kind: NodeCenteredTitle, Text: "Jane Doe"}, CenteredTitle("Jane Doe"))
	assert.Equal(t, Node{Kind: NodeTabAlignedLine, Text: "Engineer", Right: "2020 - 2021"}, TabAlignedLine("Engineer", "2020 - 2021"))
	assert.Equal(t, Node{Kind: NodePlainParagraph, Text: "Go"}, PlainParagraph("Go"))
	assert.Equal(t, Node{Kind: NodeSpacer}, Spacer())

	b := Bullet("Shipped it", "•", "\t", 1)
	assert.Equal(t, NodeBullet, b.Kind)
	assert.Equal(t, "•\t", b.Prefix())
	assert.Equal(t, 1, b.Indent)
	assert.Empty(t, Heading("x").Prefix())
}

func TestFormattedDocument_Helpers(t *testing.T) {
	doc := &FormattedDocument{
		Title: "Jane Doe",
		Nodes: []Node{
			CenteredTitle("Jane Doe"),
			Heading("Summary"),
			Bullet("Engineer", "•", " ", 0),
			Heading("Technical Skills"),
			PlainParagraph("Go"),
			Spacer(),
		},
	}

	assert.Equal(t, 2, doc.CountKind(NodeHeading))
	assert.Equal(t, 1, doc.CountKind(NodeSpacer))
	assert.Equal(t, []string{"Summary", "Technical Skills"}, doc.Headings())
}

func TestExperienceEntry_Duration(t *testing.T) {
	e := ExperienceEntry{Header: "Engineer"}
	assert.False(t, e.HasDuration())
	assert.Empty(t, e.DurationText())

	e.Duration = &DateRange{Text: "Jan 2020 - Present", Start: 9}
	assert.True(t, e.HasDuration())
	assert.Equal(t, "Jan 2020 - Present", e.DurationText())
	assert.Equal(t, 27, e.Duration.End())
}

func TestErrorMessages(t *testing.T) {
	var err error = &EmptyExtractionError{Source: "cv.pdf"}
	assert.Contains(t, err.Error(), "cv.pdf")

	var target *EmptyExtractionError
	assert.True(t, errors.As(err, &target))

	assert.Contains(t, (&EmptySectionsError{}).Error(), "no recognizable section headings")
	assert.Contains(t, (&EmptySectionsError{HeadingsSeen: 2}).Error(), "2 heading(s)")
	assert.Contains(t, (&MalformedExperienceBlockError{Index: 3, Line: "Jan 2020 - Present", Message: "empty header"}).Error(), "line 3")
}
