// Package rendering turns a classified résumé into a format-neutral document tree.
package rendering

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/types"
)

// groupMembers lists the sections rendered under each group, in order
var groupMembers = map[config.SectionGroup][]types.SectionID{
	config.GroupSummary:    {types.SectionSummary},
	config.GroupSkills:     {types.SectionSkills},
	config.GroupEducation:  {types.SectionEducation, types.SectionCertification, types.SectionTraining},
	config.GroupExperience: {types.SectionExperience},
}

// Render builds the document tree for one résumé. It never fails: a nil model
// renders as a title-only document. Experience is rendered from entries, not
// from the raw experience lines.
func Render(candidate types.Candidate, model *types.SectionModel, entries []types.ExperienceEntry, style config.Style) *types.FormattedDocument {
	title := candidate.FullName
	if style.TitleCaseName {
		title = TitleName(title)
	}

	doc := &types.FormattedDocument{Title: title}
	doc.Nodes = append(doc.Nodes, types.CenteredTitle(title))
	if style.SpacerAfterTitle {
		doc.Nodes = append(doc.Nodes, types.Spacer())
	}

	for _, group := range config.Groups {
		sec := style.Section(group)

		var body []types.Node
		if group == config.GroupExperience {
			body = renderEntries(entries, sec, style.BulletGlyph)
		} else {
			for _, id := range groupMembers[group] {
				for _, line := range model.Lines(id) {
					body = append(body, listNode(line, sec, style.BulletGlyph))
				}
			}
		}

		if len(body) == 0 && !style.EmitEmptySections {
			continue
		}

		doc.Nodes = append(doc.Nodes, types.Heading(sec.Heading))
		doc.Nodes = append(doc.Nodes, body...)
		// experience entries carry their own trailing spacer
		if style.SpacerAfterSection && group != config.GroupExperience {
			doc.Nodes = append(doc.Nodes, types.Spacer())
		}
	}

	return doc
}

// listNode renders one section line in the group's list style
func listNode(line string, sec config.SectionStyle, glyph string) types.Node {
	switch sec.List {
	case config.ListBulletTab:
		return types.Bullet(line, glyph, "\t", sec.Indent)
	case config.ListBulletInline:
		return types.Bullet(line, glyph, " ", sec.Indent)
	default:
		return types.PlainParagraph(line)
	}
}

func renderEntries(entries []types.ExperienceEntry, sec config.SectionStyle, glyph string) []types.Node {
	separator := " "
	if sec.List == config.ListBulletTab {
		separator = "\t"
	}

	var nodes []types.Node
	for _, e := range entries {
		if e.HasDuration() {
			nodes = append(nodes, types.TabAlignedLine(e.Header, e.DurationText()))
		} else {
			nodes = append(nodes, types.PlainParagraph(e.Header))
		}
		if e.Subtitle != "" {
			nodes = append(nodes, types.PlainParagraph(e.Subtitle))
		}
		for _, b := range e.Bullets {
			nodes = append(nodes, types.Bullet(b, glyph, separator, sec.Indent))
		}
		nodes = append(nodes, types.Spacer())
	}
	return nodes
}

// TitleName title-cases a personal name word by word ("JANE DOE" -> "Jane Doe")
func TitleName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.English).String(name)
}
