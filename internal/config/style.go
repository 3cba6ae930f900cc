package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ListStyle selects how a section's lines are laid out
type ListStyle string

const (
	ListPlain        ListStyle = "plain"
	ListBulletInline ListStyle = "bullet-inline" // glyph followed by a space
	ListBulletTab    ListStyle = "bullet-tab"    // glyph followed by a tab
)

// SectionGroup names one rendered block; education, certification and
// training share the education group.
type SectionGroup string

const (
	GroupSummary    SectionGroup = "summary"
	GroupSkills     SectionGroup = "skills"
	GroupEducation  SectionGroup = "education"
	GroupExperience SectionGroup = "experience"
)

// Groups lists the rendered blocks in document order
var Groups = []SectionGroup{GroupSummary, GroupSkills, GroupEducation, GroupExperience}

// SectionStyle controls the heading and list layout of one group
type SectionStyle struct {
	Heading string    `json:"heading" yaml:"heading" toml:"heading" validate:"required"`
	List    ListStyle `json:"list" yaml:"list" toml:"list" validate:"oneof=plain bullet-inline bullet-tab"`
	Indent  int       `json:"indent" yaml:"indent" toml:"indent" validate:"gte=0,lte=8"`
}

// SectionStyles holds one SectionStyle per group
type SectionStyles struct {
	Summary    SectionStyle `json:"summary" yaml:"summary" toml:"summary"`
	Skills     SectionStyle `json:"skills" yaml:"skills" toml:"skills"`
	Education  SectionStyle `json:"education" yaml:"education" toml:"education"`
	Experience SectionStyle `json:"experience" yaml:"experience" toml:"experience"`
}

// Style is the immutable layout configuration handed to the renderer and writers.
// It is passed by value; nothing mutates it after loading.
type Style struct {
	FontFamily         string        `json:"font_family" yaml:"font_family" toml:"font_family" validate:"required"`
	FontSizePt         float64       `json:"font_size_pt" yaml:"font_size_pt" toml:"font_size_pt" validate:"gt=0,lte=72"`
	TitleSizePt        float64       `json:"title_size_pt" yaml:"title_size_pt" toml:"title_size_pt" validate:"gt=0,lte=72"`
	TitleBold          bool          `json:"title_bold" yaml:"title_bold" toml:"title_bold"`
	TitleCaseName      bool          `json:"title_case_name" yaml:"title_case_name" toml:"title_case_name"`
	BulletGlyph        string        `json:"bullet_glyph" yaml:"bullet_glyph" toml:"bullet_glyph" validate:"required"`
	TabStopPt          float64       `json:"tab_stop_pt" yaml:"tab_stop_pt" toml:"tab_stop_pt" validate:"gt=0,lte=1440"`
	LineSpacing        float64       `json:"line_spacing" yaml:"line_spacing" toml:"line_spacing" validate:"gte=1,lte=3"`
	SpacerAfterTitle   bool          `json:"spacer_after_title" yaml:"spacer_after_title" toml:"spacer_after_title"`
	SpacerAfterSection bool          `json:"spacer_after_section" yaml:"spacer_after_section" toml:"spacer_after_section"`
	EmitEmptySections  bool          `json:"emit_empty_sections" yaml:"emit_empty_sections" toml:"emit_empty_sections"`
	Sections           SectionStyles `json:"sections" yaml:"sections" toml:"sections"`
}

// DefaultStyle reproduces the house look: Times New Roman 10pt, an 11pt bold
// title followed by a blank line, inline bullets, a blank line closing each
// section and durations right-aligned at 6.5 inches.
func DefaultStyle() Style {
	return Style{
		FontFamily:         "Times New Roman",
		FontSizePt:         10,
		TitleSizePt:        11,
		TitleBold:          true,
		TitleCaseName:      true,
		BulletGlyph:        "•",
		TabStopPt:          468,
		LineSpacing:        1.0,
		SpacerAfterTitle:   true,
		SpacerAfterSection: true,
		Sections: SectionStyles{
			Summary:    SectionStyle{Heading: "Summary", List: ListBulletInline},
			Skills:     SectionStyle{Heading: "Technical Skills", List: ListPlain},
			Education:  SectionStyle{Heading: "Education, Certification & Training", List: ListBulletInline, Indent: 1},
			Experience: SectionStyle{Heading: "Professional Experience", List: ListBulletInline, Indent: 1},
		},
	}
}

// Section returns the style of group g; unknown groups get the summary style
func (s Style) Section(g SectionGroup) SectionStyle {
	switch g {
	case GroupSkills:
		return s.Sections.Skills
	case GroupEducation:
		return s.Sections.Education
	case GroupExperience:
		return s.Sections.Experience
	default:
		return s.Sections.Summary
	}
}

// LoadStyle reads a style file over DefaultStyle, so partial files are allowed.
// An empty path returns the default style.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	if err := decodeFile(path, &style); err != nil {
		return Style{}, err
	}
	if err := style.Validate(); err != nil {
		return Style{}, err
	}
	return style, nil
}

// StyleError lists the fields of a Style that failed validation
type StyleError struct {
	Fields []string
	Cause  error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("invalid style: %s", strings.Join(e.Fields, "; "))
}

func (e *StyleError) Unwrap() error {
	return e.Cause
}

// Validate checks Style against its validation tags
func (s Style) Validate() error {
	validate := validator.New()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &StyleError{Fields: []string{err.Error()}, Cause: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), describeTag(fe)))
	}
	return &StyleError{Fields: fields, Cause: err}
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
}
