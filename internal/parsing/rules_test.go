package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

func TestDefaultRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultRules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"summary", "skills", "education", "certification", "training", "experience"}, names)
	require.NoError(t, ValidateRules(DefaultRules))
}

func TestHeadingKey(t *testing.T) {
	assert.Equal(t, "technical skills", HeadingKey("  Technical Skills:  "))
	assert.Equal(t, "summary", HeadingKey("SUMMARY"))
	assert.Equal(t, "", HeadingKey(":"))
}

func TestHasWord(t *testing.T) {
	m := HasWord("experience")
	assert.True(t, m("work experience"))
	assert.True(t, m("experience/projects"))
	assert.False(t, m("experienced engineer."))
	assert.False(t, m("inexperience"))
	assert.False(t, m("experiences"))
}

func TestHasWordPrefix(t *testing.T) {
	m := HasWordPrefix("education")
	assert.True(t, m("education"))
	assert.True(t, m("educational qualifications"))
	assert.True(t, m("academic/educational background"))
	assert.False(t, m("reeducation"))
	assert.False(t, m("skills"))
}

func TestValidateRules(t *testing.T) {
	var target *RuleError

	err := ValidateRules(nil)
	require.ErrorAs(t, err, &target)

	err = ValidateRules([]HeadingRule{{Name: "broken", Section: types.SectionSkills}})
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "broken")

	err = ValidateRules([]HeadingRule{{Name: "hobbies", Section: "hobbies", Match: Equals("hobbies")}})
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "unknown section")
}
