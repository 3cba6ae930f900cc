package parsing

import "fmt"

// RuleError reports an unusable entry in a heading rule table
type RuleError struct {
	Index   int
	Name    string
	Message string
}

func (e *RuleError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("heading rule %d (%s): %s", e.Index, e.Name, e.Message)
	}
	return fmt.Sprintf("heading rules: %s", e.Message)
}
