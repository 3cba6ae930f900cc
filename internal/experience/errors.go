// Package experience segments the experience section into job entries.
package experience

import "fmt"

// ModeError represents an unrecognised subtitle mode name
type ModeError struct {
	Value string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("unknown subtitle mode %q (want heuristic, always or never)", e.Value)
}
