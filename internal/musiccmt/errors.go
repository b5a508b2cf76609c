package musiccmt

import "fmt"

// MalformedBlockError reports a block that cannot be committed, such as a
// track reference that is never followed by a title line.
type MalformedBlockError struct {
	ID     string
	Line   int
	Reason string
}

func (e *MalformedBlockError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed block at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed block %q at line %d: %s", e.ID, e.Line, e.Reason)
}
