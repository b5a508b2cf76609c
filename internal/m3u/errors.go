package m3u

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned by Pop on a document without parts.
	ErrEmptyDocument = errors.New("playlist document is empty")

	// ErrNotExtended is wrapped by ConfigurationError when a directive is
	// pushed into a classic (non-extended) document.
	ErrNotExtended = errors.New("extended directive in a non-extended playlist")
)

// InvalidNameError reports a command or directive name containing a space.
type InvalidNameError struct {
	Kind string
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%s name %q should not contain spaces", e.Kind, e.Name)
}

// ConfigurationError reports a part that is not allowed by the document's
// mode. Index is the position the offending part would have had.
type ConfigurationError struct {
	Index int
	Part  Part
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("part %d: %v", e.Index, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
