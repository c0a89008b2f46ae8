package tree

import (
	"errors"
	"fmt"
)

// ErrRootExists is returned when SetRoot is called on a tree that already
// has a root.
var ErrRootExists = errors.New("root node already set")

// ErrNodeNotFound is returned by id-keyed operations when the id is not
// present in the tree.
var ErrNodeNotFound = errors.New("node not found")

// ErrRemoveRoot is returned when RemoveSubtree targets the root node.
var ErrRemoveRoot = errors.New("root node cannot be removed")

// ErrMalformedLine is returned when a serialized line matches neither the
// value-line shape "[n]: value" nor the end-of-children marker "[X]".
var ErrMalformedLine = errors.New("malformed line")

// ErrPayloadDecode is returned when a value line's payload text fails to
// decode into T.
var ErrPayloadDecode = errors.New("cannot decode payload")

// ErrUnbalancedMarkers is returned when the end-of-children marker count
// exceeds the value count at any point of the document, or when the two
// totals differ at end of input.
var ErrUnbalancedMarkers = errors.New("unbalanced end-of-children markers")

// ErrIncompatiblePayload is returned by New when the payload type fails the
// encode/decode/equality round-trip check. It signals the type's text
// encoding is lossy and cannot be used with this container.
var ErrIncompatiblePayload = errors.New("payload type does not round-trip through its text encoding")

// ParseError reports a deserialization failure together with the 1-based
// line number where it was detected. It wraps one of ErrMalformedLine,
// ErrPayloadDecode or ErrUnbalancedMarkers.
type ParseError struct {
	Line int    // 1-based line number in the serialized document
	Text string // offending line, empty for end-of-input failures
	Err  error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
