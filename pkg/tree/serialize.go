package tree

import (
	"fmt"
	"strings"
)

// endMarker is the literal line closing a node's child list.
const endMarker = "[X]"

// Serialize renders the tree as line-oriented text. Each value becomes one
// line "[n]: <encoded>" where n is a cosmetic 0-based counter over value
// lines (not the node's id), and each end-of-children marker becomes the
// literal line "[X]". An empty tree serializes to the empty string.
func (t *Tree[T]) Serialize() string {
	var b strings.Builder
	count := 0
	for _, e := range t.linearize() {
		if e.end {
			b.WriteString(endMarker)
			b.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&b, "[%d]: %s\n", count, e.value.EncodeText())
		count++
	}
	return b.String()
}

// Deserialize reconstructs a tree from text produced by Serialize. The
// resulting tree is structurally identical to the source but carries
// freshly assigned ids in traversal order.
//
// Errors are reported as a *ParseError wrapping ErrMalformedLine,
// ErrPayloadDecode or ErrUnbalancedMarkers; no partially built tree is ever
// returned.
func Deserialize[T Payload[T]](serialized string) (*Tree[T], error) {
	var (
		zero    T
		entries []entry[T]
		values  int
		markers int
		lineNo  int
	)

	// Split lines by hand: bufio.Scanner caps the token size, and payload
	// lines have no length limit.
	for rest := serialized; rest != ""; {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		lineNo++

		if line == endMarker {
			markers++
			// Every node owns exactly one marker, so markers may
			// never outnumber the values seen so far.
			if markers > values {
				return nil, &ParseError{Line: lineNo, Err: ErrUnbalancedMarkers}
			}
			entries = append(entries, entry[T]{end: true})
			continue
		}

		payload, ok := cutValueLine(line)
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line, Err: ErrMalformedLine}
		}
		value, err := zero.DecodeText(payload)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %v", ErrPayloadDecode, err)}
		}
		values++
		entries = append(entries, entry[T]{value: value})
	}
	if values != markers {
		return nil, &ParseError{Line: lineNo, Err: ErrUnbalancedMarkers}
	}

	return delinearize(entries)
}

// cutValueLine extracts the payload text from a value line of the shape
// "[<anything>]: <rest>". The sequence index between the brackets is
// cosmetic and ignored. The remainder of the line is taken whole so that
// payload encodings containing spaces survive.
func cutValueLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false
	}
	i := strings.Index(line, "]: ")
	if i < 0 {
		return "", false
	}
	return line[i+len("]: "):], true
}

// DebugString renders the linearized form for debugging, e.g.
// "[ a, b, X, X ]" where X stands for an end-of-children marker.
func (t *Tree[T]) DebugString() string {
	entries := t.linearize()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.end {
			parts = append(parts, "X")
			continue
		}
		parts = append(parts, e.value.EncodeText())
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}
