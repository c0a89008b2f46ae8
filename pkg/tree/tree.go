package tree

import "fmt"

// Payload defines the contract a value type must satisfy to be stored in a
// Tree. The text encoding must be a single line (no embedded newlines) and
// must be lossless: DecodeText(EncodeText(x)) must reproduce x. New verifies
// this once for the zero value at construction time, since the interface
// alone cannot prove the round trip is faithful.
type Payload[T any] interface {
	// EncodeText renders the value as a single line of text.
	EncodeText() string
	// DecodeText parses a line previously produced by EncodeText.
	// The receiver is only a namespace; implementations should not
	// depend on its state.
	DecodeText(s string) (T, error)
	// Equal reports whether two values are equivalent.
	Equal(other T) bool
}

// node is the internal representation. Nodes never leak outside the
// package: the parent pointer and child slice are structural bookkeeping
// only, so external code cannot hold a reference that outlives a removal.
type node[T Payload[T]] struct {
	value    T
	parent   *node[T]
	children []*node[T]
	id       int
}

// Tree is an N-ary tree keyed by node ids. The zero value is not usable;
// construct with New or NewWithRoot.
type Tree[T Payload[T]] struct {
	root   *node[T]
	index  map[int]*node[T] // one entry per live node
	nextID int
}

// New creates an empty tree and validates T's text encoding by
// round-tripping the zero value through EncodeText/DecodeText and comparing
// with Equal. It returns ErrIncompatiblePayload if the round trip is not
// faithful.
func New[T Payload[T]]() (*Tree[T], error) {
	var zero T
	decoded, err := zero.DecodeText(zero.EncodeText())
	if err != nil || !zero.Equal(decoded) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIncompatiblePayload, err)
		}
		return nil, ErrIncompatiblePayload
	}
	return &Tree[T]{index: make(map[int]*node[T])}, nil
}

// NewWithRoot creates a tree whose root holds value.
func NewWithRoot[T Payload[T]](value T) (*Tree[T], error) {
	t, err := New[T]()
	if err != nil {
		return nil, err
	}
	if _, err := t.SetRoot(value); err != nil {
		return nil, err
	}
	return t, nil
}

// SetRoot installs value as the root node and returns its id. It fails with
// ErrRootExists if the tree already has a root.
func (t *Tree[T]) SetRoot(value T) (int, error) {
	if t.root != nil {
		return 0, ErrRootExists
	}
	n := &node[T]{value: value, id: t.nextID}
	t.nextID++
	t.root = n
	t.index[n.id] = n
	return n.id, nil
}

// AppendChild adds value as the last child of the node identified by
// parentID and returns the new node's id. Sibling order is insertion order
// and is preserved for the life of the tree.
func (t *Tree[T]) AppendChild(parentID int, value T) (int, error) {
	parent, ok := t.index[parentID]
	if !ok {
		return 0, fmt.Errorf("parent %d: %w", parentID, ErrNodeNotFound)
	}
	n := &node[T]{value: value, parent: parent, id: t.nextID}
	t.nextID++
	parent.children = append(parent.children, n)
	t.index[n.id] = n
	return n.id, nil
}

// RemoveSubtree detaches the node identified by id from its parent and
// releases it together with all of its descendants. Every id in the subtree
// is removed from the index before the call returns; a failed call leaves
// the tree untouched. The root cannot be removed.
func (t *Tree[T]) RemoveSubtree(id int) error {
	n, ok := t.index[id]
	if !ok {
		return fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	if n == t.root {
		return ErrRemoveRoot
	}

	// Explicit worklist rather than recursion so degenerate chain-shaped
	// trees cannot exhaust the stack.
	work := []*node[T]{n}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		delete(t.index, cur.id)
		work = append(work, cur.children...)
	}

	// Detach by identity, not value: sibling values may be equal.
	siblings := n.parent.children
	for i, sib := range siblings {
		if sib == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
	return nil
}

// RootID returns the root's id, or false if the tree has no root yet.
func (t *Tree[T]) RootID() (int, bool) {
	if t.root == nil {
		return 0, false
	}
	return t.root.id, true
}

// ChildrenIDs returns the ids of the node's children in insertion order.
// A leaf yields an empty slice.
func (t *Tree[T]) ChildrenIDs(id int) ([]int, error) {
	n, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	ids := make([]int, 0, len(n.children))
	for _, child := range n.children {
		ids = append(ids, child.id)
	}
	return ids, nil
}

// Value returns the value stored at the node identified by id.
func (t *Tree[T]) Value(id int) (T, error) {
	n, ok := t.index[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return n.value, nil
}

// Len reports the number of live nodes.
func (t *Tree[T]) Len() int {
	return len(t.index)
}
