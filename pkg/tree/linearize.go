package tree

// entry is one element of the linearized form: either a node value or an
// end-of-children marker closing the most recently opened child list.
type entry[T Payload[T]] struct {
	value T
	end   bool
}

// linearize flattens the tree into a pre-order sequence where each node
// contributes its value followed, after all of its descendants, by one
// end-of-children marker. The marker placement is what makes delinearize
// unambiguous: a node's marker appears strictly after the markers of its
// descendants and before anything belonging to its later siblings.
//
// Iterative on purpose; see RemoveSubtree.
func (t *Tree[T]) linearize() []entry[T] {
	var out []entry[T]
	if t.root == nil {
		return out
	}
	stack := []*node[T]{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			out = append(out, entry[T]{end: true})
			continue
		}
		out = append(out, entry[T]{value: cur.value})
		// The nil sentinel closes cur's child list once all children
		// above it on the stack have been processed.
		stack = append(stack, nil)
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return out
}

// delinearize rebuilds a tree from a linearized sequence using a stack of
// pending parent ids. Ids are assigned fresh in traversal order; the result
// is structurally identical to the source tree but renumbered.
func delinearize[T Payload[T]](entries []entry[T]) (*Tree[T], error) {
	t, err := New[T]()
	if err != nil {
		return nil, err
	}
	var parents []int
	for _, e := range entries {
		if e.end {
			if len(parents) == 0 {
				return nil, ErrUnbalancedMarkers
			}
			parents = parents[:len(parents)-1]
			continue
		}
		if t.root == nil {
			id, err := t.SetRoot(e.value)
			if err != nil {
				return nil, err
			}
			parents = append(parents, id)
			continue
		}
		if len(parents) == 0 {
			// A second root: the previous root's child list was
			// already closed.
			return nil, ErrUnbalancedMarkers
		}
		id, err := t.AppendChild(parents[len(parents)-1], e.value)
		if err != nil {
			return nil, err
		}
		parents = append(parents, id)
	}
	return t, nil
}
