package dsl

import (
	"fmt"

	"github.com/bramblekit/bramble/pkg/story"
)

// NodeBuilder provides a fluent API for growing the tree under one node.
type NodeBuilder struct {
	builder *Builder
	id      int
}

// Choice appends a child beat under this node: action is the label the
// player picks, outcome the scene it leads to. It returns the child's
// builder so chains can descend the branch.
func (n *NodeBuilder) Choice(action, outcome string) *NodeBuilder {
	if n.builder.err != nil {
		return &NodeBuilder{builder: n.builder}
	}
	beat := story.Beat{Action: action, Outcome: outcome}
	if err := beat.Validate(); err != nil {
		n.builder.err = fmt.Errorf("choice %q: %w", action, err)
		return &NodeBuilder{builder: n.builder}
	}
	id, err := n.builder.sl.AppendChild(n.id, beat)
	if err != nil {
		n.builder.err = fmt.Errorf("appending %q: %w", action, err)
		return &NodeBuilder{builder: n.builder}
	}
	return &NodeBuilder{builder: n.builder, id: id}
}

// ID returns the node's identifier in the underlying storyline.
func (n *NodeBuilder) ID() int {
	return n.id
}
