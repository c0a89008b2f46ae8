// Package middleware provides wrappers that add behavior to storyline
// stores, such as at-rest encryption for private drafts.
package middleware

import "github.com/bramblekit/bramble/pkg/ports"

// Middleware allows wrapping a StorylineStore to add behavior.
type Middleware func(ports.StorylineStore) ports.StorylineStore
