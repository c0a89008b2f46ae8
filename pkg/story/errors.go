package story

import "errors"

// ErrStorylineNotFound is returned when a storyline name cannot be found in
// the store.
var ErrStorylineNotFound = errors.New("storyline not found")

// ErrSessionNotFound is returned when a play-session ID cannot be found in
// the store.
var ErrSessionNotFound = errors.New("session not found")
