// Package story defines the narrative domain carried by the tree core: the
// Beat payload type with its single-line text codec, the Storyline
// convenience wrappers, and the play-session state persisted by stores.
package story
