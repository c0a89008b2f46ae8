/*
Package dsl provides a fluent builder for constructing storylines in Go.

It lets developers author branching stories with type-safe chained calls
instead of hand-writing the serialized text format. This is particularly
useful for generated content, unit test fixtures, and leveraging IDE
autocompletion.

Example usage:

	package main

	import (
		"log"

		"github.com/bramblekit/bramble/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		root := b.Root("You stand before two doors.")
		red := root.Choice("Open the red door", "A hallway of mirrors.")
		red.Choice("Walk on", "You step into daylight. Freedom.")
		root.Choice("Open the blue door", "A wall of water crashes in.")

		sl, err := b.Build()
		if err != nil {
			log.Fatal(err)
		}
		// sl is a *story.Storyline ready to play, serialize or store.
		_ = sl
	}
*/
package dsl
