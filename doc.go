/*
Package bramble is a branching-storyline engine for interactive fiction in
terminals, services, and agent tooling.

A storyline is a tree of beats: every node carries the narrative outcome of
reaching it and the action label that led there, and each path from root to
leaf is one possible telling. Storylines serialize to a line-oriented text
format that survives a round trip exactly, so they can be stored as plain
documents, diffed, and hand-edited.

# Concept

The tree container in pkg/tree is generic and payload-agnostic: it manages
identity (stable int ids), structure, and the serialized form, while the
payload type defines its own single-line text codec. pkg/story binds the
container to story beats, and the adapters expose the result over whatever
surface is needed: in-memory, Redis, a Loam document archive, REST, or MCP.

# Usage

The Library facade opens a storyline archive on disk and plays from it.

	package main

	import (
		"context"
		"log"

		"github.com/bramblekit/bramble"
	)

	func main() {
		lib, err := bramble.New("./stories")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		names, err := lib.List(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			log.Println("available:", name)
		}

		// Interactive loop on stdin/stdout.
		if err := lib.Play(ctx, names[0]); err != nil {
			log.Fatal(err)
		}
	}

For finer control, use pkg/story and pkg/runner directly.
*/
package bramble
