// Command gen-sample seeds a storyline archive with a small demo
// adventure, so a fresh checkout has something to play immediately.
package main

import (
	"context"
	"fmt"
	"os"

	loamAdapter "github.com/bramblekit/bramble/pkg/adapters/loam"
	"github.com/bramblekit/bramble/pkg/story"
)

func main() {
	targetDir := "storylines"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample storyline in: %s\n", targetDir)

	archive, err := loamAdapter.Open(targetDir)
	check(err)

	sl, err := story.NewStoryline()
	check(err)

	root, err := sl.SetRoot(story.Beat{Outcome: "You wake on a cold beach. The wreck of your ship smolders offshore."})
	check(err)

	inland, err := sl.AppendChild(root, story.Beat{Action: "Head inland", Outcome: "A narrow trail climbs into dark pines."})
	check(err)
	shore, err := sl.AppendChild(root, story.Beat{Action: "Search the shore", Outcome: "Among the driftwood you find a sealed chest."})
	check(err)

	_, err = sl.AppendChild(inland, story.Beat{Action: "Follow the trail", Outcome: "The trail ends at a ranger cabin. You are safe."})
	check(err)
	_, err = sl.AppendChild(inland, story.Beat{Action: "Leave the trail", Outcome: "You wander in circles until nightfall. The forest keeps you."})
	check(err)
	_, err = sl.AppendChild(shore, story.Beat{Action: "Open the chest", Outcome: "Flares and rations. A passing trawler spots your signal by dusk."})
	check(err)

	ctx := context.TODO()
	check(archive.Save(ctx, "castaway", sl.Serialize()))

	fmt.Println("Saved storyline 'castaway'. Play it with: bramble play castaway")
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
