package dsl

import (
	"testing"
)

func TestBuilder_SimpleStoryline(t *testing.T) {
	b := New()

	root := b.Root("You stand before two doors.")
	red := root.Choice("Open the red door", "A hallway of mirrors.")
	red.Choice("Walk on", "You step into daylight. Freedom.")
	root.Choice("Open the blue door", "A wall of water crashes in.")

	sl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if sl.Len() != 4 {
		t.Errorf("Expected 4 nodes, got %d", sl.Len())
	}

	rootID, ok := sl.RootID()
	if !ok {
		t.Fatal("Built storyline has no root")
	}
	beat, err := sl.Value(rootID)
	if err != nil {
		t.Fatalf("Value(root) failed: %v", err)
	}
	if beat.Outcome != "You stand before two doors." {
		t.Errorf("Unexpected root outcome %q", beat.Outcome)
	}

	children, err := sl.ChildrenIDs(rootID)
	if err != nil {
		t.Fatalf("ChildrenIDs failed: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("Expected 2 choices under the root, got %d", len(children))
	}
	first, err := sl.Value(children[0])
	if err != nil {
		t.Fatalf("Value(child) failed: %v", err)
	}
	if first.Action != "Open the red door" {
		t.Errorf("Expected first choice to keep authoring order, got %q", first.Action)
	}
}

func TestBuilder_RoundTripsThroughText(t *testing.T) {
	b := New()
	root := b.Root("A quiet library.")
	root.Choice("Pull the odd book", "A shelf swings open.")

	sl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	text := sl.Serialize()
	if text == "" {
		t.Fatal("Serialize returned empty text")
	}
}

func TestBuilder_DoubleRootFails(t *testing.T) {
	b := New()
	b.Root("First opening.")
	b.Root("Second opening.")

	if _, err := b.Build(); err == nil {
		t.Error("Expected error for a second root")
	}
}

func TestBuilder_InvalidBeatFails(t *testing.T) {
	b := New()
	root := b.Root("A cliff edge.")
	root.Choice("Shout \"hello\"", "Only echoes answer.")

	if _, err := b.Build(); err == nil {
		t.Error("Expected error for a beat containing double quotes")
	}
}

func TestBuilder_ErrorShortCircuits(t *testing.T) {
	b := New()
	b.Root("First opening.")
	bad := b.Root("Second opening.")

	// Chaining off a failed builder must not panic or extend the tree.
	bad.Choice("Continue", "Nowhere.").Choice("Deeper", "Still nowhere.")

	if _, err := b.Build(); err == nil {
		t.Error("Expected the original error to survive chained calls")
	}
}
