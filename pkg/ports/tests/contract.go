// Package tests provides reusable contract suites that verify adapter
// compliance with the ports interfaces.
package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
)

// RunStorylineStoreContract verifies an adapter complies with
// ports.StorylineStore.
func RunStorylineStoreContract(t *testing.T, store ports.StorylineStore) {
	t.Helper()
	ctx := context.Background()

	docs := map[string]string{
		"meadow": "[0]: action: \"\" outcome: \"A meadow.\"\n[X]\n",
		"cavern": "[0]: action: \"\" outcome: \"A cavern.\"\n[X]\n",
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		for name, text := range docs {
			if err := store.Save(ctx, name, text); err != nil {
				t.Fatalf("Save(%s) failed: %v", name, err)
			}
			got, err := store.Load(ctx, name)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", name, err)
			}
			if got != text {
				t.Errorf("Load(%s): got %q, want %q", name, got, text)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-storyline")
		if !errors.Is(err, story.ErrStorylineNotFound) {
			t.Errorf("expected ErrStorylineNotFound, got %v", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := "[0]: action: \"\" outcome: \"A wider meadow.\"\n[X]\n"
		if err := store.Save(ctx, "meadow", updated); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx, "meadow")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got != updated {
			t.Errorf("expected overwritten text, got %q", got)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("List not sorted: %v", names)
		}
		lookup := make(map[string]bool, len(names))
		for _, n := range names {
			lookup[n] = true
		}
		for name := range docs {
			if !lookup[name] {
				t.Errorf("storyline %s missing from list %v", name, names)
			}
		}
	})
}

// RunSessionStoreContract verifies an adapter complies with
// ports.SessionStore.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	sess := &story.Session{Storyline: "meadow", Path: []int{1, 3, 2}}

	t.Run("SaveAndLoad", func(t *testing.T) {
		if err := store.Save(ctx, "sess-1", sess); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx, "sess-1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got.Storyline != sess.Storyline || len(got.Path) != len(sess.Path) {
			t.Errorf("loaded session mismatch: got %+v, want %+v", got, sess)
		}
		for i := range sess.Path {
			if got.Path[i] != sess.Path[i] {
				t.Errorf("path[%d]: got %d, want %d", i, got.Path[i], sess.Path[i])
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-session")
		if !errors.Is(err, story.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == "sess-1" {
				found = true
			}
		}
		if !found {
			t.Errorf("session sess-1 missing from list %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "sess-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "sess-1"); !errors.Is(err, story.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}
