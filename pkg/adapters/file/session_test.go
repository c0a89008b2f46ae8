package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	porttests "github.com/bramblekit/bramble/pkg/ports/tests"
	"github.com/bramblekit/bramble/pkg/story"
)

func TestSessionStoreContract(t *testing.T) {
	porttests.RunSessionStoreContract(t, NewSessionStore(t.TempDir()))
}

func TestDefaultBasePath(t *testing.T) {
	store := NewSessionStore("")
	if store.BasePath != filepath.Join(".bramble", "sessions") {
		t.Errorf("unexpected default base path %q", store.BasePath)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)
	ctx := context.Background()

	sess := &story.Session{Storyline: "quest", Path: []int{1, 2}}
	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, "sess-overwrite", sess); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected exactly one session file, found %v", names)
	}
}

func TestSave_EmptyID(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	if err := store.Save(context.Background(), "", &story.Session{}); err == nil {
		t.Error("expected error for empty session id")
	}
}
