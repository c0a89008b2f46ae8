package cli

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/bramblekit/bramble/pkg/adapters/file"
	"github.com/bramblekit/bramble/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorylineStore(t *testing.T) {
	t.Run("Memory backend", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storylines.Backend = "memory"

		store, err := OpenStorylineStore(cfg)
		require.NoError(t, err)
		assert.IsType(t, &memory.StorylineStore{}, store)
	})

	t.Run("Loam backend uses configured dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storylines.Backend = "loam"
		cfg.Storylines.Dir = t.TempDir()

		store, err := OpenStorylineStore(cfg)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("Unknown backend", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storylines.Backend = "cassette-tape"

		_, err := OpenStorylineStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cassette-tape")
	})

	t.Run("Encrypt key wraps the store", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storylines.Backend = "memory"
		cfg.Storylines.Options = map[string]any{
			"encrypt_key": base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32)),
		}

		store, err := OpenStorylineStore(cfg)
		require.NoError(t, err)
		_, bare := store.(*memory.StorylineStore)
		assert.False(t, bare, "expected the encryption wrapper, got the bare store")
	})

	t.Run("Rejects short encrypt key", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storylines.Backend = "memory"
		cfg.Storylines.Options = map[string]any{
			"encrypt_key": base64.StdEncoding.EncodeToString([]byte("short")),
		}

		_, err := OpenStorylineStore(cfg)
		require.Error(t, err)
	})
}

func TestOpenSessionStore(t *testing.T) {
	t.Run("Defaults to memory", func(t *testing.T) {
		store, err := OpenSessionStore(config.Default())
		require.NoError(t, err)
		assert.IsType(t, &memory.SessionStore{}, store)
	})

	t.Run("File backend uses configured dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sessions.Backend = "file"
		cfg.Sessions.Dir = t.TempDir()

		store, err := OpenSessionStore(cfg)
		require.NoError(t, err)
		assert.IsType(t, &file.SessionStore{}, store)
	})

	t.Run("Rejects bad redis ttl", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sessions.Backend = "redis"
		cfg.Sessions.Options = map[string]any{"ttl": "not-a-duration"}

		_, err := OpenSessionStore(cfg)
		require.Error(t, err)
	})

	t.Run("Unknown backend", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sessions.Backend = "carrier-pigeon"

		_, err := OpenSessionStore(cfg)
		require.Error(t, err)
	})
}

func TestMaterializeStoryline_FileName(t *testing.T) {
	assert.Equal(t, "quest", displayNameForFile("stories/quest.txt"))
	assert.Equal(t, "quest", displayNameForFile("quest"))
}
