package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bramblekit/bramble/pkg/adapters/redis"
	"github.com/bramblekit/bramble/pkg/ports/tests"
	"github.com/bramblekit/bramble/pkg/story"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestSessionStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	tests.RunSessionStoreContract(t, redis.NewSessionStoreFromClient(client))
}

func TestStorylineStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	tests.RunStorylineStoreContract(t, redis.NewStorylineStoreFromClient(client))
}

func TestSessionStore_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)

	store := redis.NewSessionStoreFromClient(client, redis.WithSessionTTL(1*time.Second))
	ctx := context.Background()

	sess := &story.Session{Storyline: "demo", Path: []int{1, 2}}
	require.NoError(t, store.Save(ctx, "sess-ttl", sess))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "sess-ttl")

	// Fast forward past the TTL: both the key and the index entry are gone.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "sess-ttl")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "sess-ttl")
}

func TestStorylineStore_Delete(t *testing.T) {
	_, client := newTestClient(t)
	store := redis.NewStorylineStoreFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "gone", "[0]: action: \"\" outcome: \"x\"\n[X]\n"))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.Load(ctx, "gone")
	assert.ErrorIs(t, err, story.ErrStorylineNotFound)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "gone")
}
