// Package cli implements the bramble commands on top of the configured
// store backends.
package cli

import (
	"fmt"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/bramblekit/bramble/pkg/adapters/file"
	loamAdapter "github.com/bramblekit/bramble/pkg/adapters/loam"
	"github.com/bramblekit/bramble/pkg/adapters/memory"
	redisAdapter "github.com/bramblekit/bramble/pkg/adapters/redis"
	"github.com/bramblekit/bramble/pkg/persistence/middleware"
	"github.com/bramblekit/bramble/pkg/ports"
)

// OpenStorylineStore builds the storyline store selected by the
// configuration, wrapping it with at-rest encryption when an encrypt_key
// is configured. The loam archive is the default backend.
func OpenStorylineStore(cfg *config.Config) (ports.StorylineStore, error) {
	b := cfg.Storylines

	var store ports.StorylineStore
	var err error
	switch b.Backend {
	case "", "loam":
		dir := b.Dir
		if dir == "" {
			dir = "storylines"
		}
		store, err = loamAdapter.Open(dir)
	case "memory":
		store = memory.NewStorylineStore()
	case "redis":
		var opts config.RedisOptions
		opts, err = config.DecodeRedisOptions(b)
		if err == nil {
			store = redisAdapter.NewStorylineStore(opts.Addr, opts.Password, opts.DB)
		}
	default:
		return nil, fmt.Errorf("unknown storyline backend %q (want loam, memory or redis)", b.Backend)
	}
	if err != nil {
		return nil, err
	}

	encOpts, err := config.DecodeEncryptionOptions(b)
	if err != nil {
		return nil, err
	}
	active, fallbacks, err := encOpts.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		})
		store = mw(store)
	}
	return store, nil
}

// OpenSessionStore builds the session store selected by the configuration.
// Sessions are held in memory unless configured otherwise.
func OpenSessionStore(cfg *config.Config) (ports.SessionStore, error) {
	b := cfg.Sessions
	switch b.Backend {
	case "", "memory":
		return memory.NewSessionStore(), nil
	case "file":
		return file.NewSessionStore(b.Dir), nil
	case "redis":
		opts, err := config.DecodeRedisOptions(b)
		if err != nil {
			return nil, err
		}
		ttl, err := opts.SessionTTL()
		if err != nil {
			return nil, err
		}
		var sessionOpts []redisAdapter.SessionOption
		if ttl > 0 {
			sessionOpts = append(sessionOpts, redisAdapter.WithSessionTTL(ttl))
		}
		return redisAdapter.NewSessionStore(opts.Addr, opts.Password, opts.DB, sessionOpts...), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q (want memory, file or redis)", b.Backend)
	}
}
