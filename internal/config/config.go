// Package config loads the bramble.yaml project configuration.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the project configuration when no
// --config flag is given.
const DefaultPath = "bramble.yaml"

// Config is the root of bramble.yaml.
type Config struct {
	Storylines BackendConfig `yaml:"storylines"`
	Sessions   BackendConfig `yaml:"sessions"`
	Render     RenderConfig  `yaml:"render"`
	LogLevel   string        `yaml:"log_level"`
}

// BackendConfig selects and configures a store backend. Options carries
// backend-specific keys decoded on demand.
type BackendConfig struct {
	Backend string         `yaml:"backend"`
	Dir     string         `yaml:"dir"`
	Options map[string]any `yaml:"options"`
}

// RenderConfig controls terminal presentation.
type RenderConfig struct {
	Markdown bool `yaml:"markdown"`
	Banner   bool `yaml:"banner"`
}

// RedisOptions are the options understood by the redis backends.
type RedisOptions struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      string `mapstructure:"ttl"`
}

// SessionTTL parses the configured TTL. Empty means no expiration.
func (o RedisOptions) SessionTTL() (time.Duration, error) {
	if o.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(o.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", o.TTL, err)
	}
	return d, nil
}

// Default returns the configuration used when no bramble.yaml exists:
// storylines archived under ./storylines, ephemeral sessions, markdown
// rendering on.
func Default() *Config {
	return &Config{
		Storylines: BackendConfig{Backend: "loam", Dir: "storylines"},
		Sessions:   BackendConfig{Backend: "memory"},
		Render:     RenderConfig{Markdown: true, Banner: true},
		LogLevel:   "info",
	}
}

// Load reads the configuration at path. A missing file is not an error:
// the defaults apply, matching the zero-setup experience of running in a
// fresh directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// EncryptionOptions enable at-rest encryption of stored storylines.
// Keys are base64-encoded 32-byte AES-256 keys.
type EncryptionOptions struct {
	EncryptKey   string   `mapstructure:"encrypt_key"`
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// Keys decodes the configured keys. A missing encrypt_key returns nil
// active key, meaning encryption is off.
func (o EncryptionOptions) Keys() (active []byte, fallbacks [][]byte, err error) {
	if o.EncryptKey == "" {
		return nil, nil, nil
	}
	active, err = decodeKey(o.EncryptKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid encrypt_key: %w", err)
	}
	for i, k := range o.FallbackKeys {
		dec, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fallback_keys[%d]: %w", i, err)
		}
		fallbacks = append(fallbacks, dec)
	}
	return active, fallbacks, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// DecodeEncryptionOptions extracts the encryption options from a
// backend's Options map.
func DecodeEncryptionOptions(b BackendConfig) (EncryptionOptions, error) {
	var opts EncryptionOptions
	if b.Options == nil {
		return opts, nil
	}
	if err := mapstructure.Decode(b.Options, &opts); err != nil {
		return EncryptionOptions{}, fmt.Errorf("invalid encryption options: %w", err)
	}
	return opts, nil
}

// DecodeRedisOptions extracts the redis options from a backend's Options
// map.
func DecodeRedisOptions(b BackendConfig) (RedisOptions, error) {
	opts := RedisOptions{Addr: "localhost:6379"}
	if b.Options == nil {
		return opts, nil
	}
	if err := mapstructure.Decode(b.Options, &opts); err != nil {
		return RedisOptions{}, fmt.Errorf("invalid redis options: %w", err)
	}
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	return opts, nil
}
