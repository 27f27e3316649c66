// Package rgconfig holds the TOML-backed configuration surface shared by
// cmd/redhorsegen and rgserver.
package rgconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level settings document. Default returns the values used
// when no config file is given.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig configures the build-record cache (rgcache.Store).
type CacheConfig struct {
	// Path is the sqlite database file holding cached compiled tables.
	Path string `toml:"path"`
}

// ServerConfig configures the optional grammar-compilation HTTP service
// (rgserver).
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// JWTSecret signs and verifies bearer tokens issued to API clients.
	JWTSecret string `toml:"jwt_secret"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Path: "redhorse-cache.db"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads and parses a TOML config file at path, starting from Default()
// so an incomplete file only overrides the keys it sets.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
