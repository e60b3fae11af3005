// Package config loads the server's TOML configuration and can watch it for
// live edits so a running server picks up changes without a restart.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RenderConfig holds the defaults applied when an HTTP request or CLI
// invocation omits dpi/format.
type RenderConfig struct {
	DefaultDPI    int    `toml:"default_dpi"`
	DefaultFormat string `toml:"default_format"` // "pwg" or "urf"
}

// ServerConfig holds the HTTP listener's settings.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	MaxConcurrent  int    `toml:"max_concurrent"`
	RequireIDToken bool   `toml:"require_id_token"`
}

// RasterizerConfig holds the rasterizer back-end's settings.
type RasterizerConfig struct {
	ChromeBin string `toml:"chrome_bin"`
}

// Config is the top-level configuration document.
type Config struct {
	Render     RenderConfig     `toml:"render"`
	Server     ServerConfig     `toml:"server"`
	Rasterizer RasterizerConfig `toml:"rasterizer"`
}

func defaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			DefaultDPI:    300,
			DefaultFormat: "pwg",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxConcurrent: 8,
		},
	}
}

// Load reads path as TOML, falling back to defaults for fields it omits. A
// missing file is not an error — it returns the defaults untouched, so the
// binary runs standalone without requiring a config file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
