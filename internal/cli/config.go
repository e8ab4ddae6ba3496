package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
)

// envCacheURL overrides cache_url from the config file.
const envCacheURL = "SWITCHPUZZLE_CACHE_URL"

// Config holds settings read from config.toml. Command-line flags override
// every field.
type Config struct {
	Workers  int    `toml:"workers"`   // engine workers; 0 uses GOMAXPROCS
	Format   string `toml:"format"`    // default solve output format
	CacheURL string `toml:"cache_url"` // redis:// URL; empty uses the file cache
	NoCache  bool   `toml:"no_cache"`  // disable caching
	Glyphs   bool   `toml:"glyphs"`    // draw symbols as shapes
	Listen   string `toml:"listen"`    // serve address
}

// loadConfig reads the config file at path. A missing file yields the zero
// Config unless required is set.
func loadConfig(path string, required bool) (Config, error) {
	var cfg Config
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
			cfg = Config{}
		case errors.Is(err, fs.ErrNotExist):
			return Config{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", path)
		case err != nil:
			return Config{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse config %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
			}
		}
	}
	if url := os.Getenv(envCacheURL); url != "" {
		cfg.CacheURL = url
	}
	return cfg, nil
}

// configPath returns the config file path using XDG standard
// (~/.config/switchpuzzle/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
