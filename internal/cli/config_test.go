package cli

import (
	"os"
	"path/filepath"
	"testing"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(envCacheURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
workers   = 3
format    = "json"
glyphs    = true
listen    = ":9090"
cache_url = "redis://localhost:6379/0"
`)

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	want := Config{Workers: 3, Format: "json", Glyphs: true, Listen: ":9090", CacheURL: "redis://localhost:6379/0"}
	if cfg != want {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv(envCacheURL, "")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("optional missing config should not fail: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("loadConfig() = %+v, want zero config", cfg)
	}

	_, err = loadConfig(path, true)
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("required missing config: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(envCacheURL, "")
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "workers = [\n")
	if _, err := loadConfig(bad, true); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("syntax error: got %v, want INVALID_INPUT", err)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	writeFile(t, unknown, "colour = \"red\"\n")
	if _, err := loadConfig(unknown, true); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("unknown key: got %v, want INVALID_INPUT", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv(envCacheURL, "redis://cache:6379/1")
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "cache_url = \"redis://localhost:6379/0\"\n")

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.CacheURL != "redis://cache:6379/1" {
		t.Errorf("CacheURL = %q, want env override", cfg.CacheURL)
	}
}
