package config

import (
	"os"
	"path/filepath"
	"testing"

	gotoml "github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Scan.MaxFileSizeBytes != 5*1024*1024 {
		t.Errorf("scan.maxFileSizeBytes = %d", cfg.Scan.MaxFileSizeBytes)
	}
	if cfg.Backend.URL == "" {
		t.Error("backend.url must have a default")
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %s/%s", cfg.Logging.Format, cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Port != 7461 {
		t.Errorf("server.port = %d, want 7461", cfg.Server.Port)
	}
}

func TestLoadConfigReadsJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".stacklens"), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"version": 1, "server": {"port": 9000}, "logging": {"format": "json", "level": "debug"}}`
	if err := os.WriteFile(filepath.Join(dir, ".stacklens", "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %s/%s", cfg.Logging.Format, cfg.Logging.Level)
	}
	// Unset sections keep defaults.
	if cfg.Backend.TimeoutMs != 30000 {
		t.Errorf("backend.timeoutMs = %d, want 30000", cfg.Backend.TimeoutMs)
	}
}

func TestLoadConfigAppliesTomlOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := `
[backend]
url = "http://triage.internal:9000/analyze"
timeoutMs = 5000
`
	if err := os.WriteFile(filepath.Join(dir, ".stacklens.toml"), []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Backend.URL != "http://triage.internal:9000/analyze" {
		t.Errorf("backend.url = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutMs != 5000 {
		t.Errorf("backend.timeoutMs = %d, want 5000", cfg.Backend.TimeoutMs)
	}
	// Sections absent from the overlay keep their defaults.
	if cfg.Server.Port != 7461 {
		t.Errorf("server.port = %d, want 7461", cfg.Server.Port)
	}
}

func TestLoadConfigMalformedOverlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".stacklens.toml"), []byte("[backend\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for malformed overlay")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = 8123
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Server.Port != 8123 {
		t.Errorf("server.port = %d, want 8123", loaded.Server.Port)
	}
}

func TestWriteOverlay(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteOverlay(dir, DefaultConfig())
	if err != nil {
		t.Fatalf("WriteOverlay failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading overlay: %v", err)
	}
	var overlay Overlay
	if err := gotoml.Unmarshal(data, &overlay); err != nil {
		t.Fatalf("overlay is not valid TOML: %v", err)
	}
	if overlay.Backend == nil || overlay.Backend.URL == "" {
		t.Error("overlay must carry the backend section")
	}

	if _, err := WriteOverlay(dir, DefaultConfig()); err == nil {
		t.Error("expected error when overlay already exists")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = DefaultConfig()
	cfg.Version = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported version")
	}
}
