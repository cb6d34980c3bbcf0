package config

import (
	"os"
	"path/filepath"

	gotoml "github.com/pelletier/go-toml/v2"
)

// WriteOverlay writes a .stacklens.toml overlay at the repo root so the
// settings can be committed and shared. Existing files are not touched.
func WriteOverlay(repoRoot string, cfg *Config) (string, error) {
	path := filepath.Join(repoRoot, ".stacklens.toml")
	if _, err := os.Stat(path); err == nil {
		return path, &ConfigError{Field: ".stacklens.toml", Message: "already exists"}
	}

	overlay := Overlay{
		Scan:     &cfg.Scan,
		Extract:  &cfg.Extract,
		Classify: &cfg.Classify,
		Backend:  &cfg.Backend,
		Logging:  &cfg.Logging,
	}

	data, err := gotoml.Marshal(overlay)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
