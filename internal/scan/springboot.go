package scan

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BootInfo describes what a Spring Boot configuration probe found in
// a repository.
type BootInfo struct {
	IsSpringBoot    bool   `json:"isSpringBoot"`
	ConfigPath      string `json:"configPath,omitempty"`
	ApplicationName string `json:"applicationName,omitempty"`
	ActiveProfiles  string `json:"activeProfiles,omitempty"`
}

// candidateConfigs are the conventional Spring Boot config locations,
// relative to the repo root.
var candidateConfigs = []string{
	"src/main/resources/application.yml",
	"src/main/resources/application.yaml",
	"application.yml",
	"application.yaml",
}

// springConfig mirrors the subset of application.yml we care about.
type springConfig struct {
	Spring struct {
		Application struct {
			Name string `yaml:"name"`
		} `yaml:"application"`
		Profiles struct {
			Active string `yaml:"active"`
		} `yaml:"profiles"`
	} `yaml:"spring"`
}

// ProbeSpringBoot looks for a Spring Boot application config under
// root. An unreadable or malformed config file still marks the repo
// as Spring Boot; only the detail fields stay empty.
func ProbeSpringBoot(root string) BootInfo {
	for _, rel := range candidateConfigs {
		path := filepath.Join(root, rel)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		info := BootInfo{IsSpringBoot: true, ConfigPath: rel}

		var cfg springConfig
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			info.ApplicationName = cfg.Spring.Application.Name
			info.ActiveProfiles = cfg.Spring.Profiles.Active
		}
		return info
	}

	return BootInfo{}
}
