package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config represents the complete stacklens configuration (v1 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scan      ScanConfig      `json:"scan" mapstructure:"scan"`
	Extract   ExtractConfig   `json:"extract" mapstructure:"extract"`
	Classify  ClassifyConfig  `json:"classify" mapstructure:"classify"`
	Backend   BackendConfig   `json:"backend" mapstructure:"backend"`
	Collect   CollectConfig   `json:"collect" mapstructure:"collect"`
	Dataset   DatasetConfig   `json:"dataset" mapstructure:"dataset"`
	Server    ServerConfig    `json:"server" mapstructure:"server"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls Java source discovery
type ScanConfig struct {
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes" toml:"maxFileSizeBytes"`
	IgnoreDirs       []string `json:"ignoreDirs" mapstructure:"ignoreDirs" toml:"ignoreDirs"`
}

// ExtractConfig controls structural feature extraction
type ExtractConfig struct {
	ScipIndexPath string `json:"scipIndexPath" mapstructure:"scipIndexPath" toml:"scipIndexPath"`
	PreferScip    bool   `json:"preferScip" mapstructure:"preferScip" toml:"preferScip"`
}

// ClassifyConfig controls file classification output
type ClassifyConfig struct {
	MaxFiles       int  `json:"maxFiles" mapstructure:"maxFiles" toml:"maxFiles"`
	IncludeContent bool `json:"includeContent" mapstructure:"includeContent" toml:"includeContent"`
}

// BackendConfig contains the triage backend endpoint
type BackendConfig struct {
	URL       string `json:"url" mapstructure:"url" toml:"url"`
	TimeoutMs int    `json:"timeoutMs" mapstructure:"timeoutMs" toml:"timeoutMs"`
}

// CollectConfig contains corpus collection settings
type CollectConfig struct {
	OutputDir     string   `json:"outputDir" mapstructure:"outputDir" toml:"outputDir"`
	MaxRepos      int      `json:"maxRepos" mapstructure:"maxRepos" toml:"maxRepos"`
	PerPage       int      `json:"perPage" mapstructure:"perPage" toml:"perPage"`
	MaxPages      int      `json:"maxPages" mapstructure:"maxPages" toml:"maxPages"`
	Queries       []string `json:"queries" mapstructure:"queries" toml:"queries"`
	YearWindows   []string `json:"yearWindows" mapstructure:"yearWindows" toml:"yearWindows"`
	BackoffMs     int      `json:"backoffMs" mapstructure:"backoffMs" toml:"backoffMs"`
}

// DatasetConfig contains dataset export settings
type DatasetConfig struct {
	OutputDir string `json:"outputDir" mapstructure:"outputDir" toml:"outputDir"`
	Compress  bool   `json:"compress" mapstructure:"compress" toml:"compress"`
}

// ServerConfig contains HTTP API server settings
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host" toml:"host"`
	Port int    `json:"port" mapstructure:"port" toml:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Scan: ScanConfig{
			MaxFileSizeBytes: 5 * 1024 * 1024,
			IgnoreDirs:       []string{"target", "build", "out", "node_modules", "vendor"},
		},
		Extract: ExtractConfig{
			ScipIndexPath: ".stacklens/index.scip",
			PreferScip:    false,
		},
		Classify: ClassifyConfig{
			MaxFiles:       0,
			IncludeContent: false,
		},
		Backend: BackendConfig{
			URL:       "http://localhost:8000/analyze",
			TimeoutMs: 30000,
		},
		Collect: CollectConfig{
			OutputDir: "collected_repos",
			MaxRepos:  100,
			PerPage:   50,
			MaxPages:  2,
			Queries: []string{
				"spring boot language:java stars:>100",
				"spring mvc language:java stars:>50",
			},
			YearWindows: []string{"2018..2020", "2021..2023", "2024..2026"},
			BackoffMs:   60000,
		},
		Dataset: DatasetConfig{
			OutputDir: "datasets",
			Compress:  false,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 7461,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration for a repository. Order of precedence,
// lowest to highest: defaults, .stacklens/config.json, a .stacklens.toml
// overlay at the repo root, then STACKLENS_* environment variables.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".stacklens"))

	v.SetEnvPrefix("STACKLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := applyOverlay(repoRoot, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("repoRoot", def.RepoRoot)
	v.SetDefault("scan.maxFileSizeBytes", def.Scan.MaxFileSizeBytes)
	v.SetDefault("scan.ignoreDirs", def.Scan.IgnoreDirs)
	v.SetDefault("extract.scipIndexPath", def.Extract.ScipIndexPath)
	v.SetDefault("extract.preferScip", def.Extract.PreferScip)
	v.SetDefault("classify.maxFiles", def.Classify.MaxFiles)
	v.SetDefault("classify.includeContent", def.Classify.IncludeContent)
	v.SetDefault("backend.url", def.Backend.URL)
	v.SetDefault("backend.timeoutMs", def.Backend.TimeoutMs)
	v.SetDefault("collect.outputDir", def.Collect.OutputDir)
	v.SetDefault("collect.maxRepos", def.Collect.MaxRepos)
	v.SetDefault("collect.perPage", def.Collect.PerPage)
	v.SetDefault("collect.maxPages", def.Collect.MaxPages)
	v.SetDefault("collect.queries", def.Collect.Queries)
	v.SetDefault("collect.yearWindows", def.Collect.YearWindows)
	v.SetDefault("collect.backoffMs", def.Collect.BackoffMs)
	v.SetDefault("dataset.outputDir", def.Dataset.OutputDir)
	v.SetDefault("dataset.compress", def.Dataset.Compress)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)
}

// Overlay is the optional .stacklens.toml file committed alongside a
// repository. It carries only the sections teams commonly override.
type Overlay struct {
	Scan     *ScanConfig     `toml:"scan"`
	Extract  *ExtractConfig  `toml:"extract"`
	Classify *ClassifyConfig `toml:"classify"`
	Backend  *BackendConfig  `toml:"backend"`
	Logging  *LoggingConfig  `toml:"logging"`
}

func applyOverlay(repoRoot string, cfg *Config) error {
	path := filepath.Join(repoRoot, ".stacklens.toml")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var overlay Overlay
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return &ConfigError{Field: ".stacklens.toml", Message: err.Error()}
	}

	if overlay.Scan != nil {
		cfg.Scan = *overlay.Scan
	}
	if overlay.Extract != nil {
		cfg.Extract = *overlay.Extract
	}
	if overlay.Classify != nil {
		cfg.Classify = *overlay.Classify
	}
	if overlay.Backend != nil {
		cfg.Backend = *overlay.Backend
	}
	if overlay.Logging != nil {
		cfg.Logging = *overlay.Logging
	}
	return nil
}

// Save writes the configuration to .stacklens/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".stacklens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port out of range"}
	}
	if c.Backend.TimeoutMs < 0 {
		return &ConfigError{Field: "backend.timeoutMs", Message: "timeout must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
