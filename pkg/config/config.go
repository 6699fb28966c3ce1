package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mdcatalog/pkg/logger"
)

// Config holds all mdcatalog configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Logging logger.Config `yaml:"logging" json:"logging"`
	Lookup  LookupConfig  `yaml:"lookup" json:"lookup"`
}

// ServerConfig contains normalization service settings
type ServerConfig struct {
	Host      string  `yaml:"host" json:"host"`
	Port      int     `yaml:"port" json:"port"`
	Mode      string  `yaml:"mode" json:"mode"`             // gin mode: release, debug, test
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"` // requests per second, 0 disables
	Burst     int     `yaml:"burst" json:"burst"`
}

// LookupConfig holds the display tables used by normalization
type LookupConfig struct {
	Languages    map[string]string `yaml:"languages" json:"languages"`
	Demographics map[int]string    `yaml:"demographics" json:"demographics"`
	LinkLabels   map[string]string `yaml:"link_labels" json:"link_labels"` // overrides keyed by site code
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8080,
			Mode:      "release",
			RateLimit: 50,
			Burst:     100,
		},
		Logging: logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Lookup: LookupConfig{
			Languages:    DefaultLanguages(),
			Demographics: DefaultDemographics(),
			LinkLabels:   map[string]string{},
		},
	}
}

// DefaultLanguages returns the catalog language codes with display names
func DefaultLanguages() map[string]string {
	return map[string]string{
		"gb": "English",
		"jp": "Japanese",
		"kr": "Korean",
		"cn": "Chinese (Simp)",
		"hk": "Chinese (Trad)",
		"fr": "French",
		"de": "German",
		"es": "Spanish (Es)",
		"mx": "Spanish (LATAM)",
		"br": "Portuguese (Br)",
		"pt": "Portuguese (Pt)",
		"it": "Italian",
		"ru": "Russian",
		"pl": "Polish",
		"tr": "Turkish",
		"id": "Indonesian",
		"vn": "Vietnamese",
		"th": "Thai",
		"ph": "Filipino",
		"sa": "Arabic",
	}
}

// DefaultDemographics returns the catalog demographic labels
func DefaultDemographics() map[int]string {
	return map[int]string{
		1: "Shounen",
		2: "Shoujo",
		3: "Seinen",
		4: "Josei",
	}
}

// Load loads configuration from file, falling back to defaults. Sections
// missing from the file keep their default values.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	// yaml merges into existing maps, so clear the tables the file replaces
	var present struct {
		Lookup map[string]yaml.Node `yaml:"lookup" json:"lookup"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, ok := present.Lookup["languages"]; ok {
		cfg.Lookup.Languages = nil
	}
	if _, ok := present.Lookup["demographics"]; ok {
		cfg.Lookup.Demographics = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no usable fallback
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// Save saves configuration to file
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Addr returns the service listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// findConfigFile searches for config in standard locations
func findConfigFile() string {
	locations := []string{
		"./mdcatalog.yaml",
		"./configs/mdcatalog.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "mdcatalog", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".mdcatalog.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}
