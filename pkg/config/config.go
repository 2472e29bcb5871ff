/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the scratchlive tool configuration
type Config struct {
	Library Library `yaml:"library"`
	Entries Entries `yaml:"entries"`
	Backup  Backup  `yaml:"backup"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

// Library locates the Scratch Live files
type Library struct {
	DatabasePath string `yaml:"database_path"`
	CrateDir     string `yaml:"crate_dir"`
}

// Entries controls stub entry creation
type Entries struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
	DefaultExtension  string   `yaml:"default_extension"`
}

// Backup controls snapshots taken before a file is rewritten
type Backup struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
}

// Server configures the inspection API
type Server struct {
	Bind   string `yaml:"bind"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Library: Library{
			DatabasePath: "~/Music/_ScratchLIVE_/database V2",
			CrateDir:     "~/Music/_ScratchLIVE_/Subcrates",
		},
		Entries: Entries{
			AllowedExtensions: []string{"mp3"},
			DefaultExtension:  "mp3",
		},
		Backup: Backup{
			Enabled: true,
			Dir:     "~/.local/share/scratchlive/backups",
			Keep:    20,
		},
		Server: Server{
			Bind: "127.0.0.1",
			Port: 8080,
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at use
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("%w: backup.keep must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want auto, console or json)", ErrInvalidConfig, c.Logging.Format)
	}
	for _, ext := range c.Entries.AllowedExtensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("%w: empty entry in entries.allowed_extensions", ErrInvalidConfig)
		}
	}
	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a default configuration to configPath. With
// withAPIKey set, the server gets a freshly generated API key.
func BootstrapConfig(configPath string, withAPIKey bool) (*Config, error) {
	config := DefaultConfig()

	if withAPIKey {
		key, err := GenerateSecureKey(32) // 256 bits
		if err != nil {
			return nil, fmt.Errorf("failed to generate API key: %w", err)
		}
		config.Server.APIKey = key
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./scratchlive.yaml"
	}

	// ~/.config/scratchlive/config.yaml on Linux and macOS
	configDir := filepath.Join(homeDir, ".config", "scratchlive")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// Database returns the expanded database path, or "" when none is set
func (l Library) Database() string {
	return ExpandPath(l.DatabasePath)
}

// Crates returns the *.crate files in the crate directory, sorted by name.
// A missing directory has no crates.
func (l Library) Crates() ([]string, error) {
	if l.CrateDir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(ExpandPath(l.CrateDir), "*.crate"))
	if err != nil {
		return nil, fmt.Errorf("list crates in %s: %w", l.CrateDir, err)
	}
	return matches, nil
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
