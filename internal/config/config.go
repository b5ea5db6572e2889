package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filegate/internal/logging"
	"filegate/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "filegate" // application name used for config directory

// Config holds the persisted server configuration.
type Config struct {
	// AllowedDirectories are the directory trees the server may touch.
	// Command-line arguments take precedence over this list.
	AllowedDirectories []string `yaml:"allowed_directories"`
	Version            string   `yaml:"version"`   // Track config version
	InitTime           int64    `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location
// If no config exists, it returns an error indicating setup is needed
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		return nil, fmt.Errorf("no configuration found, pass directories on the command line or run init")
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	// Check primary location first
	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// IsFirstRun checks if this is the first time the application is run
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultConfig returns a Config with sensible defaults. The allowed
// directory list starts empty; serving requires at least one entry from
// either the config file or the command line.
func DefaultConfig() Config {
	return Config{
		AllowedDirectories: nil,
		Version:            "1.0",
		InitTime:           0, // Will be set during first save
	}
}

// EffectiveDirectories returns the allow-list to serve with. Directories
// given on the command line replace the configured ones entirely, so an
// operator passing an explicit list gets exactly that list.
func (c *Config) EffectiveDirectories(override []string) []string {
	if len(override) > 0 {
		return override
	}
	return c.AllowedDirectories
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path. The file is staged and
// renamed into place so a crash cannot leave a truncated config behind.
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := fileops.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Restrictive permissions (600), the file controls filesystem access
	if err := fileops.AtomicWrite(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// CreateNewConfig initializes and saves a configuration with the given
// allowed directories. The caller is expected to have validated them.
func CreateNewConfig(allowedDirs []string) error {
	cfg := DefaultConfig()
	cfg.AllowedDirectories = allowedDirs

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logging.Info("Configuration created successfully", "allowed_directories", cfg.AllowedDirectories)
	return nil
}
