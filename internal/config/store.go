package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the application's directories.
	AppName    = "research-agent"
	configFile = "config.yaml"
	logFile    = "research-agent.log"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory:
// $XDG_CONFIG_HOME/research-agent on Linux, the platform equivalent
// elsewhere.
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), configFile)
}

// DefaultLogPath returns the log file used by the wizard, creating its
// directory under the XDG state home if needed.
func DefaultLogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join(AppName, logFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file path: %w", err)
	}
	return path, nil
}

// Load loads the configuration from the default path.
// If the file doesn't exist, returns a new default config.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads the configuration from path.
// If the file doesn't exist, returns a new default config.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	// Fill anything the file left out.
	if cfg.Services == nil {
		cfg.Services = make(map[string]*Service)
	}
	if cfg.Preferences == nil {
		cfg.Preferences = DefaultPreferences()
	} else {
		fillDefaults(cfg.Preferences)
	}

	if err := cfg.Preferences.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

func fillDefaults(p *Preferences) {
	d := DefaultPreferences()
	if p.Endpoint == "" {
		p.Endpoint = d.Endpoint
	}
	if p.DefaultSampleSize == 0 {
		p.DefaultSampleSize = d.DefaultSampleSize
	}
	if p.DefaultNumQuestions == 0 {
		p.DefaultNumQuestions = d.DefaultNumQuestions
	}
	if p.DiscoverTimeout == 0 {
		p.DiscoverTimeout = d.DiscoverTimeout
	}
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the configuration to path.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	// Create directory with user-only permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(path)
	if err != nil {
		return err
	}

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML with the file header. location
// is shown in the header.
func (c *Config) Marshal(location string) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# research-agent configuration file
# This file stores preferences and research services seen on the network.
#
# Security Note: API keys are NEVER stored in this file. Set
# RESEARCH_AGENT_API_KEY or enter the key when prompted.
#
# Location: ` + location + `

`)
	return append(header, data...), nil
}
