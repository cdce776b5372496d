// Package config provides user configuration management for research-agent.
//
// This package manages a YAML-based configuration file holding application
// preferences (service endpoint, form defaults, timeouts) and the research
// services seen by discovery. File locations follow the XDG base directory
// conventions via github.com/adrg/xdg.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/research-agent/config.yaml or $HOME/.config/research-agent/config.yaml
//   - macOS: $HOME/Library/Application Support/research-agent/config.yaml
//   - Windows: %LOCALAPPDATA%\research-agent\config.yaml
//
// The wizard's log file lives under the XDG state home (see DefaultLogPath).
//
// # Security
//
// IMPORTANT: This package NEVER stores the research service API key. It is
// read from RESEARCH_AGENT_API_KEY or prompted for when needed.
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg.Preferences.Endpoint = "http://research.local:8000"
//
//	// Save changes atomically
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File writes are protected by a mutex and go through a temporary file and
// rename, so a crash never leaves a half-written config.
package config
