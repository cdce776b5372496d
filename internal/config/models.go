package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muurk/research-agent/internal/research"
)

// CurrentVersion is the config file format version.
const CurrentVersion = 1

// APIKeyEnvVar holds the research service API key. The key is never written
// to the config file.
const APIKeyEnvVar = "RESEARCH_AGENT_API_KEY"

// APIKeyFromEnv returns the API key from the environment, trimmed.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnvVar))
}

// Config represents the entire user configuration file.
// This stores application preferences and research services seen on the
// local network.
type Config struct {
	Version     int                 `yaml:"version"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	Services    map[string]*Service `yaml:"services,omitempty"` // Keyed by mDNS instance name
}

// Preferences represents application-wide user preferences.
// Note: API keys are NEVER stored - they come from the environment or a prompt.
type Preferences struct {
	Endpoint            string `yaml:"endpoint"`              // Base URL of the research service
	DefaultSampleSize   int    `yaml:"default_sample_size"`   // Initial value of the sample size field
	DefaultNumQuestions int    `yaml:"default_num_questions"` // Initial value of the questions field
	DiscardStale        bool   `yaml:"discard_stale"`         // Drop late results from superseded submissions
	DiscoverTimeout     int    `yaml:"discover_timeout"`      // mDNS discovery timeout in seconds
	RequestTimeout      int    `yaml:"request_timeout"`       // Research request timeout in seconds (0 = none)
}

// Service represents a research service found by discovery.
type Service struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastURL  string    `yaml:"last_url,omitempty"`  // Last known base URL
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery time
}

// DefaultPreferences returns preferences with default values.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Endpoint:            research.DefaultBaseURL,
		DefaultSampleSize:   research.DefaultSampleSize,
		DefaultNumQuestions: research.DefaultQuestionsPerInterview,
		DiscardStale:        false,
		DiscoverTimeout:     5,
		RequestTimeout:      0,
	}
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Preferences: DefaultPreferences(),
		Services:    make(map[string]*Service),
	}
}

// DiscoverTimeoutDuration returns the discovery timeout as a duration.
func (p *Preferences) DiscoverTimeoutDuration() time.Duration {
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// RequestTimeoutDuration returns the request timeout as a duration.
func (p *Preferences) RequestTimeoutDuration() time.Duration {
	return time.Duration(p.RequestTimeout) * time.Second
}

// Validate checks that preference values are usable.
func (p *Preferences) Validate() error {
	if p.DefaultSampleSize < research.MinSampleSize || p.DefaultSampleSize > research.MaxSampleSize {
		return fmt.Errorf("default_sample_size must be %d-%d, got %d",
			research.MinSampleSize, research.MaxSampleSize, p.DefaultSampleSize)
	}
	if p.DefaultNumQuestions < research.MinQuestionsPerInterview || p.DefaultNumQuestions > research.MaxQuestionsPerInterview {
		return fmt.Errorf("default_num_questions must be %d-%d, got %d",
			research.MinQuestionsPerInterview, research.MaxQuestionsPerInterview, p.DefaultNumQuestions)
	}
	if p.DiscoverTimeout < 0 {
		return fmt.Errorf("discover_timeout must not be negative")
	}
	if p.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// GetService retrieves a service entry by instance name.
// Returns nil if the service isn't in the config.
func (c *Config) GetService(name string) *Service {
	return c.Services[name]
}

// EnsureService ensures a service entry exists.
// Returns the service entry (existing or newly created).
func (c *Config) EnsureService(name string) *Service {
	if c.Services == nil {
		c.Services = make(map[string]*Service)
	}

	if svc, exists := c.Services[name]; exists {
		return svc
	}

	svc := &Service{}
	c.Services[name] = svc
	return svc
}

// UpdateServiceLastSeen records a discovery sighting.
func (c *Config) UpdateServiceLastSeen(name, url string) {
	svc := c.EnsureService(name)
	svc.LastSeen = time.Now()
	svc.LastURL = url
}

// SetServiceNickname sets a user-friendly nickname for a service.
func (c *Config) SetServiceNickname(name, nickname string) {
	svc := c.EnsureService(name)
	svc.Nickname = nickname
}
