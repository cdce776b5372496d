package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetConfigPath(t *testing.T) {
	configPath := GetConfigPath()

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
	if !strings.Contains(configPath, AppName) {
		t.Errorf("GetConfigPath() = %v, should contain %q", configPath, AppName)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != 1 {
		t.Errorf("NewConfig().Version = %v, want 1", cfg.Version)
	}
	if cfg.Services == nil {
		t.Error("NewConfig().Services should not be nil")
	}

	p := cfg.Preferences
	if p.Endpoint != "http://localhost:8000" {
		t.Errorf("Endpoint = %v", p.Endpoint)
	}
	if p.DefaultSampleSize != 4 || p.DefaultNumQuestions != 4 {
		t.Errorf("defaults = %d/%d, want 4/4", p.DefaultSampleSize, p.DefaultNumQuestions)
	}
	if p.DiscardStale {
		t.Error("DiscardStale should be false by default")
	}
	if p.DiscoverTimeoutDuration() != 5*time.Second {
		t.Errorf("DiscoverTimeoutDuration() = %v, want 5s", p.DiscoverTimeoutDuration())
	}
	if p.RequestTimeoutDuration() != 0 {
		t.Errorf("RequestTimeoutDuration() = %v, want 0", p.RequestTimeoutDuration())
	}
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Preferences)
		wantErr bool
	}{
		{"defaults", func(*Preferences) {}, false},
		{"sample size too big", func(p *Preferences) { p.DefaultSampleSize = 21 }, true},
		{"questions zero", func(p *Preferences) { p.DefaultNumQuestions = 0 }, true},
		{"negative timeout", func(p *Preferences) { p.RequestTimeout = -1 }, true},
		{"negative discovery", func(p *Preferences) { p.DiscoverTimeout = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPreferences()
			tt.modify(p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureService(t *testing.T) {
	cfg := NewConfig()

	svc1 := cfg.EnsureService("lab")
	if svc1 == nil {
		t.Fatal("EnsureService() returned nil")
	}
	if svc2 := cfg.EnsureService("lab"); svc1 != svc2 {
		t.Error("EnsureService() should return same instance for same name")
	}
	if svc3 := cfg.EnsureService("office"); svc1 == svc3 {
		t.Error("EnsureService() should create new instance for different name")
	}
}

func TestUpdateServiceLastSeen(t *testing.T) {
	cfg := NewConfig()

	before := time.Now()
	cfg.UpdateServiceLastSeen("lab", "http://192.168.1.20:8000")
	after := time.Now()

	svc := cfg.GetService("lab")
	if svc == nil {
		t.Fatal("Service should exist after UpdateServiceLastSeen()")
	}
	if svc.LastURL != "http://192.168.1.20:8000" {
		t.Errorf("LastURL = %v", svc.LastURL)
	}
	if svc.LastSeen.Before(before) || svc.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", svc.LastSeen, before, after)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.Preferences.Endpoint = "http://research.local:9000"
	cfg.Preferences.DefaultSampleSize = 8
	cfg.Preferences.DiscardStale = true
	cfg.SetServiceNickname("lab", "Lab box")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be gone after save")
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# research-agent configuration file") {
		t.Error("saved file should start with the header comment")
	}
	if strings.Contains(string(data), "api_key") {
		t.Error("saved file must not contain an API key field")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Preferences.Endpoint != "http://research.local:9000" {
		t.Errorf("Endpoint = %v", loaded.Preferences.Endpoint)
	}
	if loaded.Preferences.DefaultSampleSize != 8 {
		t.Errorf("DefaultSampleSize = %v, want 8", loaded.Preferences.DefaultSampleSize)
	}
	if !loaded.Preferences.DiscardStale {
		t.Error("DiscardStale should round-trip")
	}
	if svc := loaded.GetService("lab"); svc == nil || svc.Nickname != "Lab box" {
		t.Errorf("service = %+v", svc)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Preferences.DefaultSampleSize != 4 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFrom_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\npreferences:\n  endpoint: http://example:8000\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	p := cfg.Preferences
	if p.Endpoint != "http://example:8000" {
		t.Errorf("Endpoint = %v", p.Endpoint)
	}
	if p.DefaultSampleSize != 4 || p.DefaultNumQuestions != 4 || p.DiscoverTimeout != 5 {
		t.Errorf("missing values should take defaults, got %+v", p)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "version: [1"},
		{"wrong version", "version: 2\n"},
		{"out of range", "version: 1\npreferences:\n  default_sample_size: 50\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Error("LoadFrom() should fail")
			}
		})
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "  sk-test  ")
	if got := APIKeyFromEnv(); got != "sk-test" {
		t.Errorf("APIKeyFromEnv() = %q, want sk-test", got)
	}

	t.Setenv(APIKeyEnvVar, "")
	if got := APIKeyFromEnv(); got != "" {
		t.Errorf("APIKeyFromEnv() = %q, want empty", got)
	}
}
