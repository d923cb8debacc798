package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelatlas.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != "localhost:7000" {
		t.Errorf("Server.Address = %q, want default", cfg.Server.Address)
	}
	if cfg.Gemini.UploadPollInterval.Std() != 2*time.Second {
		t.Errorf("UploadPollInterval = %v, want 2s", cfg.Gemini.UploadPollInterval.Std())
	}
	if cfg.Gemini.UploadTimeout.Std() != 120*time.Second {
		t.Errorf("UploadTimeout = %v, want 120s", cfg.Gemini.UploadTimeout.Std())
	}

	// File should have been written with defaults
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadMergesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelatlas.yaml")

	content := []byte("server:\n  address: \"0.0.0.0:9000\"\ngemini:\n  key: \"file-key\"\n  upload_timeout: 30s\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != "0.0.0.0:9000" {
		t.Errorf("Server.Address = %q, want override", cfg.Server.Address)
	}
	if cfg.Gemini.Key != "file-key" {
		t.Errorf("Gemini.Key = %q, want file-key", cfg.Gemini.Key)
	}
	if cfg.Gemini.UploadTimeout.Std() != 30*time.Second {
		t.Errorf("UploadTimeout = %v, want 30s", cfg.Gemini.UploadTimeout.Std())
	}
	// Untouched fields keep defaults
	if cfg.Gemini.Model == "" {
		t.Error("Gemini.Model should keep its default")
	}
}

func TestLoadEnvFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelatlas.yaml")

	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("GOOGLE_MAPS_API_KEY", "env-maps")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gemini.Key != "env-gemini" {
		t.Errorf("Gemini.Key = %q, want env fallback", cfg.Gemini.Key)
	}
	if cfg.Geocoding.Key != "env-maps" {
		t.Errorf("Geocoding.Key = %q, want env fallback", cfg.Geocoding.Key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) { c.Gemini.Key = "k" },
			wantErr: false,
		},
		{
			name:    "missing gemini key",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "missing model",
			mutate: func(c *Config) {
				c.Gemini.Key = "k"
				c.Gemini.Model = ""
			},
			wantErr: true,
		},
		{
			name: "missing address",
			mutate: func(c *Config) {
				c.Gemini.Key = "k"
				c.Server.Address = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
