package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Geocoding  GeocodingConfig  `yaml:"geocoding"`
	Downloader DownloaderConfig `yaml:"downloader"`
	Request    RequestConfig    `yaml:"request"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server LogSettings `yaml:"server"`
	Gemini LogSettings `yaml:"gemini"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// GeminiConfig holds settings for the Gemini provider.
type GeminiConfig struct {
	Model string `yaml:"model"`
	Key   string `yaml:"key"`

	// Asset upload protocol timing.
	UploadPollInterval Duration `yaml:"upload_poll_interval"`
	UploadTimeout      Duration `yaml:"upload_timeout"`
}

// GeocodingConfig holds settings for the Google Geocoding API.
type GeocodingConfig struct {
	Key string `yaml:"key"`
}

// DownloaderConfig holds media download settings.
type DownloaderConfig struct {
	Dir         string   `yaml:"dir"`
	MaxDuration Duration `yaml:"max_duration"`
	Binary      string   `yaml:"binary"` // yt-dlp executable
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries int      `yaml:"retries"`
	Timeout Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:7000",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Gemini: LogSettings{
				Path:  "./logs/gemini.log",
				Level: "INFO",
			},
		},
		Gemini: GeminiConfig{
			Model:              "gemini-2.5-flash",
			Key:                "",
			UploadPollInterval: Duration(2 * time.Second),
			UploadTimeout:      Duration(120 * time.Second),
		},
		Geocoding: GeocodingConfig{
			Key: "",
		},
		Downloader: DownloaderConfig{
			Dir:         "./downloads",
			MaxDuration: Duration(5 * time.Minute),
			Binary:      "yt-dlp",
		},
		Request: RequestConfig{
			Retries: 3,
			Timeout: Duration(300 * time.Second),
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// Missing secrets fall back to the environment so keys never have to live on disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	if cfg.Gemini.Key == "" {
		cfg.Gemini.Key = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Geocoding.Key == "" {
		cfg.Geocoding.Key = os.Getenv("GOOGLE_MAPS_API_KEY")
	}

	return cfg, nil
}

// Validate reports configuration errors that must abort startup.
// The Gemini key is required; the geocoding key is optional (geocoding is
// disabled without it, logged once per batch).
func (c *Config) Validate() error {
	if c.Gemini.Key == "" {
		return fmt.Errorf("gemini API key is not configured (set gemini.key or GEMINI_API_KEY)")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini model is not configured")
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address is not configured")
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# ReelAtlas Configuration
# ----------------------
# API keys may be left empty here and provided via the environment
# (GEMINI_API_KEY, GOOGLE_MAPS_API_KEY) or a .env file.
# Duration units: ns, us, ms, s, m, h

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
