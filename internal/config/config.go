package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains the local gateway's HTTP settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BackendConfig contains the remote rental API settings
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GeocoderConfig contains the reverse-geocoding service settings
type GeocoderConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig contains durable client-storage settings
type StorageConfig struct {
	Path                      string `yaml:"path"`
	GeocodeCacheMaxAgeDays    int    `yaml:"geocode_cache_max_age_days"`
	PendingBookingMaxAgeHours int    `yaml:"pending_booking_max_age_hours"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PruneGeocodeCache    string `yaml:"prune_geocode_cache"`
	ExpirePendingBooking string `yaml:"expire_pending_booking"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}

	if val := os.Getenv("GEOCODER_BASE_URL"); val != "" {
		c.Geocoder.BaseURL = val
	}
	if val := os.Getenv("GEOCODER_API_KEY"); val != "" {
		c.Geocoder.APIKey = val
	}
	if val := os.Getenv("GEOCODER_LANGUAGE"); val != "" {
		c.Geocoder.Language = val
	}

	if val := os.Getenv("STORAGE_PATH"); val != "" {
		c.Storage.Path = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 15
	}

	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = "https://api.opencagedata.com"
	}
	if c.Geocoder.Language == "" {
		c.Geocoder.Language = "en"
	}
	if c.Geocoder.TimeoutSeconds <= 0 {
		c.Geocoder.TimeoutSeconds = 10
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Storage.GeocodeCacheMaxAgeDays <= 0 {
		c.Storage.GeocodeCacheMaxAgeDays = 30
	}
	if c.Storage.PendingBookingMaxAgeHours <= 0 {
		c.Storage.PendingBookingMaxAgeHours = 168 // one week
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Scheduler.PruneGeocodeCache == "" {
		c.Scheduler.PruneGeocodeCache = "0 0 2 * * *" // 2 AM daily
	}
	if c.Scheduler.ExpirePendingBooking == "" {
		c.Scheduler.ExpirePendingBooking = "0 30 2 * * *" // 2:30 AM daily
	}

	return nil
}

// GetServerAddress returns the gateway's listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
