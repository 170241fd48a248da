package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultLookupBaseURL is the Urban Dictionary API root used when no override is configured.
const DefaultLookupBaseURL = "https://api.urbandictionary.com/v0"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	LookupBaseURL        string        `mapstructure:"lookup_base_url"`
	LookupTimeoutSeconds int64         `mapstructure:"lookup_timeout_seconds"`
	LookupTimeout        time.Duration `mapstructure:"-"`

	SourcesFile          string        `mapstructure:"sources_file"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	RelayIntervalSeconds int64         `mapstructure:"relay_interval"`
	RelayInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	RedisAddr              string        `mapstructure:"redis_addr"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "shabd-relay")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("lookup_base_url", DefaultLookupBaseURL)
	v.SetDefault("lookup_timeout_seconds", 10)
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("relay_interval", 900) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/relay.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("storage_ttl_seconds", int64((5*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
}

// finalize validates raw values and derives the duration fields.
func (c *Config) finalize() error {
	c.LookupBaseURL = strings.TrimRight(strings.TrimSpace(c.LookupBaseURL), "/")
	if c.LookupBaseURL == "" {
		return fmt.Errorf("invalid lookup_base_url (must not be empty)")
	}
	if c.LookupTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid lookup_timeout_seconds (must be positive seconds)")
	}
	c.LookupTimeout = time.Duration(c.LookupTimeoutSeconds) * time.Second

	if c.RelayIntervalSeconds <= 0 {
		return fmt.Errorf("invalid relay_interval (must be positive seconds)")
	}
	c.RelayInterval = time.Duration(c.RelayIntervalSeconds) * time.Second

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}

// StorageLocation returns the path or address the configured storage type opens.
func (c *Config) StorageLocation() string {
	if strings.EqualFold(strings.TrimSpace(c.StorageType), "redis") {
		return c.RedisAddr
	}
	return c.BBoltPath
}
