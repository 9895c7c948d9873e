package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Registry RegistryConfig
	Pricing  PricingConfig
	Cache    CacheConfig
	Scan     ScanConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RegistryConfig holds product registry (NDC directory) configuration
type RegistryConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// PricingConfig holds pricing dataset (NADAC) configuration
type PricingConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	DatasetID         string `mapstructure:"dataset_id"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// CacheConfig holds the per-resolver cache capacities
type CacheConfig struct {
	VerifyCapacity   int `mapstructure:"verify_capacity"`
	PriceCapacity    int `mapstructure:"price_capacity"`
	OverrideCapacity int `mapstructure:"override_capacity"`
}

// ScanConfig holds barcode normalizer configuration
type ScanConfig struct {
	Strictness string `mapstructure:"strictness"` // "lenient" or "strict"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rxscan/")

	v.SetEnvPrefix("RXSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("registry.api_key", "")
	v.SetDefault("registry.base_url", "https://api.fda.gov")
	v.SetDefault("registry.requests_per_minute", 240)

	v.SetDefault("pricing.base_url", "https://data.medicaid.gov")
	v.SetDefault("pricing.dataset_id", "4d7af295-2132-55a8-b40c-d6630061f3e8")
	v.SetDefault("pricing.requests_per_minute", 60)

	v.SetDefault("cache.verify_capacity", 512)
	v.SetDefault("cache.price_capacity", 512)
	v.SetDefault("cache.override_capacity", 256)

	v.SetDefault("scan.strictness", "lenient")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Registry.BaseURL == "" {
		return fmt.Errorf("registry base URL is required")
	}
	if config.Pricing.BaseURL == "" || config.Pricing.DatasetID == "" {
		return fmt.Errorf("pricing base URL and dataset ID are required")
	}
	if s := config.Scan.Strictness; s != "lenient" && s != "strict" {
		return fmt.Errorf("scan strictness must be 'lenient' or 'strict', got: %s", s)
	}
	return nil
}
