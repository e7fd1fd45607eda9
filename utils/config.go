package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env               string `mapstructure:"ENV"`
	ServerPort        int    `mapstructure:"SERVER_PORT"`
	SigningKey        string `mapstructure:"SIGNING_KEY"`
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`
	AllowedOrigin     string `mapstructure:"ALLOWED_ORIGIN"`
	CookieDomain      string `mapstructure:"COOKIE_DOMAIN"`
	CookieSecure      bool   `mapstructure:"COOKIE_SECURE"`
	Papertrail        string `mapstructure:"PAPERTRAIL"`
	PapertrailAppName string `mapstructure:"PAPERTRAIL_APP_NAME"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	ProfileCache      string `mapstructure:"PROFILE_CACHE"`
	RedisHost         string `mapstructure:"REDIS_HOST"`
	RedisPort         string `mapstructure:"REDIS_PORT"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	TokenWarmupMins   int    `mapstructure:"TOKEN_WARMUP_MINUTES"`
	DemoPassword      string `mapstructure:"DEMO_PASSWORD"`
}

// Profile cache backends
const (
	ProfileCacheMemory = "memory"
	ProfileCacheRedis  = "redis"
)

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()
	bindEnv(v, Config{})

	v.SetDefault("SESSION_TTL_HOURS", 8)
	v.SetDefault("ALLOWED_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROFILE_CACHE", ProfileCacheMemory)
	v.SetDefault("TOKEN_WARMUP_MINUTES", 30)
	v.SetDefault("DEMO_PASSWORD", "portal-demo")

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	if config.SigningKey == "" {
		return fmt.Errorf("signing key must be provided")
	}

	if config.SessionTTLHours <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	switch config.ProfileCache {
	case ProfileCacheMemory:
	case ProfileCacheRedis:
		if config.RedisHost == "" || config.RedisPort == "" {
			return fmt.Errorf("redis host and port must be provided for the redis profile cache")
		}
	default:
		return fmt.Errorf("unknown profile cache %q", config.ProfileCache)
	}

	return nil
}

// Masking sensitive information for logging
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.RedisPassword = "****"
	redacted.DemoPassword = "****"
	return redacted
}

// LoadCustomConfig decodes a config section such as the Dataverse settings
// into val. Environment variables override the .env file.
func LoadCustomConfig(path string, val interface{}) error {
	if path == "" {
		path = "."
	}

	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()
	bindEnv(v, val)

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}
