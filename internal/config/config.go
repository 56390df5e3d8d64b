/**
 * @description
 * This file loads the subscription server settings from the environment with viper,
 * applies defaults and normalization, and rejects values the server cannot run with.
 * The resulting Config is passed explicitly to every component that needs it.
 */
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environments recognised by ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// API profiles recognised by API_PROFILE. ProfileFull serves the analytics and
// subscription routes on top of the ProfileMinimal service routes.
const (
	ProfileFull    = "full"
	ProfileMinimal = "minimal"
)

// Config holds all configuration for the application.
type Config struct {
	Host                   string `mapstructure:"HOST"`
	ServerPort             string `mapstructure:"SERVER_PORT"`
	AppName                string `mapstructure:"APP_NAME"`
	Version                string `mapstructure:"VERSION"`
	Environment            string `mapstructure:"ENVIRONMENT"`
	Debug                  bool   `mapstructure:"DEBUG"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	APIV1Prefix            string `mapstructure:"API_V1_PREFIX"`
	APIProfile             string `mapstructure:"API_PROFILE"`
	AllowedOrigins         string `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	DBMaxConns             int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns             int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL               string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix   string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	RateLimitPerMinute     int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	MockSubscriptionCount  int    `mapstructure:"MOCK_SUBSCRIPTION_COUNT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	TrustProxyHeaders      bool   `mapstructure:"TRUST_PROXY_HEADERS"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("APP_NAME", "Flowlytix Subscription Server")
	viper.SetDefault("VERSION", "1.0.0")
	viper.SetDefault("ENVIRONMENT", EnvDevelopment)
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("API_V1_PREFIX", "/api/v1")
	viper.SetDefault("API_PROFILE", ProfileFull)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIN_CONNS", 2)
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "flowlytix:rate_limit")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 0)
	viper.SetDefault("MOCK_SUBSCRIPTION_COUNT", 200)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("TRUST_PROXY_HEADERS", false)
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("HOST")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("APP_NAME")
	_ = viper.BindEnv("VERSION")
	_ = viper.BindEnv("ENVIRONMENT")
	_ = viper.BindEnv("DEBUG")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("API_V1_PREFIX")
	_ = viper.BindEnv("API_PROFILE")
	_ = viper.BindEnv("ALLOWED_ORIGINS")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("DB_MAX_CONNS")
	_ = viper.BindEnv("DB_MIN_CONNS")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("MOCK_SUBSCRIPTION_COUNT")
	_ = viper.BindEnv("SHUTDOWN_TIMEOUT_SECONDS")
	_ = viper.BindEnv("TRUST_PROXY_HEADERS")

	if err = viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode configuration: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.normalize()

	err = config.Validate()
	return
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.APIProfile = strings.ToLower(strings.TrimSpace(c.APIProfile))
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.RedisRateLimitPrefix = strings.TrimSpace(c.RedisRateLimitPrefix)
	if c.RedisRateLimitPrefix == "" {
		c.RedisRateLimitPrefix = "flowlytix:rate_limit"
	}
	c.APIV1Prefix = "/" + strings.Trim(strings.TrimSpace(c.APIV1Prefix), "/")
}

// Validate reports the first configuration value that cannot be served.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, test; got %q", c.Environment)
	}
	switch c.APIProfile {
	case ProfileFull, ProfileMinimal:
	default:
		return fmt.Errorf("API_PROFILE must be %q or %q; got %q", ProfileFull, ProfileMinimal, c.APIProfile)
	}
	if c.APIV1Prefix == "/" {
		return errors.New("API_V1_PREFIX must not be empty")
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) and DB_MAX_CONNS (%d) must satisfy 0 <= min <= max, max >= 1", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative; got %d", c.RateLimitPerMinute)
	}
	if c.MockSubscriptionCount < 0 {
		return fmt.Errorf("MOCK_SUBSCRIPTION_COUNT must not be negative; got %d", c.MockSubscriptionCount)
	}
	if c.ShutdownTimeoutSeconds < 1 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive; got %d", c.ShutdownTimeoutSeconds)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.ServerPort)
}

// Origins splits ALLOWED_ORIGINS into the CORS allow-list.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// ShutdownTimeout bounds graceful HTTP shutdown and resource teardown.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// EffectiveLogLevel is LOG_LEVEL, or DEBUG when the DEBUG flag is set.
func (c Config) EffectiveLogLevel() string {
	if c.Debug {
		return "DEBUG"
	}
	return c.LogLevel
}

// RateLimitEnabled reports whether API routes are rate limited.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimitPerMinute > 0
}
