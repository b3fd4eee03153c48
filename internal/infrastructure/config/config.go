// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compilance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables (prefix DWC_)
//   - A config.yaml is optional; defaults cover every key
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "DWC" // Dimensional Weight Calculator

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// RateLimit contains per-client rate limiting configuration
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Metrics contains Prometheus exposition configuration
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name" validate:"required"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment" validate:"oneof=development staging production test"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"gt=0"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`

	// RequestTimeout is the maximum time allowed for handling a single request
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// MaxRequestSize is the maximun allowed request body size
	MaxRequestSize int64 `mapstructure:"max_request_size" validate:"gt=0"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// TrustedProxies lists the reverse proxies (CIDR or address) whose
	// X-Forwarded-For headers identify clients for rate limiting
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,cidr|ip"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is the minimum log level
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`

	// Format is the output format
	Format string `mapstructure:"format" validate:"oneof=json console"`

	// File is an optional rotated log file
	File string `mapstructure:"file"`

	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `mapstructure:"max_size_mb" validate:"gte=1"`

	// MaxBackups is the number of rotated files kept
	MaxBackups int `mapstructure:"max_backups" validate:"gte=0"`

	// MaxAgeDays is the number of days rotated files are kept
	MaxAgeDays int `mapstructure:"max_age_days" validate:"gte=0"`
}

// RateLimitConfig contains per-client rate limiting configuration.
// Live previews fire on every keystroke, so the burst is generous.
type RateLimitConfig struct {
	// Enabled toggles the limiter
	Enabled bool `mapstructure:"enabled"`

	// RequestsPerSecond is the sustained request rate per client
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`

	// Burst is the maximum burst size per client
	Burst int `mapstructure:"burst" validate:"gte=1"`
}

// MetricsConfig contains Prometheus exposition configuration.
type MetricsConfig struct {
	// Enabled toggles the metrics endpoint
	Enabled bool `mapstructure:"enabled"`

	// Path is where metrics are served
	Path string `mapstructure:"path" validate:"startswith=/"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// IsDevelopment reports whether the application runs in development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Validate checks every field against its validation tags.
//
// Returns:
//   - error: describes every invalid field, or nil
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (higest to lowest):
//  1. Environment variables
//  2. Config file (configFile when set, otherwise config.yaml in the search paths)
//  3. Default values
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/dimweight")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "dimweight")
	v.SetDefault("app.environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 64<<10)             // 64KB, the form is four fields
	v.SetDefault("server.cors_allowed_origins", []string{"*"}) // the calculator is embedded in third-party pages
	v.SetDefault("server.trusted_proxies", []string{})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 30)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "dimweight")
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"app.environment": {"DWC_ENVIRONMENT", "APP_ENV"},
		"server.port":     {"DWC_SERVER_PORT", "PORT"}, // Common convention
		"log.level":       {"DWC_LOG_LEVEL", "LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}
