package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// BannerAPI holds the upstream banner REST API configuration.
	BannerAPI BannerAPIConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy used to reach the banner API.
	Proxy ProxyConfig `mapstructure:",squash"`

	// Cache holds the query cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Carousel holds the hero carousel settings.
	Carousel CarouselConfig `mapstructure:",squash"`

	// Admin holds the admin console settings.
	Admin AdminConfig `mapstructure:",squash"`
}

// BannerAPIConfig holds the connection details of the banner REST API.
type BannerAPIConfig struct {
	// URL is the base URL of the banner API (e.g., https://shop.example.com/api).
	URL string `mapstructure:"BANNER_API_URL" required:"true"`
	// Token is the bearer token sent on privileged admin calls.
	Token string `mapstructure:"BANNER_API_TOKEN"`
	// TimeoutSeconds bounds every outbound request.
	TimeoutSeconds int `mapstructure:"BANNER_API_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the outbound request timeout.
func (c BannerAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProxyConfig holds the outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"HTTP_PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"HTTP_PROXY_HOST"`
	Port     int    `mapstructure:"HTTP_PROXY_PORT"`
	Username string `mapstructure:"HTTP_PROXY_USERNAME"`
	Password string `mapstructure:"HTTP_PROXY_PASSWORD"`
}

// CacheConfig selects and tunes the query cache backend.
type CacheConfig struct {
	// RedisURL switches the query cache to Redis when set.
	// Format: redis://[:password@]host[:port][/database]
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTLSeconds is how long a fetched query result stays fresh.
	TTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" default:"300"`
}

// TTL returns the freshness window of cached query results.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CarouselConfig holds the hero carousel settings.
type CarouselConfig struct {
	// IntervalSeconds is the auto-advance period.
	IntervalSeconds int `mapstructure:"CAROUSEL_INTERVAL_SECONDS" default:"6"`
}

// Interval returns the auto-advance period.
func (c CarouselConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// AdminConfig holds the admin console settings.
type AdminConfig struct {
	// MainBannersEnabled re-enables management of "main" banners in the console.
	MainBannersEnabled bool `mapstructure:"ADMIN_MAIN_BANNERS_ENABLED" default:"false"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Carousel.IntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid configuration: CAROUSEL_INTERVAL_SECONDS must be positive")
	}

	return &config, nil
}

// processTags binds every tagged field to its env key and registers defaults in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
