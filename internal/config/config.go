package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	ServiceName string
	Env         string

	HTTP      HTTPConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Product   ProductConfig
	RateLimit RateLimitConfig
	Shipping  ShippingConfig
	Report    ReportConfig
	Bus       BusConfig
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

// DatabaseConfig enables the Postgres sales log when URL is set.
type DatabaseConfig struct {
	URL string
}

// RedisConfig enables Redis-backed carts and sessions when URL is set.
type RedisConfig struct {
	URL     string
	CartTTL time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type ProductConfig struct {
	CacheSize int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type ShippingConfig struct {
	Currency     string
	FallbackRate string
	Rates        map[string]string
}

// ReportConfig names the one currency sales reports are kept in; orders in
// any other currency are left out of the figures.
type ReportConfig struct {
	Currency string
}

type BusConfig struct {
	QueueSize   int
	Concurrency int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "minishop")
	v.SetDefault("env", "dev")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("cart_ttl", "720h")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("product_cache_size", 1024)
	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("shipping.currency", "USD")
	v.SetDefault("shipping.fallback_rate", "9.99")
	v.SetDefault("shipping.rates", map[string]string{"dhl": "7.50", "ups": "8.25", "post": "4.90"})
	v.SetDefault("report.currency", "USD")
	v.SetDefault("bus.queue_size", 1024)
	v.SetDefault("bus.concurrency", 8)
}

// Load reads defaults, then an optional config.yaml from ./config or the
// working directory, then the environment (SERVICE_NAME, HTTP_ADDR, ...).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	return load(v)
}

// LoadFile is Load with an explicit config file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		ServiceName: v.GetString("service_name"),
		Env:         v.GetString("env"),
		HTTP: HTTPConfig{
			Addr:            v.GetString("http_addr"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Log:      LogConfig{Level: v.GetString("log_level"), File: v.GetString("log_file")},
		Database: DatabaseConfig{URL: v.GetString("database_url")},
		Redis:    RedisConfig{URL: v.GetString("redis_url"), CartTTL: v.GetDuration("cart_ttl")},
		Session:  SessionConfig{TTL: v.GetDuration("session_ttl")},
		Product:  ProductConfig{CacheSize: v.GetInt("product_cache_size")},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("rate_limit_rps"),
			Burst: v.GetInt("rate_limit_burst"),
		},
		Shipping: ShippingConfig{
			Currency:     v.GetString("shipping.currency"),
			FallbackRate: v.GetString("shipping.fallback_rate"),
			Rates:        v.GetStringMapString("shipping.rates"),
		},
		Report: ReportConfig{Currency: strings.ToUpper(v.GetString("report.currency"))},
		Bus: BusConfig{
			QueueSize:   v.GetInt("bus.queue_size"),
			Concurrency: v.GetInt("bus.concurrency"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.HTTP.Addr == "":
		return errors.New("config: http_addr is empty")
	case c.Session.TTL <= 0:
		return errors.New("config: session_ttl must be positive")
	case c.Product.CacheSize <= 0:
		return errors.New("config: product_cache_size must be positive")
	case c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0:
		return errors.New("config: rate limit must be positive")
	case len(c.Report.Currency) != 3:
		return errors.New("config: report.currency must be a 3-letter code")
	}
	return nil
}
