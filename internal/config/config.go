package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration. It is built once at
// startup and handed to constructors; nothing else reads the environment.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Orders   OrdersConfig   `toml:"orders"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port          int    `toml:"port"`
	Version       string `toml:"version"`
	PublicMenuURL string `toml:"public_menu_url"`
}

type DatabaseConfig struct {
	URL string `toml:"url"`
}

// AuthConfig configures verification of staff tokens issued by the identity provider
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWKSURL   string `toml:"jwks_url"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StorageConfig contains MinIO settings for menu images
type StorageConfig struct {
	Endpoint      string `toml:"endpoint"`
	AccessKey     string `toml:"access_key"`
	SecretKey     string `toml:"secret_key"`
	Bucket        string `toml:"bucket"`
	UseSSL        bool   `toml:"use_ssl"`
	PublicBaseURL string `toml:"public_base_url"`
}

type OrdersConfig struct {
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
}

type JobsConfig struct {
	BacklogInterval time.Duration `toml:"backlog_interval"`
}

// Default returns the development defaults
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:          8080,
			Version:       "1.0.0",
			PublicMenuURL: "http://localhost:3000",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "menu-images",
		},
		Orders: OrdersConfig{
			RateLimitPerMinute: 10,
		},
		Jobs: JobsConfig{
			BacklogInterval: time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file, an
// optional .env file and finally the process environment.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		if _, err := toml.DecodeFile(filename, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	if err := num("PORT", &c.Server.Port); err != nil {
		return err
	}
	str("PUBLIC_MENU_URL", &c.Server.PublicMenuURL)
	str("DATABASE_URL", &c.Database.URL)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("JWKS_URL", &c.Auth.JWKSURL)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	if err := num("REDIS_DB", &c.Redis.DB); err != nil {
		return err
	}
	str("MINIO_ENDPOINT", &c.Storage.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Storage.AccessKey)
	str("MINIO_SECRET_KEY", &c.Storage.SecretKey)
	str("MINIO_BUCKET", &c.Storage.Bucket)
	str("MINIO_PUBLIC_URL", &c.Storage.PublicBaseURL)
	if v, ok := lookup("MINIO_USE_SSL"); ok && v != "" {
		c.Storage.UseSSL = strings.EqualFold(v, "true")
	}
	if err := num("ORDER_RATE_LIMIT_PER_MINUTE", &c.Orders.RateLimitPerMinute); err != nil {
		return err
	}
	if v, ok := lookup("BACKLOG_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BACKLOG_INTERVAL %q: %w", v, err)
		}
		c.Jobs.BacklogInterval = d
	}
	return nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
		return fmt.Errorf("either jwt secret or jwks url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Orders.RateLimitPerMinute < 0 {
		return fmt.Errorf("order rate limit cannot be negative")
	}
	if c.Jobs.BacklogInterval <= 0 {
		return fmt.Errorf("backlog interval must be positive")
	}
	return nil
}

// PublicURL returns the URL prefix under which stored images are served
func (s StorageConfig) PublicURL() string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/")
	}
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, s.Endpoint, s.Bucket)
}
