package config // package config loads application configuration from the environment

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every variable read by Load. HBNB_DATABASE_HOST
// maps to database.host; only the first underscore after the prefix is
// a section separator.
const EnvPrefix = "HBNB_"

// Config holds all runtime configuration values, grouped by concern.
type Config struct {
	Primary   Primary         `koanf:"primary" validate:"required"`
	Server    ServerConfig    `koanf:"server" validate:"required"`
	Database  DatabaseConfig  `koanf:"database" validate:"required"`
	Auth      AuthConfig      `koanf:"auth" validate:"required"`
	Admin     AdminConfig     `koanf:"admin"`
	Redis     RedisConfig     `koanf:"redis"`
	Cache     CacheConfig     `koanf:"cache"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	RabbitMQ  RabbitMQConfig  `koanf:"rabbitmq"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development test production"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
}

// DatabaseConfig selects the store. Host, Port, User and Name apply to
// mysql and postgres; Path applies to sqlite3.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=memory sqlite3 mysql postgres"`
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	Path            string        `koanf:"path"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret" validate:"required,min=16"`
	AccessTTL  time.Duration `koanf:"access_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// AdminConfig seeds an administrator at startup when Email is set.
type AdminConfig struct {
	Email     string `koanf:"email" validate:"omitempty,email"`
	Password  string `koanf:"password" validate:"required_with=Email"`
	FirstName string `koanf:"first_name"`
	LastName  string `koanf:"last_name"`
}

type RabbitMQConfig struct {
	URL   string `koanf:"url"`
	Queue string `koanf:"queue"`
}

type LoggingConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

// IsDevelopment reports whether the process runs with development
// defaults (console logging, long-lived tokens).
func (c *Config) IsDevelopment() bool { return c.Primary.Env == "development" }

// Default returns the configuration used when no variable overrides a
// value.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "production"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "memory",
			Host:            "localhost",
			Port:            "3306",
			Name:            "hbnb",
			Path:            "hbnb.db",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{BcryptCost: 12},
		Admin: AdminConfig{
			FirstName: "Admin",
			LastName:  "HBnB",
		},
		Cache:     DefaultCacheConfig(),
		RateLimit: DefaultRateLimitConfig(),
		RabbitMQ:  RabbitMQConfig{Queue: "hbnb.events"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load reads .env (when present) and HBNB_* variables over Default and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.finish()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// finish fills values that depend on other settings.
func (c *Config) finish() {
	if c.Auth.AccessTTL <= 0 {
		c.Auth.AccessTTL = time.Hour
		if c.IsDevelopment() {
			c.Auth.AccessTTL = 24 * time.Hour
		}
	}
	if c.Database.Driver == "postgres" && c.Database.Port == "3306" {
		c.Database.Port = "5432"
	}
	c.Server.CORSAllowedOrigins = splitList(c.Server.CORSAllowedOrigins)
	c.Cache.Methods = splitList(c.Cache.Methods)
	c.Cache.normalize()
	c.RateLimit.normalize()
}

// splitList expands comma separated entries, which is how list values
// arrive from a single environment variable.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
