package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath     string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL   string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout     string `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		ConnMaxIdleTime string `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Redis struct {
		Addr        string `yaml:"addr" env:"REDIS_ADDR"`
		Password    string `yaml:"password" env:"REDIS_PASSWORD"`
		DB          int    `yaml:"db" env:"REDIS_DB"`
		DialTimeout string `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
		StatsTTL    string `yaml:"stats_ttl" env:"REDIS_STATS_TTL"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigin string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		Enabled       bool   `yaml:"enabled" env:"SEED_ENABLED"`
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminUsername string `yaml:"admin_username" env:"SEED_ADMIN_USERNAME"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./uploads"
	config.Server.PublicBaseURL = "http://localhost:8080/uploads"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.IdleTimeout = "120s"
	config.Server.ShutdownTimeout = "10s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "mentorhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"
	config.Database.ConnMaxIdleTime = "30m"
	config.Database.MigrationsPath = "./migrations"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "mentorhub"

	// Redis defaults
	config.Redis.Addr = "localhost:6379"
	config.Redis.DialTimeout = "2s"
	config.Redis.StatsTTL = "60s"

	// CORS defaults
	config.CORS.AllowedOrigin = "http://localhost:5173"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Seed defaults
	config.Seed.Enabled = true
	config.Seed.AdminEmail = "admin@mentorhub.local"
	config.Seed.AdminUsername = "admin"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.CORS.AllowedOrigin == "" {
		return fmt.Errorf("cors allowed origin is required")
	}

	durations := map[string]string{
		"server.read_timeout":         config.Server.ReadTimeout,
		"server.write_timeout":        config.Server.WriteTimeout,
		"server.idle_timeout":         config.Server.IdleTimeout,
		"server.shutdown_timeout":     config.Server.ShutdownTimeout,
		"database.conn_max_lifetime":  config.Database.ConnMaxLifetime,
		"database.conn_max_idle_time": config.Database.ConnMaxIdleTime,
		"jwt.access_token_expiration": config.JWT.AccessTokenExpiration,
		"redis.dial_timeout":          config.Redis.DialTimeout,
		"redis.stats_ttl":             config.Redis.StatsTTL,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if config.Seed.Enabled && config.Seed.AdminPassword != "" && config.Seed.AdminEmail == "" {
		return fmt.Errorf("seed admin email is required when a seed password is set")
	}

	return nil
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	m := strings.ToLower(c.Server.Mode)
	return m == "production" || m == "release"
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
