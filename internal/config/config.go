// Package config loads server configuration from an optional YAML file and
// environment variables. Environment variables use the SPLITLEDGER_ prefix
// and override file values (SPLITLEDGER_SERVER_PORT, SPLITLEDGER_JWT_SECRET,
// and so on).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	JWT     JWTConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	// Path is the database file location when Driver is sqlite.
	Path string
	// DSN is the connection string when Driver is postgres.
	DSN string
}

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret        string
	TokenDuration time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// Load reads configuration from the given file (optional) and the
// environment, applying defaults for everything but the JWT secret.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "./data/splitledger.db")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.tokenduration", "24h")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SPLITLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set SPLITLEDGER_JWT_SECRET)")
	}
	switch cfg.Storage.Driver {
	case "sqlite":
		if cfg.Storage.Path == "" {
			return nil, fmt.Errorf("storage path is required for the sqlite driver")
		}
	case "postgres":
		if cfg.Storage.DSN == "" {
			return nil, fmt.Errorf("storage dsn is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
