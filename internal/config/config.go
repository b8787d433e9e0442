// Package config contains the service configuration.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgcfg "notekeeper/pkg/config"
	"notekeeper/pkg/logger"
)

const (
	serviceName = "notekeeper"

	defaultEnvPath = ".env"

	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config is the full application configuration.
type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	HTTP      HTTPConfig      `yaml:"http"`
	JWT       JWTConfig       `yaml:"jwt"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	Accounts  AccountsConfig  `yaml:"accounts"`
	Migration MigrationConfig `yaml:"migration"`
}

// Load reads the configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgcfg.Load[Config](ctx, serviceName, defaultEnvPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddressString()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}
