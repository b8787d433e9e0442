package config

import (
	"fmt"
	"time"
)

// RedisConfig holds the listing-cache connection settings.
type RedisConfig struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"0.0.0.0"`
	Port       int           `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"REDIS_DEFAULT_TTL" env-default:"30s"`
}

// GetAddressString returns the host:port address.
func (r *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
