package config

import "time"

// JWTConfig holds the access-token settings for the boundary layer.
type JWTConfig struct {
	SecretKey string        `yaml:"secret_key" env:"JWT_SECRET_KEY" env-default:"insecure-dev-secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"15m"`
}
