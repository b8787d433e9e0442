package config

import (
	"fmt"
)

// HTTPConfig holds the HTTP server settings.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// GetAddressString returns the listen address.
func (h *HTTPConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
