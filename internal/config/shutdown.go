package config

// ShutdownConfig holds the graceful-shutdown timeout in seconds.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10"`
}
