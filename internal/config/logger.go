package config

// LoggingConfig holds logger mode and level.
type LoggingConfig struct {
	Mode  string `yaml:"mode" env:"LOGGER_MODE" env-default:"production"`
	Level string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info"`
}
