package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// RelayConfig holds the relay server settings, read from the environment.
type RelayConfig struct {
	Addr     string   `env:"TETRIS_RELAY_ADDR" env-default:":8000" env-description:"listen address"`
	Path     string   `env:"TETRIS_RELAY_PATH" env-default:"/ws/tetris" env-description:"websocket endpoint"`
	Origins  []string `env:"TETRIS_RELAY_ORIGINS" env-default:"http://localhost" env-separator:"," env-description:"allowed browser origins, * for any"`
	LogLevel string   `env:"TETRIS_RELAY_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
}

// LoadRelay reads the relay settings from the environment.
func LoadRelay() (RelayConfig, error) {
	var cfg RelayConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return RelayConfig{}, fmt.Errorf("config: failed to read relay environment: %w", err)
	}
	return cfg, nil
}

// RelayUsage describes the relay environment variables.
func RelayUsage() string {
	var cfg RelayConfig
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
