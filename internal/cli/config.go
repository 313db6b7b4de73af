package cli

import (
	"os"

	"grizstats/internal/config"
)

// DefaultConfigPath is read when no -config flag is given and the file
// exists.
const DefaultConfigPath = "configs/pipeline.yaml"

// LoadConfig resolves the configuration for a command: an explicit -config
// path, then the default config file when present, then built-in defaults.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return config.Load(DefaultConfigPath)
	}

	return config.Default(), nil
}
