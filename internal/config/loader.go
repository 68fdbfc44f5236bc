package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultServerConfigPath is tried when CONFIG_PATH is unset.
const defaultServerConfigPath = "./config.yaml"

// Load builds the server configuration. Values come from, in order of
// precedence, the environment, the YAML file named by CONFIG_PATH (or
// ./config.yaml when present) and the env-default tags.
func Load() (*Config, error) {
	var cfg Config
	if err := readInto(&cfg, "CONFIG_PATH", defaultServerConfigPath); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// readInto fills dst from the file named by pathEnv, falling back to
// fallbackPath when the variable is unset. An explicitly named file must
// exist; a missing fallback file means environment only.
func readInto[T any](dst *T, pathEnv, fallbackPath string) error {
	path, explicit := os.LookupEnv(pathEnv)
	explicit = explicit && path != ""
	if !explicit {
		path = fallbackPath
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(path, dst); err != nil {
				return fmt.Errorf("config: read %s: %w", path, err)
			}
			return nil
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(dst); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}
