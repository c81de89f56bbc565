package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfigPath names the env var that points at an explicit YAML file.
const envConfigPath = "CONFIG_PATH"

// searchPaths are tried in order when CONFIG_PATH is unset.
var searchPaths = []string{"config.yaml", "configs/vocab-backend.yaml"}

// Load builds the service configuration. Precedence is ENV, then the YAML
// file, then env-default tags. Without CONFIG_PATH the first existing entry
// of searchPaths is read; when none exists only ENV and defaults apply.
func Load() (*Config, error) {
	path, err := resolvePath()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var cfg Config
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", sourceName(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// resolvePath returns the YAML file to read, or "" for ENV only.
// An explicit CONFIG_PATH must exist.
func resolvePath() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", envConfigPath, p, err)
		}
		return p, nil
	}

	for _, p := range searchPaths {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
	}
	return "", nil
}

func sourceName(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}
