package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the configuration, applying YAML overrides on top of the
// defaults. Search order: customPath -> ./configs/blockstack.yaml -> defaults.
// A missing file is not an error unless it was requested explicitly.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if data, err := os.ReadFile("configs/blockstack.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse configs/blockstack.yaml: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid configs/blockstack.yaml: %w", err)
		}
	}

	return cfg, nil
}
