package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// ParseFile parses a server config file (YAML), applies defaults, and
// validates the result.
func ParseFile(path string) (*ServerConfig, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path to server config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server config file: %w", err)
	}

	cfg := &ServerConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config file: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given:
// stdio transport with console logging.
func Default() *ServerConfig {
	cfg := &ServerConfig{
		Runtime: &ServerRuntime{
			TransportProtocol: TransportProtocolStdio,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}
