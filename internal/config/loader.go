package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DRAFTD_"

// Load assembles the configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (DRAFTD_LLM_API_KEY, DRAFTD_SERVER_PORT, ...)
//  2. YAML config file
//  3. Hardcoded defaults
//
// configPath selects the YAML file. When empty, ~/.config/draftd/config.yaml
// is used if it exists; a missing file is not an error, an unreadable or
// malformed one is.
//
// Environment variables strip the DRAFTD_ prefix, lowercase, and split on
// the first underscore into section and field:
//
//	DRAFTD_LLM_API_KEY    -> llm.api_key
//	DRAFTD_SERVER_PORT    -> server.port
//	DRAFTD_LOGGING_LEVEL  -> logging.level
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "draftd", "config.yaml")
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// transformEnv maps an environment variable name to a config key. The first
// underscore separates the section; later underscores belong to the field
// name (llm.api_key, server.shutdown_timeout).
func transformEnv(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}
