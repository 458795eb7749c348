// Package config provides configuration loading for draftd.
//
// Configuration is assembled from hardcoded defaults, an optional YAML file,
// and DRAFTD_* environment variable overrides, in increasing precedence.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/draftd/internal/llm"
	"github.com/fyrsmithlabs/draftd/internal/logging"
)

// Config holds the complete draftd configuration.
type Config struct {
	LLM      llm.Config     `koanf:"llm"`
	Workflow WorkflowConfig `koanf:"workflow"`
	Server   ServerConfig   `koanf:"server"`
	Logging  logging.Config `koanf:"logging"`
}

// WorkflowConfig holds workflow defaults.
type WorkflowConfig struct {
	// Drafts is the default per-platform draft target when the caller
	// does not specify one.
	Drafts int `koanf:"drafts"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		LLM: llm.DefaultConfig(),
		Workflow: WorkflowConfig{
			Drafts: 3,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8093,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: logging.NewDefaultConfig(),
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.Workflow.Drafts < 1 {
		return fmt.Errorf("workflow.drafts must be at least 1, got %d", c.Workflow.Drafts)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}
