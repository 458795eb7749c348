package llm

import (
	"context"
	"fmt"
	"time"
)

// Client generates text from an instruction pair. Implementations make a
// single synchronous call per invocation; there is no streaming and no
// partial result.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Provider names accepted by New.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	defaultGroqBaseURL      = "https://api.groq.com/openai"
	defaultGroqModel        = "llama-3.3-70b-versatile"
	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-sonnet-20241022"
	defaultMaxTokens        = 2048
	defaultTemperature      = 0.7
	defaultTimeout          = 60 * time.Second
	defaultMaxRetries       = 3
	defaultBaseBackoff      = 1 * time.Second
)

// Rate limiter defaults: 50 requests per minute.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// Request is one generation task: a system instruction carrying the persona
// and rules, and a user instruction carrying the task content.
type Request struct {
	System string
	User   string
}

// GenerationError is the single error kind surfaced by clients. Network,
// auth, rate-limit, and model failures all collapse into it; the workflow
// layer treats them uniformly as an abort.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: text generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Config configures a text generation client.
type Config struct {
	// Provider selects the backend: groq, openai, or anthropic.
	Provider string `koanf:"provider"`

	// Model overrides the provider's default model.
	Model string `koanf:"model"`

	// APIKey authenticates against the provider. Required.
	APIKey string `koanf:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64 `koanf:"rate_limit"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`

	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int `koanf:"max_retries"`

	// MaxTokens caps the completion length.
	MaxTokens int `koanf:"max_tokens"`

	// Temperature controls sampling randomness.
	Temperature float64 `koanf:"temperature"`
}

// DefaultConfig returns a config with provider defaults applied.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGroq,
		Timeout:     defaultTimeout,
		RateLimit:   defaultRateLimit,
		Burst:       defaultBurst,
		MaxRetries:  defaultMaxRetries,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// New creates a client for the configured provider.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", ProviderGroq:
		return newChatClient(ProviderGroq, defaultGroqBaseURL, defaultGroqModel, cfg)
	case ProviderOpenAI:
		return newChatClient(ProviderOpenAI, defaultOpenAIBaseURL, defaultOpenAIModel, cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
