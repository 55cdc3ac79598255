package litellm

import (
	"time"

	"github.com/rhuss/aibackend/pkg/provider/openaicompat"
)

// Config holds configuration for the LiteLLM provider adapter.
type Config struct {
	// BaseURL is the LiteLLM proxy URL (e.g., "http://localhost:4000"). Required.
	BaseURL string

	// APIKey is the proxy master or virtual key (optional).
	APIKey string

	// Timeout for individual HTTP requests. Defaults to openaicompat.DefaultTimeout.
	Timeout time.Duration

	// ModelMapping maps the engine's model name to a proxy route,
	// e.g. {"gpt-3.5-turbo": "openai/gpt-3.5-turbo"}. Unmapped names pass through.
	ModelMapping map[string]string
}

// DefaultConfig returns a Config for the proxy at baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: openaicompat.DefaultTimeout,
	}
}
