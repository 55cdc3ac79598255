package openai

import (
	"time"

	"github.com/rhuss/aibackend/pkg/provider/openaicompat"
)

// DefaultBaseURL is the public OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com"

// Config holds configuration for the OpenAI provider adapter.
type Config struct {
	// BaseURL is the API root without the /v1 suffix. Defaults to DefaultBaseURL.
	BaseURL string

	// APIKey sent as a bearer token. An empty key is allowed; the backend
	// rejects the first call instead.
	APIKey string

	// Timeout for individual HTTP requests. Defaults to 120s.
	Timeout time.Duration

	// ModelMapping optionally renames models before they are sent.
	ModelMapping map[string]string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Timeout: openaicompat.DefaultTimeout,
	}
}
