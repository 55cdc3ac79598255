package openai

import (
	"context"

	"github.com/rhuss/aibackend/pkg/provider"
	"github.com/rhuss/aibackend/pkg/provider/openaicompat"
)

// OpenAIProvider implements provider.Provider for the OpenAI Chat
// Completions API.
type OpenAIProvider struct {
	client *openaicompat.Client
}

// Ensure OpenAIProvider implements provider.Provider at compile time.
var _ provider.Provider = (*OpenAIProvider)(nil)

// New creates a new OpenAIProvider. Missing BaseURL and Timeout are filled
// from DefaultConfig; the API key is not checked.
func New(cfg Config) (*OpenAIProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = openaicompat.DefaultTimeout
	}

	client := openaicompat.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	client.ModelMapper = openaicompat.MapModels(cfg.ModelMapping)

	return &OpenAIProvider{
		client: client,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// BaseURL returns the normalized API root the provider talks to.
func (p *OpenAIProvider) BaseURL() string {
	return p.client.BaseURL()
}

// Complete performs non-streaming inference against the Chat Completions endpoint.
func (p *OpenAIProvider) Complete(ctx context.Context, req *provider.ProviderRequest) (*provider.ProviderResponse, error) {
	return p.client.Complete(ctx, req)
}

// Close releases provider resources.
func (p *OpenAIProvider) Close() error {
	return p.client.Close()
}
