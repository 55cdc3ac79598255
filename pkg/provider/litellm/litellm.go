package litellm

import (
	"context"
	"fmt"

	"github.com/rhuss/aibackend/pkg/provider"
	"github.com/rhuss/aibackend/pkg/provider/openaicompat"
)

// LiteLLMProvider implements provider.Provider for LiteLLM proxy servers.
// It delegates HTTP communication to the shared openaicompat.Client and
// supports model name mapping for multi-provider routing.
type LiteLLMProvider struct {
	client *openaicompat.Client
}

// Ensure LiteLLMProvider implements provider.Provider at compile time.
var _ provider.Provider = (*LiteLLMProvider)(nil)

// New creates a new LiteLLMProvider with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*LiteLLMProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("litellm: BaseURL is required")
	}

	// Apply default timeout if not set.
	if cfg.Timeout == 0 {
		cfg.Timeout = openaicompat.DefaultTimeout
	}

	client := openaicompat.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	client.ModelMapper = openaicompat.MapModels(cfg.ModelMapping)

	return &LiteLLMProvider{
		client: client,
	}, nil
}

// Name returns the provider identifier.
func (p *LiteLLMProvider) Name() string {
	return "litellm"
}

// Complete performs non-streaming inference against the Chat Completions endpoint.
func (p *LiteLLMProvider) Complete(ctx context.Context, req *provider.ProviderRequest) (*provider.ProviderResponse, error) {
	return p.client.Complete(ctx, req)
}

// Close releases provider resources.
func (p *LiteLLMProvider) Close() error {
	return p.client.Close()
}
