package provider

import "context"

// Provider abstracts a text-completion backend. Each adapter handles its
// own backend protocol internally and reports failures as *api.APIError.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "litellm").
	Name() string

	// Complete performs one non-streaming completion.
	Complete(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}
