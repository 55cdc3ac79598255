// Package provider defines the protocol-agnostic interface for text
// completion backends. Each adapter implementation (openai, litellm)
// handles its own backend protocol translation internally. The interface
// operates on this package's own types (ProviderRequest, ProviderResponse),
// keeping backend protocol details invisible to the engine.
package provider
