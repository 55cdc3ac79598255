// Package litellm selects a LiteLLM proxy as the completion backend.
// LiteLLM speaks the OpenAI Chat Completions protocol, so the provider
// delegates to openaicompat.Client and only adds a required base URL and
// model name mapping, letting one proxy route gpt-* and other models to
// different upstreams.
package litellm
