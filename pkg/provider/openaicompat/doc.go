// Package openaicompat provides the shared client for any OpenAI-compatible
// Chat Completions backend. It handles request serialization, response
// parsing, and error mapping.
//
// Provider adapters (openai, litellm) hold a Client from this package
// and delegate their Complete calls to it.
package openaicompat
