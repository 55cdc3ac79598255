// Package openai implements the Provider interface for the OpenAI Chat
// Completions API and any server that mimics it at the same path. All
// HTTP communication is delegated to the shared openaicompat.Client.
package openai
