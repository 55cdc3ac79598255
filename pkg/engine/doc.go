// Package engine implements the AI pass-through operations for aibackend.
// The Engine struct implements transport.Assistant: it turns text analysis,
// code generation, and status requests into completion calls against a
// provider.Provider and shapes the answers into pkg/api responses.
package engine
