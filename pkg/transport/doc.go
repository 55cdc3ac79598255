// Package transport defines the handler interfaces and middleware chain for
// the aibackend HTTP transport layer.
//
// The transport layer bridges external clients and the item store and AI
// assistant. It deserializes incoming requests into the types defined in
// pkg/api, dispatches them, and serializes results or APIError values back
// to the client as JSON.
//
// # Handler Interfaces
//
//   - ItemStore holds the ordered item collection behind the CRUD routes.
//   - Assistant performs text analysis, code generation, and the provider
//     status check behind the /api/ai routes.
//
// # Middleware
//
// Middleware wraps http.Handler with cross-cutting concerns. Built-in
// middleware provides panic recovery, request ID assignment (X-Request-ID,
// UUIDs via google/uuid), structured logging via log/slog, and CORS via
// rs/cors.
package transport
