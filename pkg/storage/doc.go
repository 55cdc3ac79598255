// Package storage provides the sentinel errors shared across item store
// implementations.
//
// Stores implement the transport.ItemStore interface defined in
// pkg/transport/handler.go. This package contains only shared types, not
// the interface itself.
package storage
