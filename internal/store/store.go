// internal/store/store.go

// Package store is a thin gateway to the managed document backend. Documents
// are opaque; no schema is enforced beyond what callers forward.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates an empty result set, distinct from a transport or
// service failure.
var ErrNotFound = errors.New("no documents found")

// Document is one opaque stored document. Reads carry the service-generated
// document id under the "id" key.
type Document map[string]any

// InsertResult reports the outcome of one item in a batch insert.
type InsertResult struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Store defines the document operations used by the HTTP layer.
type Store interface {
	// AddProducts inserts each product as a new document with a
	// service-generated id. The result list always has one entry per input
	// item so callers can tell which inserts succeeded; the error is non-nil
	// when any item failed.
	AddProducts(ctx context.Context, products []Document) ([]InsertResult, error)

	// Products returns every stored product. Returns ErrNotFound when the
	// collection is empty.
	Products(ctx context.Context) ([]Document, error)

	// Articles returns stored articles, filtered by exact title equality when
	// title is non-empty. Returns ErrNotFound when the result set is empty.
	Articles(ctx context.Context, title string) ([]Document, error)
}
