// internal/store/mock.go
package store

import (
	"context"
	"fmt"
)

// MockStore is a mock implementation of Store for testing.
type MockStore struct {
	// ProductDocs is returned from Products
	ProductDocs []Document
	// ArticleDocs is filtered by title and returned from Articles
	ArticleDocs []Document
	// FailIndexes marks batch-insert items that should fail
	FailIndexes map[int]bool
	// ShouldError if true, reads return a generic error
	ShouldError bool
	// LastTitle captures the filter passed to the most recent Articles call
	LastTitle string
	// AddCalls tracks AddProducts invocations
	AddCalls int
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{FailIndexes: make(map[int]bool)}
}

// AddProducts records the call and fails the items marked in FailIndexes.
func (m *MockStore) AddProducts(ctx context.Context, products []Document) ([]InsertResult, error) {
	m.AddCalls++

	results := make([]InsertResult, len(products))
	failed := 0
	for i := range products {
		if m.FailIndexes[i] {
			results[i] = InsertResult{Index: i, Error: "mock insert error"}
			failed++
			continue
		}
		results[i] = InsertResult{Index: i, ID: fmt.Sprintf("doc-%d", i+1)}
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d product inserts failed", failed, len(products))
	}
	return results, nil
}

// Products returns the configured product documents.
func (m *MockStore) Products(ctx context.Context) ([]Document, error) {
	if m.ShouldError {
		return nil, fmt.Errorf("mock store error")
	}
	if len(m.ProductDocs) == 0 {
		return nil, ErrNotFound
	}
	return m.ProductDocs, nil
}

// Articles returns the configured article documents matching the title filter.
func (m *MockStore) Articles(ctx context.Context, title string) ([]Document, error) {
	m.LastTitle = title
	if m.ShouldError {
		return nil, fmt.Errorf("mock store error")
	}

	docs := m.ArticleDocs
	if title != "" {
		var filtered []Document
		for _, d := range docs {
			if d["title"] == title {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}

	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs, nil
}

// Ensure MockStore implements Store at compile time
var _ Store = (*MockStore)(nil)
