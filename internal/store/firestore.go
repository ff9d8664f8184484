// internal/store/firestore.go
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
)

const (
	productsCollection = "products"
	articlesCollection = "articles"
)

// Firestore implements Store over a Firestore client.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a Firestore document gateway from an initialized app.
func NewFirestore(ctx context.Context, app *firebase.App) (*Firestore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// AddProducts writes every product concurrently, each into a new auto-id
// document. Failures are captured per item instead of aborting the batch.
func (f *Firestore) AddProducts(ctx context.Context, products []Document) ([]InsertResult, error) {
	results := make([]InsertResult, len(products))

	var g errgroup.Group
	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			ref := f.client.Collection(productsCollection).NewDoc()
			_, err := ref.Set(ctx, map[string]any(product))

			results[i] = InsertResult{Index: i, ID: ref.ID}
			if err != nil {
				results[i] = InsertResult{Index: i, Error: err.Error()}
			}
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d product inserts failed", failed, len(products))
	}
	return results, nil
}

// Products reads the whole products collection.
func (f *Firestore) Products(ctx context.Context) ([]Document, error) {
	return f.readAll(ctx, f.client.Collection(productsCollection).Query)
}

// Articles reads the articles collection, optionally filtered by exact title.
func (f *Firestore) Articles(ctx context.Context, title string) ([]Document, error) {
	q := f.client.Collection(articlesCollection).Query
	if title != "" {
		q = q.Where("title", "==", title)
	}
	return f.readAll(ctx, q)
}

func (f *Firestore) readAll(ctx context.Context, q firestore.Query) ([]Document, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read documents: %w", err)
		}

		doc := Document(snap.Data())
		doc["id"] = snap.Ref.ID
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs, nil
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

// Ensure Firestore implements Store at compile time
var _ Store = (*Firestore)(nil)
