package repository

import "context"

// BlobStore accepts a binary payload under a suggested key and returns a durable,
// fetchable URL for it.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
