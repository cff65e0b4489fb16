// Package storage provides the blob store the service persists documents
// to and loads its catalog from.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrKeyNotFound is returned when downloading a key that does not exist.
var ErrKeyNotFound = errors.New("storage: key not found")

// BlobStore is a flat key/value object store. The service treats every
// call as a synchronous operation that either returns the bytes or fails
// outright; no retries happen at this layer.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	// List returns all keys starting with prefix, in lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)
}
