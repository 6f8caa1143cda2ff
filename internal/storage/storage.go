// Package storage archives completed avatar videos to object storage so they
// remain reachable after the provider's signed URL expires.
package storage

import (
	"context"
	"io"
)

// ObjectStore persists a named object and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
