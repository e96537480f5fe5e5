package storage

import "context"

// ObjectStorage abstracts the photo blob store.
type ObjectStorage interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL an uploaded object is served from.
	PublicURL(key string) string
}
