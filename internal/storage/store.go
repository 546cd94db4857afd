package storage

import "context"

// ObjectStore is the object storage capability the attachment pipeline needs:
// upsert-capable upload, removal, and local public-URL computation.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
}
