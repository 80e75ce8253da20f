// Package ports declares the interfaces the editor consumes from the
// outside world.
package ports

import (
	"context"
	"io"
)

// PutObjectInput describes one object to store, e.g. a published
// manifest.json or graphic.mjs.
type PutObjectInput struct {
	ObjectKey   string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// PutObjectOutput reports where the object ended up. For localfs the key is
// echoed back; for Drive it is the provider's file id, usable for later
// reads and deletes.
type PutObjectOutput struct {
	ObjectKey string
	Size      int64
}

// StorageProvider stores published artifact bundles. Implementations:
// localfs, gdrive.
type StorageProvider interface {
	Provider() string

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error)
	DeleteObject(ctx context.Context, objectKey string) error
}
