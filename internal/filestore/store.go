// Package filestore defines the object storage contract query exports are
// written to.
//
// Callers depend only on this package; the MinIO implementation lives in
// the minio subpackage.
//
// Usage:
//
//	store, err := minio.New(ctx, &cfg.Export.Store)
//	if err != nil { ... }
//	defer store.Close()
//
//	info, err := store.PutObject(ctx, bucket, key, r, size, "application/jsonl")
//	url, err := store.PresignGetURL(ctx, bucket, key, time.Hour)
package filestore

import (
	"context"
	"io"
	"time"
)

// Store is the interface storage providers implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// EnsureBucket creates bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// PutObject uploads size bytes from r to key inside bucket, replacing
	// any existing object.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// PresignGetURL returns a time-limited URL that allows anyone to download
	// the object at key inside bucket without credentials.
	PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
